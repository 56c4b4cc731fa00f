package main

import "datforge/cmd"

func main() {
	cmd.Execute()
}
