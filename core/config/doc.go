// Package config provides configuration management for datforge.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Log: Logging level and format
//   - Convert: parse/write defaults (bucketing, SuperDAT paths, excluded fields)
//   - Batch: worker limits for multi-file runs
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Convert.Bucket)
package config
