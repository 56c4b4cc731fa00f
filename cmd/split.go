package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"datforge/core/catalog"
	"datforge/core/config"
	"datforge/core/logger"
	"datforge/feature/dialect"
	"datforge/feature/split"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	splitInputs    []string
	splitOutputDir string
	splitTo        string
	splitBy        string
	splitExtA      []string
	splitExtB      []string
	splitThreshold int64
	splitBudget    int64
	splitLevel     int
)

// splitCmd partitions a catalog into several output DATs.
var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split a catalog into multiple DAT files",
	Long: `Split parses the inputs into one catalog and partitions it by the
chosen criterion. Each non-empty partition is written to the output
directory as its own DAT; the writes run in parallel since every
partition owns its items.

Examples:
  # Partition by archive extension; unmatched names land in both files
  datforge split -i all.dat --by ext --ext-a zip --ext-b chd -d out/

  # Chunk into 4 GiB DATs
  datforge split -i all.dat --by chunk --budget 4294967296 -d out/`,
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().StringArrayVarP(&splitInputs, "input", "i", nil, "Input DAT file (repeatable)")
	splitCmd.Flags().StringVarP(&splitOutputDir, "dir", "d", ".", "Output directory")
	splitCmd.Flags().StringVar(&splitTo, "to", "logiqx", "Output dialect")
	splitCmd.Flags().StringVar(&splitBy, "by", "", "Split criterion: ext, hash, size, chunk, kind or level")
	splitCmd.Flags().StringSliceVar(&splitExtA, "ext-a", nil, "Extension set A for --by ext")
	splitCmd.Flags().StringSliceVar(&splitExtB, "ext-b", nil, "Extension set B for --by ext")
	splitCmd.Flags().Int64Var(&splitThreshold, "threshold", 0, "Byte threshold for --by size")
	splitCmd.Flags().Int64Var(&splitBudget, "budget", 0, "Chunk byte budget for --by chunk")
	splitCmd.Flags().IntVar(&splitLevel, "level", 0, "Hierarchy depth for --by level")
	_ = splitCmd.MarkFlagRequired("input")
	_ = splitCmd.MarkFlagRequired("by")

	RootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	format, err := parseFormat(splitTo)
	if err != nil {
		return err
	}

	c, dOpts, err := loadCatalog(ctx, cfg, l, splitInputs)
	if err != nil {
		return err
	}

	var outs []*catalog.Catalog
	switch strings.ToLower(splitBy) {
	case "ext", "extension":
		outs = split.ByExtension(c, splitExtA, splitExtB)
	case "hash":
		outs = split.ByHash(c)
	case "size":
		outs = split.BySize(c, splitThreshold)
	case "chunk":
		outs = split.ByChunk(c, splitBudget)
	case "kind", "type":
		outs = split.ByKind(c)
	case "level":
		outs, err = split.ByLevel(c, splitLevel)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown split criterion %q", splitBy)
	}
	if len(outs) == 0 {
		l.Warn("Nothing to write: every partition came out empty")
		return nil
	}

	// Each partition owns its catalog, so the writes are independent.
	g, gctx := errgroup.WithContext(ctx)
	for i, out := range outs {
		out := out
		name := filepath.Join(splitOutputDir, outputName(out, i, format))
		g.Go(func() error {
			w, err := dialect.NewWriter(format, dOpts)
			if err != nil {
				return err
			}
			f, err := os.Create(name)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", name, err)
			}
			defer f.Close()

			n, err := w.Write(gctx, f, out)
			if err != nil {
				return fmt.Errorf("failed to write %s: %w", name, err)
			}
			l.Info("Wrote partition",
				zap.String("path", name),
				zap.Int("items", n))
			return nil
		})
	}
	return g.Wait()
}

// outputName derives a file name from the partition's header name.
func outputName(c *catalog.Catalog, index int, format dialect.Format) string {
	base := c.Header.Name
	if base == "" {
		base = fmt.Sprintf("split-%d", index+1)
	}
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, base)

	ext := ".dat"
	switch format {
	case dialect.Logiqx, dialect.ListXML, dialect.SoftwareList:
		ext = ".xml"
	case dialect.AttractMode:
		ext = ".txt"
	}
	return clean + ext
}
