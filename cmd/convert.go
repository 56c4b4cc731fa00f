package cmd

import (
	"context"
	"fmt"
	"os"

	"datforge/core/catalog"
	"datforge/core/config"
	"datforge/core/logger"
	"datforge/feature/batch"
	"datforge/feature/dialect"
	"datforge/feature/projection"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	convertInputs []string
	convertOutput string
	convertTo     string
)

// convertCmd parses one or more DAT files, merges them, and writes the
// result in the requested dialect.
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert DAT files between dialects",
	Long: `Convert parses every input file (the dialect is sniffed per file),
merges them into one deduplicated catalog, applies the configured field
projection, and writes the catalog in the requested output dialect.

Examples:
  # MAME list XML to a Logiqx DAT
  datforge convert -i mame.xml -o mame.dat --to logiqx

  # Merge three DATs, dropping MD5 fields from the output
  CONVERT_EXCLUDE=md5 datforge convert -i a.dat -i b.dat -i c.dat -o merged.dat --to logiqx`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringArrayVarP(&convertInputs, "input", "i", nil, "Input DAT file (repeatable)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output file")
	convertCmd.Flags().StringVar(&convertTo, "to", "logiqx", "Output dialect (logiqx, listxml, softwarelist, attractmode, cmpro)")
	_ = convertCmd.MarkFlagRequired("input")
	_ = convertCmd.MarkFlagRequired("output")

	RootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
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

	format, err := parseFormat(convertTo)
	if err != nil {
		return err
	}

	c, dOpts, err := loadCatalog(ctx, cfg, l, convertInputs)
	if err != nil {
		return err
	}

	if cfg.Convert.Profile != "" {
		profile, err := projection.LoadProfile(cfg.Convert.Profile)
		if err != nil {
			return fmt.Errorf("failed to load projection profile: %w", err)
		}
		profile.Apply(c)
		if ex := profile.ExcludeSet(); len(ex) > 0 {
			dOpts.Exclude = ex
		}
	}

	w, err := dialect.NewWriter(format, dOpts)
	if err != nil {
		return err
	}
	out, err := os.Create(convertOutput)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer out.Close()

	n, err := w.Write(ctx, out, c)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	l.Info("Conversion complete",
		zap.String("output", convertOutput),
		zap.String("dialect", string(format)),
		zap.Int("items", n))
	return nil
}

// loadCatalog parses every input into one merged catalog. Per-file
// failures are logged and reported but leave the surviving inputs
// usable; the run fails only when nothing parsed.
func loadCatalog(ctx context.Context, cfg *config.Config, l *zap.Logger, inputs []string) (*catalog.Catalog, dialect.Options, error) {
	catOpts, err := catalogOptions(cfg.Convert)
	if err != nil {
		return nil, dialect.Options{}, err
	}
	dOpts, err := dialectOptions(cfg.Convert, l)
	if err != nil {
		return nil, dialect.Options{}, err
	}

	svc := batch.NewService(batch.Config{
		Workers: cfg.Batch.Workers,
		Catalog: catOpts,
		Dialect: dOpts,
	}, l)

	report, err := svc.Run(ctx, inputs, nil)
	if err != nil {
		return nil, dOpts, err
	}
	if rerr := report.Err(); rerr != nil {
		if report.Merged.Len() == 0 {
			return nil, dOpts, rerr
		}
		l.Warn("Some inputs failed", zap.Error(rerr))
	}
	for _, res := range report.Results {
		if res.Err == nil {
			l.Info("Parsed input",
				zap.String("path", res.Path),
				zap.String("dialect", string(res.Format)),
				zap.Int("items", res.Items))
		}
	}
	return report.Merged, dOpts, nil
}
