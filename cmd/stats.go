package cmd

import (
	"context"
	"fmt"

	"datforge/core/config"
	"datforge/core/item"
	"datforge/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// statsCmd reports item and machine counts for a set of inputs.
var statsCmd = &cobra.Command{
	Use:   "stats [files]",
	Short: "Report catalog statistics for DAT files",
	Long: `Stats parses the given DAT files into one catalog and reports the
machine count and per-kind item counts after deduplication.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStats,
}

func init() {
	RootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
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

	c, _, err := loadCatalog(ctx, cfg, l, args)
	if err != nil {
		return err
	}

	perKind := make(map[item.Kind]int)
	c.Each(func(_ string, it item.Item) {
		perKind[it.Kind()]++
	})

	fields := []zap.Field{
		zap.String("name", c.Header.Name),
		zap.Int("machines", c.MachineCount()),
		zap.Int("items", c.Len()),
	}
	for _, k := range []item.Kind{
		item.KindRom, item.KindDisk, item.KindSample, item.KindArchive,
		item.KindBiosSet, item.KindRelease, item.KindBlank,
	} {
		if n := perKind[k]; n > 0 {
			fields = append(fields, zap.Int(k.String(), n))
		}
	}
	l.Info("Catalog statistics", fields...)
	return nil
}
