package cmd

import (
	"fmt"
	"strings"

	"datforge/core/catalog"
	"datforge/core/config"
	"datforge/feature/dialect"
	"datforge/feature/projection"

	"go.uber.org/zap"

	// Register every dialect parser and writer.
	_ "datforge/feature/dialect/attractmode"
	_ "datforge/feature/dialect/cmpro"
	_ "datforge/feature/dialect/listxml"
	_ "datforge/feature/dialect/logiqx"
	_ "datforge/feature/dialect/softwarelist"
)

// catalogOptions maps the convert configuration onto bucketing options.
func catalogOptions(cfg config.ConvertConfig) (catalog.Options, error) {
	opts := catalog.Options{
		CaseFold: cfg.CaseFold,
		Norename: cfg.Norename,
	}
	switch strings.ToLower(cfg.Bucket) {
	case "", "name":
		opts.Mode = catalog.BucketName
	case "game":
		opts.Mode = catalog.BucketGameName
	case "md5":
		opts.Mode = catalog.BucketMD5
	case "sha1":
		opts.Mode = catalog.BucketSHA1
	case "size":
		opts.Mode = catalog.BucketSize
	default:
		return opts, fmt.Errorf("unknown bucket mode %q", cfg.Bucket)
	}
	return opts, nil
}

// dialectOptions maps the convert configuration onto per-run dialect
// options. Unknown exclude field names are rejected.
func dialectOptions(cfg config.ConvertConfig, l *zap.Logger) (dialect.Options, error) {
	opts := dialect.Options{
		Logger:       l,
		KeepFullPath: cfg.KeepFullPath,
		IgnoreBlanks: cfg.IgnoreBlanks,
	}
	exclude := projection.FieldSet{}
	for _, name := range cfg.ExcludeFields() {
		f, ok := projection.ParseItemField(name)
		if !ok {
			return opts, fmt.Errorf("unknown exclude field %q", name)
		}
		exclude[f] = struct{}{}
	}
	if len(exclude) > 0 {
		opts.Exclude = exclude
	}
	return opts, nil
}

// parseFormat resolves a --to/--from flag value.
func parseFormat(s string) (dialect.Format, error) {
	switch strings.ToLower(s) {
	case "logiqx", "xml", "dat":
		return dialect.Logiqx, nil
	case "listxml", "mame":
		return dialect.ListXML, nil
	case "softwarelist", "swlist":
		return dialect.SoftwareList, nil
	case "attractmode", "am", "romlist":
		return dialect.AttractMode, nil
	case "cmpro", "clrmamepro", "cm":
		return dialect.ClrMamePro, nil
	default:
		return "", fmt.Errorf("unknown format %q", s)
	}
}
