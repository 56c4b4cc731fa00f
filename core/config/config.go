package config

import (
	"reflect"
	"strings"

	"datforge/core/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ConvertConfig holds the defaults for parsing and writing catalogs.
type ConvertConfig struct {
	// Bucket selects the dedup key source: name, game, md5, sha1 or size.
	Bucket string `mapstructure:"bucket" default:"game"`
	// CaseFold lowercases dedup keys.
	CaseFold bool `mapstructure:"casefold" default:"false"`
	// Norename drops the per-input qualifier from name keys so items
	// from different inputs can merge.
	Norename bool `mapstructure:"norename" default:"true"`
	// KeepFullPath keeps joined directory paths as machine names in
	// SuperDAT inputs.
	KeepFullPath bool `mapstructure:"keep_full_path" default:"false"`
	// IgnoreBlanks makes writers skip zero or unknown size ROM entries.
	IgnoreBlanks bool `mapstructure:"ignore_blanks" default:"false"`
	// Exclude is a comma-separated list of item fields writers omit.
	Exclude string `mapstructure:"exclude" default:""`
	// Profile is the path of an optional YAML projection profile.
	Profile string `mapstructure:"profile" default:""`
}

// ExcludeFields splits the Exclude list into field names.
func (c ConvertConfig) ExcludeFields() []string {
	if c.Exclude == "" {
		return nil
	}
	parts := strings.Split(c.Exclude, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// BatchConfig holds configuration for multi-file runs.
type BatchConfig struct {
	// Workers caps how many input files are parsed at once. Zero means
	// one worker per file.
	Workers int `mapstructure:"workers" default:"0"`
}

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Convert holds the parse/write defaults.
	Convert ConvertConfig `mapstructure:"convert"`
	// Batch holds the multi-file run settings.
	Batch BatchConfig `mapstructure:"batch"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. LOG_LEVEL -> log.level)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
