package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	DefaultPathFormat  = "%Y/%m-%B"
	DefaultUnsortedDir = "unsorted"
)

var DefaultExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".mp4", ".mov", ".avi", ".mkv"}

type Config struct {
	Sorting  SortingConfig  `mapstructure:"sorting" toml:"sorting"`
	Metadata MetadataConfig `mapstructure:"metadata" toml:"metadata"`
	Copy     CopyConfig     `mapstructure:"copy" toml:"copy"`
	Logging  LoggingConfig  `mapstructure:"logging" toml:"logging"`
}

type SortingConfig struct {
	PathFormat          string   `mapstructure:"path_format" toml:"path_format"`
	SupportedExtensions []string `mapstructure:"supported_extensions" toml:"supported_extensions"`
	UnsortedDir         string   `mapstructure:"unsorted_dir" toml:"unsorted_dir"`
}

type MetadataConfig struct {
	UseExifTool   bool `mapstructure:"use_exiftool" toml:"use_exiftool"`
	FilenameDates bool `mapstructure:"filename_dates" toml:"filename_dates"`
}

type CopyConfig struct {
	Verify bool `mapstructure:"verify" toml:"verify"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level"`
	Format string `mapstructure:"format" toml:"format"`
	File   string `mapstructure:"file" toml:"file,omitempty"`
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		Sorting: SortingConfig{
			PathFormat:          DefaultPathFormat,
			SupportedExtensions: append([]string(nil), DefaultExtensions...),
			UnsortedDir:         DefaultUnsortedDir,
		},
		Copy:    CopyConfig{Verify: true},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// ConfigDir is where the config file is looked up besides the working directory.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to find user config dir: %w", err)
	}
	return filepath.Join(dir, "mediasort"), nil
}

// LoadConfig reads path if given, otherwise searches for mediasort.* in the
// working directory and the user config directory. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("sorting.path_format", def.Sorting.PathFormat)
	v.SetDefault("sorting.supported_extensions", def.Sorting.SupportedExtensions)
	v.SetDefault("sorting.unsorted_dir", def.Sorting.UnsortedDir)
	v.SetDefault("metadata.use_exiftool", def.Metadata.UseExifTool)
	v.SetDefault("metadata.filename_dates", def.Metadata.FilenameDates)
	v.SetDefault("copy.verify", def.Copy.Verify)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.file", def.Logging.File)

	v.SetEnvPrefix("mediasort")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("mediasort")
		v.AddConfigPath(".")
		if dir, err := ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate normalizes extensions and checks the path template.
func (c *Config) Validate() error {
	c.Sorting.SupportedExtensions = normalizeExtensions(c.Sorting.SupportedExtensions)
	if len(c.Sorting.SupportedExtensions) == 0 {
		return fmt.Errorf("invalid config: supported_extensions is empty")
	}

	c.Sorting.UnsortedDir = strings.TrimSpace(c.Sorting.UnsortedDir)
	if c.Sorting.UnsortedDir == "" {
		c.Sorting.UnsortedDir = DefaultUnsortedDir
	}
	if !filepath.IsLocal(c.Sorting.UnsortedDir) {
		return fmt.Errorf("invalid config: unsorted_dir %q must be a relative path", c.Sorting.UnsortedDir)
	}

	if err := checkPathFormat(c.Sorting.PathFormat, filepath.Clean(c.Sorting.UnsortedDir)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func normalizeExtensions(exts []string) []string {
	seen := make(map[string]struct{}, len(exts))
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
