package store

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/treedrag/pkg/tree"
)

// Config describes where the pasteboard lives and the shape of the sample
// tree every host starts from.
type Config interface {
	BasePath() string
	Groups() int
	Items() int
}

// LoadConfig reads `.treedrag` (yaml) from $TREEDRAG_CONFIG_PATH or the
// working directory, with TREEDRAG_* environment overrides. A missing config
// file is not an error.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.treedrag")
	v.SetDefault("groups", tree.DefaultGroups)
	v.SetDefault("items", tree.DefaultItems)
	v.SetConfigName(".treedrag") // .yaml is implicit
	v.SetEnvPrefix("TREEDRAG")
	v.AutomaticEnv()

	if override := os.Getenv("TREEDRAG_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	cfg := &fileConfig{
		Path:       path,
		GroupCount: v.GetInt("groups"),
		ItemCount:  v.GetInt("items"),
	}
	if cfg.GroupCount < 0 || cfg.ItemCount < 0 {
		return nil, fmt.Errorf("store: negative tree shape %dx%d", cfg.GroupCount, cfg.ItemCount)
	}
	return cfg, nil
}

type fileConfig struct {
	Path       string `json:"path"`
	GroupCount int    `json:"groups"`
	ItemCount  int    `json:"items"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Groups() int {
	return f.GroupCount
}

func (f *fileConfig) Items() int {
	return f.ItemCount
}

// Static is a Config with fixed values, for tests and embedding.
type Static struct {
	Path       string
	GroupCount int
	ItemCount  int
}

func (s Static) BasePath() string { return s.Path }
func (s Static) Groups() int      { return s.GroupCount }
func (s Static) Items() int       { return s.ItemCount }
