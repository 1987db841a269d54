package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lintang-b-s/osm-route/pkg/osmgraph"

	"github.com/spf13/viper"
)

// Config values read once at startup. everything else reads viper directly.
type Config struct {
	MapFile       string
	HighwayTypes  []string
	MaxIterations int
	BatchWorkers  int
	ShowProgress  bool

	// FileUsed path of the config file, empty when only defaults and env apply.
	FileUsed string
}

func setDefaults() {
	viper.SetDefault("MAP_FILE", "berkeley.osm")
	viper.SetDefault("HIGHWAY_TYPES", osmgraph.DefaultHighwayTypes)
	viper.SetDefault("ROUTE_MAX_ITERATIONS", 0)
	viper.SetDefault("BATCH_WORKERS", 4)
	viper.SetDefault("SHOW_PROGRESS", false)
}

func New() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var typeErr viper.ConfigFileNotFoundError
		if !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	config := &Config{
		MapFile:       viper.GetString("MAP_FILE"),
		HighwayTypes:  highwayTypes(),
		MaxIterations: viper.GetInt("ROUTE_MAX_ITERATIONS"),
		BatchWorkers:  viper.GetInt("BATCH_WORKERS"),
		ShowProgress:  viper.GetBool("SHOW_PROGRESS"),
		FileUsed:      viper.ConfigFileUsed(),
	}
	if config.MapFile == "" {
		return nil, errors.New("MAP_FILE is empty")
	}
	return config, nil
}

// highwayTypes accepts a yaml list or a comma separated env value.
func highwayTypes() []string {
	var types []string
	if raw, ok := viper.Get("HIGHWAY_TYPES").(string); ok {
		types = strings.Split(raw, ",")
	} else {
		types = viper.GetStringSlice("HIGHWAY_TYPES")
	}

	out := make([]string, 0, len(types))
	for _, t := range types {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
