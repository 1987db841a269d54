package logger_di

import (
	"time"

	"github.com/lintang-b-s/osm-route/pkg/di/config"
	logConfig "github.com/lintang-b-s/osm-route/pkg/logger/config"
	myZap "github.com/lintang-b-s/osm-route/pkg/logger/zap"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func New(appConfig *config.Config) (*zap.Logger, func(), error) {
	viper.SetDefault("LOG_LEVEL", logConfig.INFO_LEVEL)
	viper.SetDefault("LOG_TIME_FORMAT", time.RFC3339Nano)

	cfg := logConfig.Configuration{
		Level:      viper.GetInt("LOG_LEVEL"),
		TimeFormat: viper.GetString("LOG_TIME_FORMAT"),
	}

	err := cfg.Validate()
	if err != nil {
		return nil, nil, err
	}

	log, err := myZap.New(cfg)

	if err != nil {
		return nil, nil, err
	}

	if appConfig.FileUsed == "" {
		log.Warn("config file not found, using defaults and environment")
	} else {
		log.Info("config loaded", zap.String("file", appConfig.FileUsed))
	}

	cleanup := func() {
		_ = log.Sync()
	}

	return log, cleanup, nil
}
