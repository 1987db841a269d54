package zap

import (
	"github.com/lintang-b-s/osm-route/pkg/logger/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New json logger to stdout. config.Level maps onto zapcore levels (-1 debug .. 2 error).
func New(cfg config.Configuration) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(zapcore.Level(cfg.Level))
	zapCfg.EncoderConfig.TimeKey = "time"
	zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(cfg.TimeFormat)
	zapCfg.OutputPaths = []string{"stdout"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}
	if cfg.Level == config.DEBUG_LEVEL {
		zapCfg.Development = true
		zapCfg.Sampling = nil
	}

	return zapCfg.Build()
}
