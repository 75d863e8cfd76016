package logger_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripmate/pkg/config"
	"tripmate/pkg/logger"
)

var Module = fx.Provide(provideLogger)

func provideLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	if err := logger.Init(cfg.Logger.Level); err != nil {
		return nil, err
	}
	log := logger.Get()
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Sync()
			return nil
		},
	})
	return log, nil
}
