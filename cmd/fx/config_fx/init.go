package config_fx

import (
	"go.uber.org/fx"

	"tripmate/pkg/config"
)

var Module = fx.Provide(config.Load)
