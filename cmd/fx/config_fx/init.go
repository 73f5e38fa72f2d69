package config_fx

import (
	"go.uber.org/fx"

	"travelguide/internal/config"
)

var Module = fx.Provide(config.Load)
