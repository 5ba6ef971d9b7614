package store

import (
	"github.com/grazebox/backoffice/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func New(cfg config.Config, log *zap.Logger) (*Store, error) {
	return Open(cfg.DataDir, log)
}

var Module = fx.Module("store",
	fx.Provide(New),
)
