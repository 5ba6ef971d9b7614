package activity

import (
	"github.com/grazebox/backoffice/internal/activity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("activity.service",
	fx.Provide(
		service.New,
		service.NewRecorder,
	),
)
