package complaint

import (
	"github.com/grazebox/backoffice/internal/complaint/service"
	"go.uber.org/fx"
)

var Module = fx.Module("complaint.service",
	fx.Provide(service.New),
)
