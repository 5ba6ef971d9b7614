package message

import (
	"github.com/grazebox/backoffice/internal/message/service"
	"go.uber.org/fx"
)

var Module = fx.Module("message.service",
	fx.Provide(service.New),
)
