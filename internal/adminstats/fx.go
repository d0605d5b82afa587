package adminstats

import (
	"github.com/fitcrew/rollcall/internal/adminstats/service"
	"go.uber.org/fx"
)

var Module = fx.Module("adminstats.service",
	fx.Provide(service.NewService),
)
