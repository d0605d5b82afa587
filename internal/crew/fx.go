package crew

import (
	"github.com/fitcrew/rollcall/internal/crew/service"
	"go.uber.org/fx"
)

var Module = fx.Module("crew.service",
	fx.Provide(service.NewService),
)
