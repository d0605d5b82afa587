package invite

import (
	"github.com/fitcrew/rollcall/internal/invite/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invite.service",
	fx.Provide(service.NewService),
)
