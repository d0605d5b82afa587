package ranking

import (
	"github.com/fitcrew/rollcall/internal/ranking/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ranking.service",
	fx.Provide(service.NewService),
)
