package calendar

import (
	"github.com/fitcrew/rollcall/internal/calendar/service"
	"go.uber.org/fx"
)

var Module = fx.Module("calendar.service",
	fx.Provide(service.NewService),
)
