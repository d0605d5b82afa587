package attendance

import (
	"github.com/fitcrew/rollcall/internal/attendance/service"
	"go.uber.org/fx"
)

var Module = fx.Module("attendance.service",
	fx.Provide(service.NewService),
)
