package migration

import (
	"github.com/fitcrew/rollcall/internal/config"

	attendancedomain "github.com/fitcrew/rollcall/internal/attendance/domain"
	catalogdomain "github.com/fitcrew/rollcall/internal/catalog/domain"
	crewdomain "github.com/fitcrew/rollcall/internal/crew/domain"
	invitedomain "github.com/fitcrew/rollcall/internal/invite/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return RunMigrations(sqlDB)
		}

		// Non-postgres setups (local sqlite, mysql) lean on gorm's schema sync.
		return conn.AutoMigrate(
			&crewdomain.Crew{},
			&crewdomain.Member{},
			&catalogdomain.Location{},
			&catalogdomain.ExerciseType{},
			&attendancedomain.AttendanceEvent{},
			&invitedomain.InviteCode{},
		)
	}),
)
