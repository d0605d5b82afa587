package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fitcrew/rollcall/internal/adminstats"
	statsdomain "github.com/fitcrew/rollcall/internal/adminstats/domain"
	"github.com/fitcrew/rollcall/internal/attendance"
	attendancedomain "github.com/fitcrew/rollcall/internal/attendance/domain"
	"github.com/fitcrew/rollcall/internal/calendar"
	calendardomain "github.com/fitcrew/rollcall/internal/calendar/domain"
	"github.com/fitcrew/rollcall/internal/catalog"
	"github.com/fitcrew/rollcall/internal/config"
	"github.com/fitcrew/rollcall/internal/crew"
	crewdomain "github.com/fitcrew/rollcall/internal/crew/domain"
	"github.com/fitcrew/rollcall/internal/invite"
	invitedomain "github.com/fitcrew/rollcall/internal/invite/domain"
	obsmetrics "github.com/fitcrew/rollcall/internal/observability/metrics"
	"github.com/fitcrew/rollcall/internal/ranking"
	rankingdomain "github.com/fitcrew/rollcall/internal/ranking/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	crew.Module,
	catalog.Module,
	attendance.Module,
	ranking.Module,
	calendar.Module,
	adminstats.Module,
	invite.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(metrics *obsmetrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(obsmetrics.GinMiddleware(metrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type engineParams struct {
	fx.In

	Metrics *obsmetrics.Metrics `optional:"true"`
}

func registerGin(p engineParams) *gin.Engine {
	return NewEngine(p.Metrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	log    *zap.Logger
	genID  *snowflake.Node

	crewSvc       crewdomain.Service
	attendanceSvc attendancedomain.Service
	rankingSvc    rankingdomain.Service
	calendarSvc   calendardomain.Service
	statsSvc      statsdomain.Service
	inviteSvc     invitedomain.Service
}

type ServerParams struct {
	fx.In

	Gin   *gin.Engine
	Cfg   config.Config
	Log   *zap.Logger
	GenID *snowflake.Node

	CrewSvc       crewdomain.Service
	AttendanceSvc attendancedomain.Service
	RankingSvc    rankingdomain.Service
	CalendarSvc   calendardomain.Service
	StatsSvc      statsdomain.Service
	InviteSvc     invitedomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine: p.Gin,
		cfg:    p.Cfg,
		log:    p.Log.Named("http.server"),
		genID:  p.GenID,

		crewSvc:       p.CrewSvc,
		attendanceSvc: p.AttendanceSvc,
		rankingSvc:    p.RankingSvc,
		calendarSvc:   p.CalendarSvc,
		statsSvc:      p.StatsSvc,
		inviteSvc:     p.InviteSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	crews := api.Group("/crews/:crewId", s.UserContext())
	{
		// -------- Read models --------
		crews.GET("/rankings", s.GetRankings)
		crews.GET("/calendar", s.GetCalendar)
		crews.GET("/stats", s.GetAdminStats)

		// -------- Writes --------
		crews.POST("/attendance/bulk", s.RecordBulkAttendance)
		crews.POST("/invites", s.IssueInviteCode)
		crews.POST("/invites/:code/deactivate", s.DeactivateInviteCode)
	}
}
