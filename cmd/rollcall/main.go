package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/fitcrew/rollcall/internal/clock"
	"github.com/fitcrew/rollcall/internal/config"
	"github.com/fitcrew/rollcall/internal/migration"
	obsmetrics "github.com/fitcrew/rollcall/internal/observability/metrics"
	"github.com/fitcrew/rollcall/internal/server"
	"github.com/fitcrew/rollcall/pkg/db"
	"github.com/fitcrew/rollcall/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		obsmetrics.Module,
		migration.Module,

		// HTTP surface; pulls in the feature modules.
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
