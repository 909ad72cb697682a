package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/fmis/internal/clock"
	"github.com/smallbiznis/fmis/internal/config"
	"github.com/smallbiznis/fmis/internal/migration"
	"github.com/smallbiznis/fmis/internal/observability"
	"github.com/smallbiznis/fmis/internal/server"
	"github.com/smallbiznis/fmis/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var flagNode int64

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int64Var(&flagNode, "node", 1, "Snowflake node number of this instance")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	if err := app.Err(); err != nil {
		return err
	}
	app.Run()
	return nil
}

func RegisterSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(flagNode)
}
