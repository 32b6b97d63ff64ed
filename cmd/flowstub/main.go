// Package main provides the local stand-in for the hosted workflow service,
// used for offline development and integration testing of the builder.
package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/chatforge/flowbuilder/pkg/devserver"
	"github.com/chatforge/flowbuilder/pkg/log"
	"github.com/chatforge/flowbuilder/pkg/persistence/file"
)

const defaultPort = 9096

func main() {
	logger := log.WithModule("flowstub")

	cmd := &cli.Command{
		Name:                  "flowstub",
		Usage:                 "Run a local workflow service stub",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the stub server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "Directory where workflows are stored, one JSON file each",
				Value:   "./data",
				Sources: cli.EnvVars("FLOWBUILDER_DATA_DIR"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger.InfoContext(ctx, "Initializing workflow service stub",
				"data_dir", command.String("data-dir"))

			persistence := file.NewPersistence(command.String("data-dir"))

			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			server := devserver.NewServer(logger, persistence)

			return server.Start(command.Int("port"))
		},
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
