// Package main provides the flowbuilder terminal UI for building and
// managing workflow automations against the workflow service.
package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/chatforge/flowbuilder/pkg/client"
	"github.com/chatforge/flowbuilder/pkg/log"
	"github.com/chatforge/flowbuilder/pkg/otelhelper"
	"github.com/chatforge/flowbuilder/pkg/shell"
	"github.com/chatforge/flowbuilder/pkg/tui"
)

func main() {
	logger := log.WithModule("flowbuilder")

	cmd := &cli.Command{
		Name:                  "flowbuilder",
		Usage:                 "Build and manage workflow automations",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Usage:   "Base URL of the workflow service API",
				Value:   "http://localhost:9096",
				Sources: cli.EnvVars("FLOWBUILDER_API_URL"),
			},
			&cli.StringFlag{
				Name:     "organization-id",
				Usage:    "Organization (tenant) every request is scoped to",
				Required: true,
				Sources:  cli.EnvVars("FLOWBUILDER_ORG_ID"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Export client spans to the configured OTLP endpoint",
				Sources: cli.EnvVars("FLOWBUILDER_TRACING"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "Write logs to a file instead of stderr; the TUI owns the terminal",
				Sources: cli.EnvVars("FLOWBUILDER_LOG_FILE"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			if path := command.String("log-file"); path != "" {
				f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return err
				}
				defer func() {
					if err := f.Close(); err != nil {
						logger.WarnContext(ctx, "Failed to close log file", "error", err)
					}
				}()

				log.SetupWriter(f, command.String("log-level"))
			} else {
				log.Setup(command.String("log-level"))
			}

			logger.InfoContext(ctx, "Starting flowbuilder",
				"api_url", command.String("api-url"),
				"organization_id", command.String("organization-id"))

			var opts []client.Option

			if command.Bool("tracing") {
				tracer, err := otelhelper.NewTracer(ctx, "flowbuilder")
				if err != nil {
					return err
				}

				opts = append(opts, client.WithTracer(tracer))
			}

			c := client.New(command.String("api-url"), logger, opts...)
			s := shell.New(c, command.String("organization-id"), logger)

			return tui.Run(ctx, s)
		},
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
