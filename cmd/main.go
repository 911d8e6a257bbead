package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/prmate/prmate/internal/agent"
	"github.com/prmate/prmate/internal/config"
	domainErrors "github.com/prmate/prmate/internal/errors"
	"github.com/prmate/prmate/internal/i18n"
	"github.com/prmate/prmate/internal/logger"
	"github.com/prmate/prmate/internal/mcp"
	"github.com/prmate/prmate/internal/providers"
	"github.com/prmate/prmate/internal/version"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Error initializing the cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func initializeApp() (*cli.Command, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}

	translations, err := i18n.NewTranslations(cfg.Language)
	if err != nil {
		return nil, fmt.Errorf("error loading translations: %w", err)
	}

	return &cli.Command{
		Name:    "prmate",
		Usage:   translations.GetMessage("app_usage", 0, nil),
		Version: version.FullVersion(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable info logging",
			},
		},
		Commands: []*cli.Command{
			newServeCommand(cfg, translations),
			newCheckCommand(cfg, translations),
		},
	}, nil
}

func newServeCommand(cfg *config.Config, t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: t.GetMessage("serve_command_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "transport",
				Value: "sse",
				Usage: t.GetMessage("serve_transport_usage", 0, nil),
			},
			&cli.StringFlag{
				Name:  "addr",
				Value: ":8000",
				Usage: t.GetMessage("serve_addr_usage", 0, nil),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger.Initialize(cmd.Bool("debug"), cmd.Bool("verbose"))

			if err := cfg.Validate(); err != nil {
				return err
			}

			aiProvider, err := providers.NewAIProvider(ctx, cfg)
			if err != nil {
				return err
			}

			vcsClient, err := providers.NewVCSClient(cfg)
			if err != nil {
				return err
			}

			prAgent := agent.New(
				agent.WithConfig(cfg),
				agent.WithAIProvider(aiProvider),
				agent.WithVCSClient(vcsClient),
			)

			srv := mcp.NewServer(prAgent, t)

			switch transport := cmd.String("transport"); transport {
			case "stdio":
				logger.Info(ctx, "starting MCP server", "transport", "stdio")
				return srv.Run()
			case "sse":
				addr := cmd.String("addr")
				logger.Info(ctx, "starting MCP server", "transport", "sse", "addr", addr)
				return srv.RunSSE(addr)
			default:
				return domainErrors.ErrTransportNotSupported.
					WithContext("transport", transport)
			}
		},
	}
}

func newCheckCommand(cfg *config.Config, t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: t.GetMessage("check_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			fmt.Println(t.GetMessage("check.ok", 0, map[string]interface{}{
				"GitProvider": cfg.GitProvider,
				"AIProvider":  cfg.AI.Provider,
			}))
			return nil
		},
	}
}
