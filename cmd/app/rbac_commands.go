package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/ros/cmd/app/commands"
	"github.com/allisson/ros/internal/app"
	"github.com/allisson/ros/internal/config"
)

func getRBACCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "check-permissions",
			Usage: "List the permissions RBAC grants to an identity",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "identity",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Base64 encoded X-RH-IDENTITY value",
				},
				&cli.StringFlag{
					Name:    "application",
					Aliases: []string{"a"},
					Usage:   "Application to query (defaults to RBAC_APPLICATION)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				client, err := container.PermissionClient()
				if err != nil {
					return err
				}

				application := cmd.String("application")
				if application == "" {
					application = cfg.RBACApplication
				}

				return commands.RunCheckPermissions(
					ctx,
					client,
					container.Logger(),
					cmd.String("identity"),
					application,
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
	}
}
