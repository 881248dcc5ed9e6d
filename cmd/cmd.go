// Package cmd implements the snoozetabs command-line interface: the
// background daemon plus client commands that talk to it over the socket.
package cmd

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli"

	"github.com/niteowll/SnoozeTabs/cmd/common"
)

type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

// currentBuildArgs is captured by Execute so the daemon can report its
// version over RPC.
var currentBuildArgs BuildArgs

func Execute(args []string, bArgs BuildArgs) error {
	currentBuildArgs = bArgs
	app := cli.App{
		Name:                  "snoozetabs",
		HelpName:              "snoozetabs",
		Usage:                 "Snooze browser tabs and wake them later.",
		Version:               fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType),
		UsageText:             "snoozetabs <command> [arguments...]",
		Description:           DESCRIPTION,
		CustomAppHelpTemplate: HELP_TEMPL,
		OnUsageError:          common.UsageErrorCallback,
		Commands: []cli.Command{
			{
				Name:   "daemon",
				Usage:  "run the background wake daemon",
				Action: daemon,
			},
			{
				Name:  "host",
				Usage: "native messaging host for the browser extension",
				Subcommands: []cli.Command{
					{
						Name:   "run",
						Usage:  "serve native messaging on stdin/stdout",
						Action: hostRun,
					},
					{
						Name:   "install",
						Usage:  "install native messaging manifests",
						Action: hostInstall,
						Flags:  hostFlags,
					},
				},
			},
			{
				Name:                   "snooze",
				Aliases:                []string{"s"},
				Usage:                  "snooze a tab until a wake time",
				Action:                 snooze,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            SnoozeDescription,
				UseShortOptionHandling: true,
				Flags:                  snoozeFlags,
			},
			{
				Name:                   "list",
				Aliases:                []string{"l"},
				Usage:                  "display pending snoozed tabs",
				Action:                 list,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            ListDescription,
				UseShortOptionHandling: true,
			},
			{
				Name:                   "cancel",
				Aliases:                []string{"c"},
				Usage:                  "cancel a pending snoozed tab",
				Action:                 cancel,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            CancelDescription,
				UseShortOptionHandling: true,
				Flags:                  snoozeFlags,
			},
			{
				Name:   "setconfirm",
				Usage:  "toggle the snooze confirmation bar",
				Action: setConfirm,
			},
			{
				Name:   "wake",
				Usage:  "open every due snoozed tab now",
				Action: wake,
			},
			{
				Name:   "times",
				Usage:  "list the named wake times",
				Action: times,
			},
			{
				Name:               "watch",
				Aliases:            []string{"w"},
				Usage:              "stream wake events from the daemon",
				Action:             watch,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        WatchDescription,
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  common.Help,
			},
			{
				Name:               "version",
				Aliases:            []string{"v"},
				Usage:              "prints installed version of snoozetabs",
				UsageText:          " ",
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             common.GetVersion,
			},
		},
		Action:                 list,
		UseShortOptionHandling: true,
		HideHelp:               true,
		HideVersion:            true,
	}
	common.VersionCmdStr = fmt.Sprintf("%s %s (%s_%s)\nBuild: %s=%s\n",
		app.Name,
		app.Version,
		runtime.GOOS,
		runtime.GOARCH,
		bArgs.Date, bArgs.Commit,
	)
	return app.Run(args)
}
