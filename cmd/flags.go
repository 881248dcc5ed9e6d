package cmd

import "github.com/urfave/cli"

var (
	atTime   string
	whenTime string
	tabTitle string
	windowId int64
)

var snoozeFlags = []cli.Flag{
	cli.StringFlag{
		Name:        "at, a",
		Usage:       "named wake time (see the times command)",
		Value:       "wake-tomorrow",
		Destination: &atTime,
	},
	cli.StringFlag{
		Name:        "when, w",
		Usage:       "exact wake time in RFC 3339 format",
		Destination: &whenTime,
	},
	cli.StringFlag{
		Name:        "title, t",
		Usage:       "tab title recorded with the snooze",
		Destination: &tabTitle,
	},
	cli.Int64Flag{
		Name:        "window",
		Usage:       "window id the tab should reopen in",
		Destination: &windowId,
	},
}
