package cmd

const HELP_TEMPL = `Usage: {{if .UsageText}}{{.UsageText}}{{else}}{{.HelpName}} {{if .VisibleFlags}}[global options]{{end}}{{if .Commands}} command [command options]{{end}} {{if .ArgsUsage}}{{.ArgsUsage}}{{else}}[arguments...]{{end}}{{end}}
{{.Description}}{{if .VisibleCommands}}
Commands:{{range .VisibleCategories}}{{if .Name}}

{{.Name}}:{{range .VisibleCommands}}
  {{join .Names ", "}}{{"\t"}}{{.Usage}}{{end}}{{else}}{{range .VisibleCommands}}
{{"\t"}}{{index .Names 0}}{{"\t:\t"}}{{.Usage}}{{end}}{{end}}{{end}}{{end}}{{if .VisibleFlags}}{{end}}

Use "{{.HelpName}} help <command>" for more information about any command.

`

const CMD_HELP_TEMPL = `{{if .Description}}{{.Description}}{{else}}{{.HelpName}} - {{.Usage}}

{{end}}Usage:
        {{.HelpName}} {{if .UsageText}}{{.UsageText}}{{else}}[arguments...]{{end}}{{if .VisibleFlags}}

Supported Flags:{{range .VisibleFlags}}
  {{.}}{{end}}{{end}}

`

const DESCRIPTION = `
SnoozeTabs puts browser tabs to sleep and brings them back when you
need them. Snoozed tabs are closed, mirrored as bookmarks, and
reopened automatically at their wake time by the background daemon.
`

const SnoozeDescription = `
Snooze a tab until a chosen wake time. The tab's address and title
are recorded, the tab is mirrored as a bookmark, and it reopens
automatically when the wake time arrives.

Pass a named wake time with --at (run "snoozetabs times" to list
them) or an exact moment with --when using RFC 3339 format.
`

const ListDescription = `
List pending snoozed tabs, earliest wake time first.
`

const CancelDescription = `
Cancel a pending snoozed tab. The tab must be identified by the same
url, title and wake time it was snoozed with; use the list command to
look them up.
`

const WatchDescription = `
Stream wake events from the daemon as due tabs are reopened. Runs
until interrupted.
`
