package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli"

	ccommon "github.com/niteowll/SnoozeTabs/cmd/common"
	"github.com/niteowll/SnoozeTabs/common"
	"github.com/niteowll/SnoozeTabs/pkg/snoozecli"
	"github.com/niteowll/SnoozeTabs/pkg/snoozelib"
)

// snoozeParams builds the op payload from the command line, resolving the
// wake time from either the named catalog entry or an explicit instant.
func snoozeParams(ctx *cli.Context) (*common.SnoozeParams, error) {
	url := ctx.Args().First()
	if url == "" {
		return nil, errors.New("no url provided")
	}

	var (
		wake     int64
		timeType snoozelib.TimeType
		err      error
	)
	if whenTime != "" {
		t, perr := time.Parse(time.RFC3339, whenTime)
		if perr != nil {
			return nil, fmt.Errorf("invalid --when value: %s", perr.Error())
		}
		wake = snoozelib.Millis(t)
		timeType = snoozelib.PickTime
	} else {
		timeType = snoozelib.TimeType(atTime)
		wake, err = snoozelib.TimeForType(time.Now(), timeType)
		if err == snoozelib.ErrPickTime {
			return nil, errors.New("this wake time needs an explicit --when value")
		}
		if err != nil {
			return nil, fmt.Errorf("unknown wake time %q, run the times command to list them", atTime)
		}
	}

	return &common.SnoozeParams{
		Url:      url,
		Title:    tabTitle,
		Time:     wake,
		TimeType: timeType,
		WindowId: windowId,
	}, nil
}

func snooze(ctx *cli.Context) error {
	params, err := snoozeParams(ctx)
	if err != nil {
		return ccommon.PrintErrWithCmdHelp(ctx, err)
	}
	if err := snoozecli.EnsureDaemon(); err != nil {
		ccommon.PrintRuntimeErr(ctx, "snooze", "ensure_daemon", err)
		return nil
	}
	client, err := snoozecli.NewClient()
	if err != nil {
		ccommon.PrintRuntimeErr(ctx, "snooze", "new_client", err)
		return nil
	}
	defer client.Close()
	res, err := client.Confirm(params)
	if err != nil {
		ccommon.PrintRuntimeErr(ctx, "snooze", "confirm", err)
		return nil
	}
	if params.Time == snoozelib.NextOpen {
		fmt.Printf("snoozed %s until the browser next opens (%s)\n", params.Url, res.Key)
	} else {
		fmt.Printf("snoozed %s until %s (%s)\n", params.Url,
			snoozelib.FromMillis(params.Time).Format(time.RFC1123), res.Key)
	}
	return nil
}

func cancel(ctx *cli.Context) error {
	params, err := snoozeParams(ctx)
	if err != nil {
		return ccommon.PrintErrWithCmdHelp(ctx, err)
	}
	client, err := snoozecli.NewClient()
	if err != nil {
		ccommon.PrintRuntimeErr(ctx, "cancel", "new_client", err)
		return nil
	}
	defer client.Close()
	if err := client.Cancel(params); err != nil {
		ccommon.PrintRuntimeErr(ctx, "cancel", "cancel", err)
		return nil
	}
	fmt.Println("canceled", params.Url)
	return nil
}

func setConfirm(ctx *cli.Context) error {
	arg := ctx.Args().First()
	if arg != "show" && arg != "hide" {
		return ccommon.PrintErrWithCmdHelp(ctx, errors.New("expected 'show' or 'hide'"))
	}
	client, err := snoozecli.NewClient()
	if err != nil {
		ccommon.PrintRuntimeErr(ctx, "setconfirm", "new_client", err)
		return nil
	}
	defer client.Close()
	if err := client.SetConfirm(arg == "hide"); err != nil {
		ccommon.PrintRuntimeErr(ctx, "setconfirm", "setconfirm", err)
		return nil
	}
	fmt.Println("confirmation bar:", arg)
	return nil
}

func times(ctx *cli.Context) error {
	now := time.Now()
	for _, entry := range snoozelib.KnownTimes() {
		wake, err := snoozelib.TimeForType(now, entry.Type)
		switch {
		case err == snoozelib.ErrPickTime:
			fmt.Printf("  %-22s %s (needs --when)\n", entry.Type, entry.Label)
		case err != nil:
			continue
		case wake == snoozelib.NextOpen:
			fmt.Printf("  %-22s %s\n", entry.Type, entry.Label)
		default:
			fmt.Printf("  %-22s %s -> %s\n", entry.Type, entry.Label,
				snoozelib.FromMillis(wake).Format(time.RFC1123))
		}
	}
	return nil
}
