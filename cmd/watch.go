package cmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli"

	ccommon "github.com/niteowll/SnoozeTabs/cmd/common"
	"github.com/niteowll/SnoozeTabs/common"
	"github.com/niteowll/SnoozeTabs/pkg/snoozecli"
)

func watch(ctx *cli.Context) error {
	client, err := snoozecli.NewClient()
	if err != nil {
		ccommon.PrintRuntimeErr(ctx, "watch", "new_client", err)
		return nil
	}
	handler := snoozecli.NewWakeHandler("", func(u *common.WakeUpdate) error {
		switch u.Action {
		case common.WakeTabOpened:
			fmt.Printf("%s woke %s (%s)\n",
				time.Now().Format("15:04:05"), u.Url, u.Key)
		case common.WakeNotification:
			fmt.Printf("%s notified for %s\n",
				time.Now().Format("15:04:05"), u.Title)
		}
		return nil
	})
	if err := client.Watch(handler); err != nil {
		ccommon.PrintRuntimeErr(ctx, "watch", "subscribe", err)
		return nil
	}
	fmt.Println("watching for wakes, press ctrl-c to stop")
	if err := client.Listen(); err != nil {
		ccommon.PrintRuntimeErr(ctx, "watch", "listen", err)
	}
	return nil
}
