package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	ccommon "github.com/niteowll/SnoozeTabs/cmd/common"
	"github.com/niteowll/SnoozeTabs/pkg/snoozecli"
)

func wake(ctx *cli.Context) error {
	client, err := snoozecli.NewClient()
	if err != nil {
		ccommon.PrintRuntimeErr(ctx, "wake", "new_client", err)
		return nil
	}
	if err := client.Wake(); err != nil {
		ccommon.PrintRuntimeErr(ctx, "wake", "wake", err)
		return nil
	}
	fmt.Println("woke all due tabs")
	return nil
}
