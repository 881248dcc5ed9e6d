package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	ccommon "github.com/niteowll/SnoozeTabs/cmd/common"
	"github.com/niteowll/SnoozeTabs/pkg/snoozecli"
	"github.com/niteowll/SnoozeTabs/pkg/snoozelib"
)

func list(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := snoozecli.NewClient()
	if err != nil {
		ccommon.PrintRuntimeErr(ctx, "list", "new_client", err)
		return nil
	}
	defer client.Close()
	l, err := client.List()
	if err != nil {
		ccommon.PrintRuntimeErr(ctx, "list", "get_list", err)
		return nil
	}
	if len(l.Items) == 0 {
		fmt.Println("snoozetabs: no snoozed tabs")
		return nil
	}
	txt := "Here are your snoozed tabs:"
	txt += "\n\n--------------------------------------------------------------------"
	txt += "\n|Num|       Wake Time       |            Title            |   Key   |"
	txt += "\n|---|-----------------------|-----------------------------|---------|"
	for i, item := range l.Items {
		var wake string
		if item.WakeTime == snoozelib.NextOpen {
			wake = "next browser open"
		} else {
			wake = snoozelib.FromMillis(item.WakeTime).Format("Jan 2, 2006 15:04")
		}
		title := item.Title
		if title == "" {
			title = item.Url
		}
		n := len(title)
		switch {
		case n > 27:
			title = title[:24] + "..."
		case n < 27:
			title = beaut(title, 27)
		}
		txt += fmt.Sprintf("\n| %d | %s | %s | %s |", i+1, beaut(wake, 21), title, item.Key[:7])
	}
	txt += "\n--------------------------------------------------------------------"
	fmt.Println(txt)
	if l.DontShow {
		fmt.Println("\nconfirmation bar is hidden")
	}
	return nil
}

func beaut(s string, n int) (b string) {
	n1 := len(s)
	x := n - n1
	x1 := x / 2
	w := string(
		replic(' ', x1),
	)
	b = w
	b += s
	b += w
	if x%2 != 0 {
		b += " "
	}
	return
}

func replic[aT any](v aT, n int) []aT {
	a := make([]aT, n)
	for i := range a {
		a[i] = v
	}
	return a
}
