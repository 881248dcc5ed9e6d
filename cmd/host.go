package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli"

	ccommon "github.com/niteowll/SnoozeTabs/cmd/common"
	"github.com/niteowll/SnoozeTabs/internal/nativehost"
	"github.com/niteowll/SnoozeTabs/pkg/snoozecli"
)

var (
	chromeExtId  string
	firefoxExtId string

	hostFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "chrome-id",
			Usage:       "chrome extension id to authorize",
			Value:       nativehost.OfficialChromeExtensionID,
			Destination: &chromeExtId,
		},
		cli.StringFlag{
			Name:        "firefox-id",
			Usage:       "firefox add-on id to authorize",
			Value:       nativehost.OfficialFirefoxExtensionID,
			Destination: &firefoxExtId,
		},
	}
)

// hostRun is launched by the browser, not the user: it speaks the native
// messaging protocol on stdin/stdout and relays requests to the daemon.
func hostRun(ctx *cli.Context) error {
	if err := snoozecli.EnsureDaemon(); err != nil {
		ccommon.PrintRuntimeErr(ctx, "host", "ensure_daemon", err)
		return nil
	}
	client, err := snoozecli.NewClient()
	if err != nil {
		ccommon.PrintRuntimeErr(ctx, "host", "new_client", err)
		return nil
	}
	defer client.Close()
	h := nativehost.NewHost(client, currentBuildArgs.Version)
	return h.Run()
}

func hostInstall(ctx *cli.Context) error {
	executable, err := os.Executable()
	if err != nil {
		ccommon.PrintRuntimeErr(ctx, "host", "executable", err)
		return nil
	}
	installer := &nativehost.ManifestInstaller{
		HostPath:           executable,
		ChromeExtensionID:  chromeExtId,
		FirefoxExtensionID: firefoxExtId,
	}
	if err := installer.Validate(); err != nil {
		return ccommon.PrintErrWithCmdHelp(ctx, err)
	}
	installed := 0
	if firefoxExtId != "" {
		path, err := installer.InstallFirefox()
		if err != nil {
			ccommon.PrintRuntimeErr(ctx, "host", "install_firefox", err)
		} else {
			fmt.Println("installed firefox manifest:", path)
			installed++
		}
	}
	if chromeExtId != "" {
		for _, browser := range []nativehost.Browser{
			nativehost.BrowserChrome, nativehost.BrowserChromium,
			nativehost.BrowserEdge, nativehost.BrowserBrave,
		} {
			path, err := installer.InstallChrome(browser)
			if err != nil {
				continue
			}
			fmt.Printf("installed %s manifest: %s\n", browser, path)
			installed++
		}
	}
	if installed == 0 {
		return ccommon.PrintErrWithCmdHelp(ctx, errors.New("no manifests installed"))
	}
	return nil
}
