// snoozed runs the wake daemon alone, without the CLI wrapper. It is the
// entrypoint packaging hooks point service managers at.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/niteowll/SnoozeTabs/common"
	"github.com/niteowll/SnoozeTabs/internal/api"
	"github.com/niteowll/SnoozeTabs/internal/bookmarks"
	"github.com/niteowll/SnoozeTabs/internal/browser"
	"github.com/niteowll/SnoozeTabs/internal/server"
	"github.com/niteowll/SnoozeTabs/pkg/snoozelib"
)

const port = 3849

func main() {
	lg := log.Default()

	m, err := snoozelib.InitManager()
	if err != nil {
		fail(err)
	}
	store, err := bookmarks.OpenSQLite(filepath.Join(snoozelib.ConfigDir, "bookmarks.db"))
	if err != nil {
		fail(err)
	}
	instanceId, created, err := snoozelib.InstanceID()
	if err != nil {
		fail(err)
	}
	mirror := bookmarks.NewMirror(lg, store, bookmarks.FolderTitle(instanceId))
	if created {
		if err := mirror.Archive(context.Background(), time.Now()); err != nil {
			lg.Println("could not archive stale bookmark folder:", err.Error())
		}
	}

	remote := browser.NewRemote(lg)
	a := api.NewApi(lg, m, remote, mirror, nil)
	rpc := server.NewRPCServer(&server.RPCConfig{
		Secret: os.Getenv(common.RPCSecretEnv),
	}, a, remote.Register, remote.Unregister)
	serv := server.NewServer(lg, rpc, port)
	a.RegisterHandlers(serv)

	if err := a.Startup(); err != nil {
		fail(err)
	}
	if err := serv.Start(context.Background()); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Println("snoozed:", err.Error())
	os.Exit(1)
}
