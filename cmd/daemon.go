package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/urfave/cli"

	ccommon "github.com/niteowll/SnoozeTabs/cmd/common"
	"github.com/niteowll/SnoozeTabs/common"
	"github.com/niteowll/SnoozeTabs/internal/api"
	"github.com/niteowll/SnoozeTabs/internal/bookmarks"
	"github.com/niteowll/SnoozeTabs/internal/browser"
	daemonlib "github.com/niteowll/SnoozeTabs/internal/daemon"
	"github.com/niteowll/SnoozeTabs/internal/server"
	"github.com/niteowll/SnoozeTabs/pkg/logger"
	"github.com/niteowll/SnoozeTabs/pkg/snoozelib"
)

// DEF_PORT is the TCP fallback port for the socket transport; the
// extension-facing web bridge listens on the next port up.
const DEF_PORT = 3849

const bookmarksFileName = "bookmarks.db"

// DaemonComponents holds all initialized daemon components, allowing
// unified initialization and cleanup.
type DaemonComponents struct {
	Store   *bookmarks.SQLiteStore
	Manager *snoozelib.Manager
	Remote  *browser.Remote
	Api     *api.Api
	Server  *server.Server
	logger  logger.Logger
	stdLog  *log.Logger
}

// Close releases daemon resources in reverse order of initialization.
func (c *DaemonComponents) Close() {
	if c.stdLog != nil {
		c.stdLog.Println("Shutting down daemon...")
	}
	if c.Api != nil {
		_ = c.Api.Close()
	}
	if c.Store != nil {
		_ = c.Store.Close()
	}
	if c.stdLog != nil {
		c.stdLog.Println("Daemon stopped")
	}
}

// initDaemonComponents assembles the daemon: alarm store, bookmark mirror,
// browser host transport, op surface and servers.
var initDaemonComponents = func(lg logger.Logger) (*DaemonComponents, error) {
	stdLog := logger.ToStd(lg)

	m, err := snoozelib.InitManager()
	if err != nil {
		lg.Error("alarm store initialization failed: %v", err)
		return nil, err
	}

	store, err := bookmarks.OpenSQLite(filepath.Join(snoozelib.ConfigDir, bookmarksFileName))
	if err != nil {
		lg.Error("bookmark store initialization failed: %v", err)
		_ = m.Close()
		return nil, err
	}

	instanceId, created, err := snoozelib.InstanceID()
	if err != nil {
		lg.Error("instance id initialization failed: %v", err)
		_ = store.Close()
		_ = m.Close()
		return nil, err
	}

	mirror := bookmarks.NewMirror(stdLog, store, bookmarks.FolderTitle(instanceId))
	if created {
		// A fresh install walks away from any folder a previous
		// installation left behind rather than adopting its contents.
		if err := mirror.Archive(context.Background(), time.Now()); err != nil {
			lg.Warning("could not archive stale bookmark folder: %v", err)
		}
	}

	remote := browser.NewRemote(stdLog)
	a := api.NewApi(stdLog, m, remote, mirror, nil)

	rpc := server.NewRPCServer(&server.RPCConfig{
		Secret:  os.Getenv(common.RPCSecretEnv),
		Version: currentBuildArgs.Version,
	}, a, remote.Register, remote.Unregister)

	serv := server.NewServer(stdLog, rpc, DEF_PORT)
	a.RegisterHandlers(serv)

	if err := a.Startup(); err != nil {
		lg.Error("startup pass failed: %v", err)
		a.Close()
		_ = store.Close()
		return nil, err
	}

	return &DaemonComponents{
		Store:   store,
		Manager: m,
		Remote:  remote,
		Api:     a,
		Server:  serv,
		logger:  lg,
		stdLog:  stdLog,
	}, nil
}

func daemon(ctx *cli.Context) error {
	lg := logger.NewStandardLogger(log.New(os.Stderr, "", log.LstdFlags))
	components, err := initDaemonComponents(lg)
	if err != nil {
		ccommon.PrintRuntimeErr(ctx, "daemon", "init", err)
		return nil
	}

	runner := daemonlib.New(
		&daemonlib.Config{ShutdownTimeout: 10 * time.Second},
		&daemonlib.Dependencies{
			StartFunc: components.Server.Start,
			ShutdownFunc: func() error {
				components.Close()
				return nil
			},
		},
	)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-runCtx.Done()
		if err := runner.Shutdown(); err != nil && err != daemonlib.ErrNotRunning {
			lg.Error("shutdown: %v", err)
		}
	}()

	components.stdLog.Println("Daemon started")
	return runner.Start(runCtx)
}
