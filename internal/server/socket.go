package server

import (
	"os"
	"path/filepath"

	"github.com/niteowll/SnoozeTabs/common"
)

func socketPath() string {
	if path := os.Getenv(common.SocketPathEnv); path != "" {
		return path
	}
	return filepath.Join(os.TempDir(), "snoozetabs.sock")
}
