package snoozecli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/niteowll/SnoozeTabs/common"
)

const defaultTCPPort = 3849

func socketPath() string {
	if path := os.Getenv(common.SocketPathEnv); path != "" {
		return path
	}
	return filepath.Join(os.TempDir(), "snoozetabs.sock")
}

// tcpPort returns the TCP fallback port from the environment, or the
// default when unset or out of range.
func tcpPort() int {
	if port := os.Getenv(common.TCPPortEnv); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			if p >= 1 && p <= 65535 {
				return p
			}
			debugLog("invalid TCP port %d, using default %d", p, defaultTCPPort)
		}
	}
	return defaultTCPPort
}

func tcpAddress() string {
	return fmt.Sprintf("%s:%d", common.TCPHost, tcpPort())
}

func debugMode() bool {
	return os.Getenv(common.DebugEnv) == "1"
}

func debugLog(format string, args ...any) {
	if debugMode() {
		log.Printf(format, args...)
	}
}
