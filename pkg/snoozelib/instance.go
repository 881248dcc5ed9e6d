package snoozelib

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/zalando/go-keyring"
)

// The per-installation identifier names the bookmark mirror folder, so a
// reinstall (or a second profile) gets its own folder instead of adopting
// a stale one. It lives in the OS keyring, falling back to a plain file in
// the config dir on systems without a usable keyring service.

const (
	instanceApp   = "snoozetabs"
	instanceField = "instance-id"
	instanceFile  = "instance_id"
)

var (
	keyringGet = keyring.Get
	keyringSet = keyring.Set
	newUUID    = uuid.NewString
)

// InstanceID returns the stable per-installation identifier, generating and
// storing a fresh one on first use. created reports whether this call minted
// the identifier, i.e. whether this is a fresh installation.
func InstanceID() (id string, created bool, err error) {
	if id, err := keyringGet(instanceApp, instanceField); err == nil && id != "" {
		return id, false, nil
	}
	path := filepath.Join(ConfigDir, instanceFile)
	if b, err := os.ReadFile(path); err == nil {
		if id := strings.TrimSpace(string(b)); id != "" {
			return id, false, nil
		}
	}
	id = newUUID()
	if err := keyringSet(instanceApp, instanceField, id); err != nil {
		// No keyring service; keep the identifier alongside the userdata.
		if werr := os.WriteFile(path, []byte(id+"\n"), 0600); werr != nil {
			return "", false, werr
		}
	}
	return id, true, nil
}
