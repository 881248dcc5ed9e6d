package snoozelib

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func stubInstanceSeams(t *testing.T, get func(string, string) (string, error), set func(string, string, string) error, mint func() string) {
	t.Helper()
	origGet, origSet, origUUID := keyringGet, keyringSet, newUUID
	keyringGet, keyringSet, newUUID = get, set, mint
	t.Cleanup(func() {
		keyringGet, keyringSet, newUUID = origGet, origSet, origUUID
	})
	if err := SetConfigDir(t.TempDir()); err != nil {
		t.Fatalf("SetConfigDir: %v", err)
	}
}

func TestInstanceIDFromKeyring(t *testing.T) {
	stubInstanceSeams(t,
		func(service, user string) (string, error) { return "stored-id", nil },
		func(service, user, pass string) error { t.Fatal("unexpected keyring set"); return nil },
		func() string { t.Fatal("unexpected uuid mint"); return "" },
	)
	id, created, err := InstanceID()
	if err != nil {
		t.Fatalf("InstanceID: %v", err)
	}
	if id != "stored-id" || created {
		t.Errorf("InstanceID = %q, created=%v, want stored-id, false", id, created)
	}
}

func TestInstanceIDMintsAndStores(t *testing.T) {
	var stored string
	stubInstanceSeams(t,
		func(service, user string) (string, error) { return "", errors.New("not found") },
		func(service, user, pass string) error { stored = pass; return nil },
		func() string { return "fresh-id" },
	)
	id, created, err := InstanceID()
	if err != nil {
		t.Fatalf("InstanceID: %v", err)
	}
	if id != "fresh-id" || !created {
		t.Errorf("InstanceID = %q, created=%v, want fresh-id, true", id, created)
	}
	if stored != "fresh-id" {
		t.Errorf("keyring stored %q, want fresh-id", stored)
	}
}

// TestInstanceIDFileFallback covers hosts without a keyring service: the
// identifier lands in a config-dir file and survives a second lookup.
func TestInstanceIDFileFallback(t *testing.T) {
	noKeyring := errors.New("no keyring service")
	stubInstanceSeams(t,
		func(service, user string) (string, error) { return "", noKeyring },
		func(service, user, pass string) error { return noKeyring },
		func() string { return "fallback-id" },
	)

	id, created, err := InstanceID()
	if err != nil {
		t.Fatalf("InstanceID: %v", err)
	}
	if id != "fallback-id" || !created {
		t.Errorf("InstanceID = %q, created=%v, want fallback-id, true", id, created)
	}

	b, err := os.ReadFile(filepath.Join(ConfigDir, instanceFile))
	if err != nil {
		t.Fatalf("fallback file: %v", err)
	}
	if strings.TrimSpace(string(b)) != "fallback-id" {
		t.Errorf("fallback file holds %q", b)
	}

	// Second call reads the file back instead of minting again.
	newUUID = func() string { t.Fatal("unexpected second mint"); return "" }
	id2, created2, err := InstanceID()
	if err != nil {
		t.Fatalf("second InstanceID: %v", err)
	}
	if id2 != "fallback-id" || created2 {
		t.Errorf("second InstanceID = %q, created=%v, want fallback-id, false", id2, created2)
	}
}
