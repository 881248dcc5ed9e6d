package snoozelib

import (
	"errors"
	"os"
	"path/filepath"
)

// ConfigDirEnv is the environment variable name used to override the default
// configuration directory.
const ConfigDirEnv = "SNOOZETABS_CONFIG_DIR"

var (
	// ConfigDir is the absolute path to the SnoozeTabs configuration
	// directory.
	ConfigDir string

	// userdataFileName is the path of the persisted alarm store file.
	userdataFileName string
)

const userdataBase = "userdata.snooze"

func init() {
	dir := os.Getenv(ConfigDirEnv)
	if dir == "" {
		dir = defaultConfigDir()
	}
	if err := setConfigDir(dir); err != nil {
		panic(err)
	}
}

func defaultConfigDir() string {
	cdr, err := os.UserConfigDir()
	if err != nil {
		panic(err)
	}
	return filepath.Join(cdr, "snoozetabs")
}

func setConfigDir(dir string) error {
	if dir == "" {
		return errors.New("config dir is empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return err
	}
	ConfigDir = abs
	userdataFileName = filepath.Join(abs, userdataBase)
	return nil
}

// SetConfigDir sets the configuration directory to the specified path,
// creating it if it does not exist.
func SetConfigDir(dir string) error {
	return setConfigDir(dir)
}
