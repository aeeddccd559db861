package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"fmm-setup/internal/fsutil"
)

// Settings control the installer itself, as opposed to InstallConfig which
// is what the installer produces.
type Settings struct {
	Source     string `mapstructure:"source"`   // Bundle directory or archive
	ConfigPath string `mapstructure:"config"`   // Where InstallConfig is saved
	LogFile    string `mapstructure:"log_file"` // Log destination while the wizard runs
	Debug      bool   `mapstructure:"debug"`
}

// LoadSettings resolves settings from, in order of precedence, command-line
// flags, FMM_SETUP_* environment variables and built-in defaults.
// Flags that are registered in fs under the same names are bound automatically.
func LoadSettings(fs *pflag.FlagSet) (Settings, error) {
	v := viper.New()

	configPath, err := DefaultPath()
	if err != nil {
		return Settings{}, err
	}
	v.SetDefault("source", defaultSource())
	v.SetDefault("config", configPath)
	v.SetDefault("log_file", filepath.Join(filepath.Dir(configPath), "setup.log"))
	v.SetDefault("debug", false)

	v.SetEnvPrefix("FMM_SETUP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for _, key := range []string{"source", "config", "log_file", "debug"} {
			flag := fs.Lookup(strings.ReplaceAll(key, "_", "-"))
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return Settings{}, fmt.Errorf("bind flag %s: %w", flag.Name, err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}

	for _, p := range []*string{&s.Source, &s.ConfigPath, &s.LogFile} {
		if *p, err = fsutil.ExpandHome(*p); err != nil {
			return Settings{}, err
		}
	}
	return s, nil
}

// defaultSource is the directory holding the installer binary; release
// bundles ship the plugin and pwa folders next to it.
func defaultSource() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
