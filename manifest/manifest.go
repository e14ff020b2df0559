// Package manifest handles marionette.toml project configuration.
//
// Precedence, lowest to highest: file values, MARIONETTE_* environment
// variables, then whatever flags the binary applies on top.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Manifest represents a marionette.toml configuration.
type Manifest struct {
	Server Server `toml:"server"`
	Assets Assets `toml:"assets"`
	Log    Log    `toml:"log"`

	// Dir is the directory containing the marionette.toml file (set at
	// load time).
	Dir string `toml:"-" env:"-"`
}

// Server configures the TCP listener.
type Server struct {
	Addr string `toml:"addr" env:"MARIONETTE_ADDR"`

	// CommandTimeout bounds one command's wall time. Zero disables it.
	CommandTimeout Duration `toml:"command-timeout" env:"MARIONETTE_COMMAND_TIMEOUT"`
}

// Duration wraps time.Duration so TOML and environment values can be
// written as "30s".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Assets configures the asset index database.
type Assets struct {
	// IndexPath is the SQLite database path; ":memory:" keeps the
	// index ephemeral.
	IndexPath string `toml:"index-path" env:"MARIONETTE_ASSET_INDEX"`

	// Snapshot, when set, is loaded at startup and written on shutdown.
	Snapshot string `toml:"snapshot" env:"MARIONETTE_SNAPSHOT"`
}

// Log configures verbosity.
type Log struct {
	Verbosity int `toml:"verbosity" env:"MARIONETTE_VERBOSITY"`
}

// Default returns the configuration used when no file or environment
// overrides anything.
func Default() *Manifest {
	return &Manifest{
		Server: Server{Addr: "127.0.0.1:55557"},
		Assets: Assets{IndexPath: ":memory:"},
		Log:    Log{Verbosity: 1},
	}
}

// Load parses a marionette.toml file from the given directory and
// applies environment overrides.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "marionette.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	m := Default()
	if err := toml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	if err := applyEnv(m); err != nil {
		return nil, err
	}
	return m, nil
}

// FindAndLoad walks up from startDir to find a marionette.toml file,
// then loads and returns the manifest. When no file exists the
// defaults (plus environment overrides) are returned.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "marionette.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root; run on defaults.
			m := Default()
			if err := applyEnv(m); err != nil {
				return nil, err
			}
			return m, nil
		}
		dir = parent
	}
}

func applyEnv(m *Manifest) error {
	if err := env.Parse(m); err != nil {
		return fmt.Errorf("environment overrides: %w", err)
	}
	return nil
}

// SnapshotPath returns the snapshot path resolved against the
// manifest directory, or "" when snapshots are disabled.
func (m *Manifest) SnapshotPath() string {
	if m.Assets.Snapshot == "" {
		return ""
	}
	if filepath.IsAbs(m.Assets.Snapshot) || m.Dir == "" {
		return m.Assets.Snapshot
	}
	return filepath.Join(m.Dir, m.Assets.Snapshot)
}
