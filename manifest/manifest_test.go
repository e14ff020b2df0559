package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "marionette.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write marionette.toml: %v", err)
	}
}

func TestDefaults(t *testing.T) {
	m := Default()
	if m.Server.Addr != "127.0.0.1:55557" {
		t.Errorf("addr = %q", m.Server.Addr)
	}
	if m.Assets.IndexPath != ":memory:" {
		t.Errorf("index path = %q", m.Assets.IndexPath)
	}
	if m.Server.CommandTimeout != 0 {
		t.Errorf("command timeout = %v, want disabled", m.Server.CommandTimeout)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[server]
addr = "127.0.0.1:6000"
command-timeout = "30s"

[assets]
index-path = "assets.db"
snapshot = "scene.cbor"

[log]
verbosity = 2
`)
	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Server.Addr != "127.0.0.1:6000" {
		t.Errorf("addr = %q", m.Server.Addr)
	}
	if m.Server.CommandTimeout.Std() != 30*time.Second {
		t.Errorf("command timeout = %v", m.Server.CommandTimeout)
	}
	if m.Log.Verbosity != 2 {
		t.Errorf("verbosity = %d", m.Log.Verbosity)
	}
	if m.SnapshotPath() != filepath.Join(m.Dir, "scene.cbor") {
		t.Errorf("snapshot path = %q", m.SnapshotPath())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("Load of empty dir should fail")
	}
}

func TestFindAndLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[server]
addr = "127.0.0.1:7000"
`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	m, err := FindAndLoad(nested)
	if err != nil {
		t.Fatalf("FindAndLoad: %v", err)
	}
	if m.Server.Addr != "127.0.0.1:7000" {
		t.Errorf("addr = %q", m.Server.Addr)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MARIONETTE_ADDR", "127.0.0.1:9999")
	t.Setenv("MARIONETTE_VERBOSITY", "3")

	dir := t.TempDir()
	writeManifest(t, dir, `
[server]
addr = "127.0.0.1:6000"
`)
	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Environment wins over the file.
	if m.Server.Addr != "127.0.0.1:9999" {
		t.Errorf("addr = %q", m.Server.Addr)
	}
	if m.Log.Verbosity != 3 {
		t.Errorf("verbosity = %d", m.Log.Verbosity)
	}
}

func TestSnapshotPathDisabled(t *testing.T) {
	m := Default()
	if m.SnapshotPath() != "" {
		t.Errorf("snapshot path = %q, want empty", m.SnapshotPath())
	}
}
