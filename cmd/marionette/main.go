// Marionette bridge - TCP JSON command server for the live editor engine.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tliron/commonlog"

	"github.com/veleiro/marionette/engine"
	"github.com/veleiro/marionette/engine/assetindex"
	"github.com/veleiro/marionette/manifest"
	"github.com/veleiro/marionette/server"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	addr := flag.String("addr", "", "Listen address (overrides marionette.toml)")
	verbosity := flag.Int("v", -1, "Log verbosity (overrides marionette.toml)")
	snapshot := flag.String("snapshot", "", "Snapshot file to load at startup and save on shutdown")
	indexPath := flag.String("asset-index", "", "Asset index database path (overrides marionette.toml)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: marionette [options]\n\n")
		fmt.Fprintf(os.Stderr, "Starts the editor bridge server.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  marionette                          # Listen on 127.0.0.1:55557\n")
		fmt.Fprintf(os.Stderr, "  marionette -addr 127.0.0.1:6000     # Custom port\n")
		fmt.Fprintf(os.Stderr, "  marionette -snapshot scene.cbor     # Persist the scene across runs\n")
	}
	flag.Parse()

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	m, err := manifest.FindAndLoad(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Flags win over file and environment.
	if *addr != "" {
		m.Server.Addr = *addr
	}
	if *verbosity >= 0 {
		m.Log.Verbosity = *verbosity
	}
	if *snapshot != "" {
		m.Assets.Snapshot = *snapshot
	}
	if *indexPath != "" {
		m.Assets.IndexPath = *indexPath
	}

	commonlog.Configure(m.Log.Verbosity, nil)

	idx, err := assetindex.Open(m.Assets.IndexPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening asset index: %v\n", err)
		os.Exit(1)
	}
	defer idx.Close()

	eng := engine.New(engine.WithAssetIndex(idx))
	if path := m.SnapshotPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := eng.LoadSnapshot(path); err != nil {
				fmt.Fprintf(os.Stderr, "Error loading snapshot: %v\n", err)
				os.Exit(1)
			}
		}
	}

	srv := server.New(eng, server.WithCommandTimeout(m.Server.CommandTimeout.Std()))
	if err := srv.Start(m.Server.Addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Marionette bridge listening on %s\n", srv.Addr())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	srv.Stop()
	if path := m.SnapshotPath(); path != "" {
		if err := eng.SaveSnapshot(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: saving snapshot: %v\n", err)
		}
	}
}
