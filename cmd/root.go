package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/keith-kurak/i-didnt-park/internal/application"
	"github.com/keith-kurak/i-didnt-park/internal/persist"
	"github.com/keith-kurak/i-didnt-park/internal/store"
	"github.com/keith-kurak/i-didnt-park/internal/syncer"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	backendFlag string
	verbose     bool

	appStore   *store.Store
	adapter    persist.Adapter
	controller *syncer.Controller
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "A personal commute log",
	Long: `I Didn't Park tracks your commutes: trips where you drove and parked,
and trips where you avoided driving. It keeps running statistics on
distance avoided, parking hours avoided and CO₂ saved.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() {
	err := rootCmd.Execute()

	// Runs on error paths too, where cobra skips the post-run hooks.
	teardown()

	if err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	dir := dataDir
	if dir == "" {
		var err error

		dir, err = application.DataDirectory()
		if err != nil {
			return err
		}
	}

	backendName := backendFlag
	if backendName == "" {
		backendName = os.Getenv(application.BackendEnv)
	}

	backend, err := persist.ParseBackend(backendName)
	if err != nil {
		return err
	}

	adapter, err = persist.Open(dir, backend, logger)
	if err != nil {
		return err
	}

	appStore = store.New()
	controller = syncer.New(appStore, adapter, syncer.DefaultConfig()).WithLogger(logger)

	return controller.Start(context.Background())
}

func teardown() {
	if controller != nil {
		controller.Stop()
	}

	if adapter != nil {
		_ = adapter.Close()
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Persistence backend: auto, sqlite or kv")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
