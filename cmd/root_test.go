package cmd

import (
	"errors"
	"testing"

	"github.com/keith-kurak/i-didnt-park/internal/model"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// A command error must not leak the controller or the open adapter:
// Execute runs teardown even when cobra skips the post-run hooks.
func TestExecute_TeardownRunsOnCommandError(t *testing.T) {
	failing := &cobra.Command{
		Use: "failing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("boom")
		},
	}

	rootCmd.AddCommand(failing)
	defer rootCmd.RemoveCommand(failing)

	rootCmd.SetArgs([]string{"failing", "--data-dir", t.TempDir(), "--backend", "kv"})
	defer rootCmd.SetArgs(nil)

	require.Error(t, rootCmd.Execute())

	teardown()

	// The adapter is closed, so writes through it fail.
	require.Error(t, adapter.SaveAll(nil, model.DefaultSettings()))
}

func TestTeardown_SafeBeforeSetup(t *testing.T) {
	saveController, saveAdapter := controller, adapter
	controller, adapter = nil, nil

	defer func() { controller, adapter = saveController, saveAdapter }()

	teardown()
}
