package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/cli/helpers"
)

func TestRootCmd(t *testing.T) {
	t.Run("Should register the task and model command groups", func(t *testing.T) {
		root := RootCmd()
		names := make([]string, 0)
		for _, sub := range root.Commands() {
			names = append(names, sub.Name())
		}
		assert.Contains(t, names, "task")
		assert.Contains(t, names, "model")
	})

	t.Run("Should load configuration and inject it into the command context", func(t *testing.T) {
		t.Setenv("TASKDECK_ACTOR_ID", "7")
		t.Setenv("TASKDECK_ACTOR_NAME", "tester")

		root := RootCmd()
		root.SetContext(context.Background())
		require.NoError(t, setupContext(root))

		cfg := helpers.ConfigFromContext(root.Context())
		require.NotNil(t, cfg)
		assert.Equal(t, 7, cfg.Actor.ID)
		assert.Equal(t, "tester", cfg.Actor.Name)
	})

	t.Run("Should let the json flag force the output format", func(t *testing.T) {
		t.Setenv("TASKDECK_ACTOR_ID", "7")
		t.Setenv("TASKDECK_ACTOR_NAME", "tester")

		root := RootCmd()
		root.SetContext(context.Background())
		require.NoError(t, root.PersistentFlags().Set("json", "true"))
		require.NoError(t, setupContext(root))

		cfg := helpers.ConfigFromContext(root.Context())
		require.NotNil(t, cfg)
		assert.Equal(t, "json", cfg.CLI.Format)
	})

	t.Run("Should reject an unknown format", func(t *testing.T) {
		t.Setenv("TASKDECK_ACTOR_ID", "7")
		t.Setenv("TASKDECK_ACTOR_NAME", "tester")

		root := RootCmd()
		root.SetContext(context.Background())
		require.NoError(t, root.PersistentFlags().Set("format", "xml"))
		assert.Error(t, setupContext(root))
	})
}
