package task

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/engine/core"
	"github.com/taskdeck/taskdeck/engine/schema"
)

func TestParseCreateInputs(t *testing.T) {
	t.Run("Should coerce JSON-typed values and keep plain strings", func(t *testing.T) {
		createCmd := CreateCmd()
		require.NoError(t, createCmd.Flags().Set("input", "prompt=a cat"))
		require.NoError(t, createCmd.Flags().Set("input", "steps=28"))
		require.NoError(t, createCmd.Flags().Set("input", "hd=true"))
		require.NoError(t, createCmd.Flags().Set("input", `extra={"seed":42}`))

		values, err := parseCreateInputs(createCmd)
		require.NoError(t, err)
		assert.Equal(t, "a cat", values["prompt"])
		assert.Equal(t, float64(28), values["steps"])
		assert.Equal(t, true, values["hd"])
		assert.Equal(t, map[string]any{"seed": float64(42)}, values["extra"])
	})

	t.Run("Should let flag inputs win over file inputs", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "input.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"prompt":"from file","steps":10}`), 0o600))

		createCmd := CreateCmd()
		require.NoError(t, createCmd.Flags().Set("input-file", path))
		require.NoError(t, createCmd.Flags().Set("input", "prompt=from flag"))

		values, err := parseCreateInputs(createCmd)
		require.NoError(t, err)
		assert.Equal(t, "from flag", values["prompt"])
		assert.Equal(t, float64(10), values["steps"])
	})

	t.Run("Should reject a pair without an equals sign", func(t *testing.T) {
		createCmd := CreateCmd()
		require.NoError(t, createCmd.Flags().Set("input", "prompt"))

		_, err := parseCreateInputs(createCmd)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected key=value")
	})

	t.Run("Should reject a malformed input file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "input.json")
		require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o600))

		createCmd := CreateCmd()
		require.NoError(t, createCmd.Flags().Set("input-file", path))

		_, err := parseCreateInputs(createCmd)
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrValidation))
	})
}

func TestCheckRequiredValues(t *testing.T) {
	modelSchema := &schema.ModelSchema{RequestBody: []schema.ParameterDescriptor{
		{Name: "prompt", Type: "string", Required: true},
		{Name: "negative", Type: "string"},
	}}

	t.Run("Should pass when every required field is present", func(t *testing.T) {
		err := checkRequiredValues(modelSchema, map[string]any{"prompt": "a cat"})
		assert.NoError(t, err)
	})

	t.Run("Should fail naming the missing required field", func(t *testing.T) {
		err := checkRequiredValues(modelSchema, map[string]any{"negative": "blurry"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrValidation))
		assert.Contains(t, err.Error(), "please enter prompt")
	})
}
