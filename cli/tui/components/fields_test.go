package components

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/engine/core"
	"github.com/taskdeck/taskdeck/engine/schema"
)

func spec(name string, category schema.FieldCategory, required bool) schema.FieldRenderSpec {
	partition := schema.PartitionOptional
	if required {
		partition = schema.PartitionRequired
	}
	return schema.FieldRenderSpec{
		Descriptor: schema.ParameterDescriptor{Name: name, Type: "string", Required: required},
		Category:   category,
		Partition:  partition,
	}
}

func TestFieldSetCollect(t *testing.T) {
	t.Run("Should coerce each category to its native type", func(t *testing.T) {
		fs := NewFieldSet([]schema.FieldRenderSpec{
			spec("prompt", schema.CategoryText, true),
			spec("steps", schema.CategoryNumeric, true),
			spec("hd", schema.CategoryBoolean, false),
			spec("styles", schema.CategoryTags, false),
			spec("extra", schema.CategoryJSONBlob, false),
		})
		fs.bindings[0].text = "a cat in the rain"
		fs.bindings[1].text = "28"
		fs.bindings[2].boolean = true
		fs.bindings[3].text = "anime, photo , "
		fs.bindings[4].text = `{"seed": 42}`

		record, err := fs.Collect()
		require.NoError(t, err)
		assert.Equal(t, "a cat in the rain", record["prompt"])
		assert.Equal(t, float64(28), record["steps"])
		assert.Equal(t, true, record["hd"])
		assert.Equal(t, []string{"anime", "photo"}, record["styles"])
		assert.Equal(t, map[string]any{"seed": float64(42)}, record["extra"])
	})

	t.Run("Should keep the declared option value for selects", func(t *testing.T) {
		s := spec("size", schema.CategorySelect, true)
		s.Options = []schema.Option{{Label: "512", Value: float64(512)}}
		fs := NewFieldSet([]schema.FieldRenderSpec{s})
		fs.bindings[0].choice = float64(512)

		record, err := fs.Collect()
		require.NoError(t, err)
		assert.Equal(t, float64(512), record["size"])
	})

	t.Run("Should omit optional fields left empty", func(t *testing.T) {
		fs := NewFieldSet([]schema.FieldRenderSpec{
			spec("prompt", schema.CategoryText, true),
			spec("negative", schema.CategoryText, false),
			spec("styles", schema.CategoryTags, false),
		})
		fs.bindings[0].text = "hello"

		record, err := fs.Collect()
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"prompt": "hello"}, record)
	})

	t.Run("Should block a required field left empty", func(t *testing.T) {
		fs := NewFieldSet([]schema.FieldRenderSpec{spec("prompt", schema.CategoryText, true)})

		_, err := fs.Collect()
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrValidation))
		assert.Contains(t, err.Error(), "please enter prompt")
	})

	t.Run("Should reject a malformed JSON blob", func(t *testing.T) {
		fs := NewFieldSet([]schema.FieldRenderSpec{spec("extra", schema.CategoryJSONBlob, false)})
		fs.bindings[0].text = `{not json`

		_, err := fs.Collect()
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrValidation))
		assert.Contains(t, err.Error(), "invalid JSON format")
	})

	t.Run("Should reject a non-numeric value in a numeric field", func(t *testing.T) {
		fs := NewFieldSet([]schema.FieldRenderSpec{spec("steps", schema.CategoryNumeric, true)})
		fs.bindings[0].text = "many"

		_, err := fs.Collect()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be a number")
	})

	t.Run("Should build groups only for populated partitions", func(t *testing.T) {
		fs := NewFieldSet([]schema.FieldRenderSpec{spec("prompt", schema.CategoryText, true)})
		require.NotNil(t, fs.Form())
		assert.False(t, fs.Empty())
	})
}
