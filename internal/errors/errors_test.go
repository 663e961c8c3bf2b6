package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorBuilder(t *testing.T) {
	t.Parallel()

	base := NewStd("dataset file missing")
	err := New(base).
		Component("datastore").
		Category(CategoryDatasetLoad).
		Context("file", "species.json").
		Build()

	assert.Equal(t, "dataset file missing", err.Error())
	assert.Equal(t, "datastore", err.Component)
	assert.Equal(t, CategoryDatasetLoad, err.Category)
	assert.Equal(t, "species.json", err.GetContext()["file"])
	require.ErrorIs(t, err, base)
}

func TestBuildDefaults(t *testing.T) {
	t.Parallel()

	err := Newf("boom %d", 42).Build()
	assert.Equal(t, ComponentUnknown, err.Component)
	assert.Equal(t, CategoryGeneric, err.Category)
	assert.Equal(t, "boom 42", err.Error())
	assert.Nil(t, err.GetContext())
}

func TestHasCategory(t *testing.T) {
	t.Parallel()

	err := Newf("bad record").Category(CategoryValidation).Build()
	wrapped := fmt.Errorf("loading dataset: %w", err)

	assert.True(t, HasCategory(wrapped, CategoryValidation))
	assert.False(t, HasCategory(wrapped, CategoryLLMRequest))
	assert.False(t, HasCategory(NewStd("plain"), CategoryValidation))
}

func TestIsMatchesByCategory(t *testing.T) {
	t.Parallel()

	a := Newf("first").Category(CategoryNotFound).Build()
	b := Newf("second").Category(CategoryNotFound).Build()
	assert.ErrorIs(t, a, b)
}
