package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator_Generate(t *testing.T) {
	g := NewUUIDGenerator()

	id := g.Generate()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.NotEqual(t, id, g.Generate())
}

func TestUUIDGenerator_FileName(t *testing.T) {
	g := NewUUIDGenerator()

	assert.True(t, strings.HasSuffix(g.FileName(".PNG"), ".png"))
	assert.True(t, strings.HasSuffix(g.FileName("mp4"), ".mp4"))
	assert.NotContains(t, g.FileName(""), ".")
}
