package service

import (
	"testing"

	"github.com/leadline-ai/leadline/internal/domain"
	"github.com/leadline-ai/leadline/internal/vectorindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManager_GeneratesIDWhenEmpty(t *testing.T) {
	m := NewSessionManager()

	s := m.Get("")
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 1, m.Len())
}

func TestSessionManager_ReturnsSameSessionForID(t *testing.T) {
	m := NewSessionManager()

	first := m.Get("abc")
	second := m.Get("abc")
	assert.Same(t, first, second)
	assert.Equal(t, 1, m.Len())
}

func TestIndexHolder_SwapVisibleToReaders(t *testing.T) {
	h := NewIndexHolder(nil)
	assert.Nil(t, h.Current())

	ix := vectorindex.New()
	require.NoError(t, ix.Build(
		[][]float32{{1, 0}},
		[]domain.Chunk{{ID: "a::p0::c0", Content: "c", Source: "a"}},
	))

	h.Swap(ix)
	require.NotNil(t, h.Current())
	assert.True(t, h.Current().IsReady())
}
