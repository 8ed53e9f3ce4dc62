package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEmbeddingAPI is a mock for the embedding backend
type MockEmbeddingAPI struct {
	mock.Mock
}

func (m *MockEmbeddingAPI) CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

func TestByteStrategy_Deterministic(t *testing.T) {
	s := NewByteStrategy(768)
	ctx := context.Background()

	first, err := s.Embed(ctx, []string{"hello world"})
	require.NoError(t, err)
	second, err := s.Embed(ctx, []string{"hello world"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first[0], 768)
}

func TestByteStrategy_DiffersForDifferentInputs(t *testing.T) {
	s := NewByteStrategy(768)
	ctx := context.Background()

	vectors, err := s.Embed(ctx, []string{"alpha", "bravo"})
	require.NoError(t, err)
	assert.NotEqual(t, vectors[0], vectors[1])
}

func TestByteStrategy_ValuesInUnitRange(t *testing.T) {
	s := NewByteStrategy(8)
	ctx := context.Background()

	vectors, err := s.Embed(ctx, []string{"abc"})
	require.NoError(t, err)
	require.Len(t, vectors[0], 8)
	assert.InDelta(t, float32('a')/255.0, vectors[0][0], 1e-6)
	assert.InDelta(t, float32('b')/255.0, vectors[0][1], 1e-6)
	// beyond the text the vector is zero-padded
	assert.Zero(t, vectors[0][3])
	for _, v := range vectors[0] {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
	}
}

func TestByteStrategy_TruncatesLongText(t *testing.T) {
	s := NewByteStrategy(4)
	ctx := context.Background()

	vectors, err := s.Embed(ctx, []string{"abcdefgh"})
	require.NoError(t, err)
	assert.Len(t, vectors[0], 4)
}

func TestNewOpenAIStrategy_ProbesDimension(t *testing.T) {
	mockAPI := new(MockEmbeddingAPI)
	mockAPI.On("CreateEmbeddings", mock.Anything, []string{"test"}).
		Return([][]float32{make([]float32, 1536)}, nil)

	s, err := NewOpenAIStrategy(context.Background(), mockAPI)
	require.NoError(t, err)
	assert.Equal(t, 1536, s.Dimension())
	mockAPI.AssertExpectations(t)
}

func TestNewOpenAIStrategy_ProbeFailure(t *testing.T) {
	mockAPI := new(MockEmbeddingAPI)
	mockAPI.On("CreateEmbeddings", mock.Anything, mock.Anything).
		Return(nil, errors.New("model unavailable"))

	_, err := NewOpenAIStrategy(context.Background(), mockAPI)
	assert.Error(t, err)
}

func TestProvider_SwitchesToFallbackOnPrimaryFailure(t *testing.T) {
	ctx := context.Background()

	mockAPI := new(MockEmbeddingAPI)
	mockAPI.On("CreateEmbeddings", mock.Anything, []string{"test"}).
		Return([][]float32{make([]float32, 16)}, nil).Once()
	mockAPI.On("CreateEmbeddings", mock.Anything, mock.Anything).
		Return(nil, errors.New("backend down"))

	primary, err := NewOpenAIStrategy(ctx, mockAPI)
	require.NoError(t, err)

	p := NewProvider(primary)
	assert.False(t, p.Degraded())

	vec, err := p.EmbedOne(ctx, "hello")
	require.NoError(t, err)
	assert.True(t, p.Degraded())
	assert.Equal(t, "byte-fallback", p.StrategyName())
	// fallback keeps the provider's fixed dimension
	assert.Len(t, vec, 16)
}

func TestProvider_EmbedOneMatchesBatch(t *testing.T) {
	p := NewFallbackProvider()
	ctx := context.Background()

	one, err := p.EmbedOne(ctx, "premium plan")
	require.NoError(t, err)
	batch, err := p.Embed(ctx, []string{"premium plan"})
	require.NoError(t, err)
	assert.Equal(t, batch[0], one)
}

func TestProvider_OrderPreserved(t *testing.T) {
	p := NewFallbackProvider()
	ctx := context.Background()

	texts := []string{"one", "two", "three"}
	vectors, err := p.Embed(ctx, texts)
	require.NoError(t, err)
	require.Len(t, vectors, 3)
	for i, text := range texts {
		want, err := p.EmbedOne(ctx, text)
		require.NoError(t, err)
		assert.Equal(t, want, vectors[i], "vector %d", i)
	}
}
