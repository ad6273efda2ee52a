package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
)

func buildIndex(t *testing.T, vecs ...[]float32) *Index {
	t.Helper()
	ix, err := New(len(vecs[0]))
	require.NoError(t, err)
	for _, v := range vecs {
		require.NoError(t, ix.Add(v))
	}
	return ix
}

func TestNew_InvalidDimension(t *testing.T) {
	_, err := New(0)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestAdd_DimensionMismatch(t *testing.T) {
	ix, err := New(3)
	require.NoError(t, err)

	err = ix.Add([]float32{1, 0})
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	assert.Equal(t, 0, ix.Len())
}

func TestSearch_DimensionMismatch(t *testing.T) {
	ix := buildIndex(t, []float32{1, 0, 0})
	_, err := ix.Search([]float32{1, 0}, 1)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestSearch_OrderedBySimilarity(t *testing.T) {
	ix := buildIndex(t,
		[]float32{1, 0, 0},
		[]float32{0, 1, 0},
		[]float32{0.9, 0.1, 0},
	)

	hits, err := ix.Search([]float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, 0, hits[0].Ord)
	assert.Equal(t, 2, hits[1].Ord)
	assert.Equal(t, 1, hits[2].Ord)

	// Strictly non-increasing similarity.
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Similarity, hits[i].Similarity)
	}
}

func TestSearch_ResultSizeIsMinKCorpus(t *testing.T) {
	ix := buildIndex(t,
		[]float32{1, 0},
		[]float32{0, 1},
		[]float32{1, 1},
	)

	hits, err := ix.Search([]float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Len(t, hits, 3)

	hits, err = ix.Search([]float32{1, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestSearch_TiesBreakByInsertionOrder(t *testing.T) {
	ix := buildIndex(t,
		[]float32{0, 1},
		[]float32{0, 1},
		[]float32{0, 1},
	)

	hits, err := ix.Search([]float32{0, 1}, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, []int{hits[0].Ord, hits[1].Ord, hits[2].Ord})
}

func TestSearch_ZeroVectorScoresZero(t *testing.T) {
	ix := buildIndex(t,
		[]float32{0, 0},
		[]float32{1, 0},
	)

	hits, err := ix.Search([]float32{1, 0}, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, hits[0].Ord)
	assert.InDelta(t, 0.0, hits[1].Similarity, 1e-9)
}
