package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	a := Point{Lat: 60.1613, Lon: 24.9446}
	b := Point{Lat: 60.16131, Lon: 24.94461}

	d := Distance(a, b)
	assert.InDelta(t, 1.2, d, 0.3)
	assert.Equal(t, 0.0, Distance(a, a))

	// One thousandth of a degree of latitude is roughly 111 m.
	assert.InDelta(t, 111.2, Distance(a, Point{Lat: 60.1623, Lon: 24.9446}), 0.5)
}

func TestIndex_Empty(t *testing.T) {
	idx := New(nil)

	assert.Equal(t, 0, idx.Len())
	_, ok := idx.Nearest(Point{Lat: 60.17, Lon: 24.94})
	assert.False(t, ok)
	assert.Empty(t, idx.Within(Point{Lat: 60.17, Lon: 24.94}, 1))
}

func TestIndex_Nearest(t *testing.T) {
	idx := New([]Candidate{
		{ID: 1, Lat: 60.1700, Lon: 24.9400},
		{ID: 2, Lat: 60.1613, Lon: 24.9446},
		{ID: 3, Lat: 60.1500, Lon: 24.9000},
	})
	require.Equal(t, 3, idx.Len())

	got, ok := idx.Nearest(Point{Lat: 60.16131, Lon: 24.94461})
	require.True(t, ok)
	assert.Equal(t, int64(2), got.ID)

	got, ok = idx.Nearest(Point{Lat: 60.0, Lon: 24.0})
	require.True(t, ok)
	assert.Equal(t, int64(3), got.ID)
}

func TestIndex_Nearest_SingleCandidate(t *testing.T) {
	idx := New([]Candidate{{ID: 42, Lat: 60.1613, Lon: 24.9446}})

	got, ok := idx.Nearest(Point{Lat: 61, Lon: 25})
	require.True(t, ok)
	assert.Equal(t, int64(42), got.ID)
}

func TestIndex_Nearest_TieBreaksOnID(t *testing.T) {
	// Same position inserted in descending id order.
	idx := New([]Candidate{
		{ID: 30, Lat: 60.1613, Lon: 24.9446},
		{ID: 10, Lat: 60.1613, Lon: 24.9446},
		{ID: 20, Lat: 60.1613, Lon: 24.9446},
	})

	for i := 0; i < 5; i++ {
		got, ok := idx.Nearest(Point{Lat: 60.1614, Lon: 24.9447})
		require.True(t, ok)
		assert.Equal(t, int64(10), got.ID)
	}

	// Symmetric neighbours around the query point.
	idx = New([]Candidate{
		{ID: 7, Lat: 60.5, Lon: 24.5},
		{ID: 5, Lat: 60.5, Lon: 25.0},
	})
	got, ok := idx.Nearest(Point{Lat: 60.5, Lon: 24.75})
	require.True(t, ok)
	assert.Equal(t, int64(5), got.ID)
}

func TestIndex_Within(t *testing.T) {
	origin := Point{Lat: 60.1613, Lon: 24.9446}
	idx := New([]Candidate{
		{ID: 4, Lat: 60.1614, Lon: 24.9446},   // ~11 m north
		{ID: 8, Lat: 60.16131, Lon: 24.94461}, // ~1 m
		{ID: 3, Lat: 60.16131, Lon: 24.94461}, // same spot as 8
		{ID: 9, Lat: 60.1611, Lon: 24.9446},   // ~22 m south
		{ID: 1, Lat: 60.1700, Lon: 24.9400},   // far away
	})

	got := idx.Within(origin, 0.0003)
	ids := make([]int64, 0, len(got))
	for _, c := range got {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []int64{3, 8, 4, 9}, ids)

	assert.Empty(t, idx.Within(Point{Lat: 59, Lon: 23}, 0.0003))
	assert.Empty(t, idx.Within(origin, -1))
}
