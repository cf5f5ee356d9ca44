package chart

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samples(ids ...string) []Sample {
	out := make([]Sample, len(ids))
	for i, id := range ids {
		out[i] = Sample{ID: id, Label: id, Value: float64(100 + i)}
	}
	return out
}

func requireAligned(t *testing.T, b *Buffer) {
	t.Helper()
	for _, s := range b.Series() {
		require.Len(t, s.Data, b.Len(), "series %s out of step with labels", s.ID)
	}
}

func TestBuffer_SlidingWindow(t *testing.T) {
	const window = 15
	for _, n := range []int{1, 14, 15, 16, 40} {
		t.Run(fmt.Sprintf("%d updates", n), func(t *testing.T) {
			b := NewBuffer(window, 10)
			for i := 1; i <= n; i++ {
				b.Push(fmt.Sprintf("L%d", i), samples("btc", "eth"))
				requireAligned(t, b)
			}

			want := n
			if n > window {
				want = window
			}
			require.Equal(t, want, b.Len())

			oldest := 1
			if n > window {
				oldest = n - window + 1
			}
			assert.Equal(t, fmt.Sprintf("L%d", oldest), b.Labels()[0])
			assert.Equal(t, fmt.Sprintf("L%d", n), b.Labels()[b.Len()-1])
		})
	}
}

func TestBuffer_TracksFirstN(t *testing.T) {
	b := NewBuffer(15, 2)
	b.Push("t0", samples("btc", "eth", "usdt"))

	series := b.Series()
	require.Len(t, series, 2)
	assert.Equal(t, "btc", series[0].ID)
	assert.Equal(t, "eth", series[1].ID)
}

func TestBuffer_KeyedByIDAcrossReorder(t *testing.T) {
	b := NewBuffer(15, 2)
	b.Push("t0", []Sample{{ID: "btc", Label: "Bitcoin", Value: 60000}, {ID: "eth", Label: "Ethereum", Value: 3000}})
	b.Push("t1", []Sample{{ID: "eth", Label: "Ethereum", Value: 3100}, {ID: "btc", Label: "Bitcoin", Value: 61000}})

	byID := map[string]Series{}
	for _, s := range b.Series() {
		byID[s.ID] = s
	}
	require.Len(t, byID, 2)
	assert.Equal(t, 61000.0, *byID["btc"].Data[1])
	assert.Equal(t, 3100.0, *byID["eth"].Data[1])
}

func TestBuffer_EnterAndRetire(t *testing.T) {
	b := NewBuffer(3, 2)
	b.Push("t0", samples("btc", "eth"))
	b.Push("t1", samples("btc", "sol")) // eth leaves, sol enters
	requireAligned(t, b)

	byID := map[string]Series{}
	for _, s := range b.Series() {
		byID[s.ID] = s
	}
	require.Contains(t, byID, "sol")
	assert.Nil(t, byID["sol"].Data[0], "entering series is back-filled with a gap")
	assert.NotNil(t, byID["sol"].Data[1])
	assert.Nil(t, byID["eth"].Data[1], "leaving series receives a gap")

	b.Push("t2", samples("btc", "sol"))
	b.Push("t3", samples("btc", "sol")) // eth's only value evicted
	requireAligned(t, b)
	for _, s := range b.Series() {
		assert.NotEqual(t, "eth", s.ID, "eth should be retired once its values left the window")
	}
}

func TestBuffer_ColorsStayWithAsset(t *testing.T) {
	b := NewBuffer(15, 3)
	b.Push("t0", samples("a", "b", "c"))
	first := map[string]string{}
	seen := map[string]bool{}
	for _, s := range b.Series() {
		first[s.ID] = s.Color
		assert.False(t, seen[s.Color], "duplicate color %s", s.Color)
		seen[s.Color] = true
	}
	b.Push("t1", samples("c", "a", "b"))
	for _, s := range b.Series() {
		assert.Equal(t, first[s.ID], s.Color)
	}
}

func TestBuffer_DuplicateIDsIgnored(t *testing.T) {
	b := NewBuffer(5, 3)
	b.Push("t0", []Sample{{ID: "btc", Value: 1}, {ID: "btc", Value: 2}, {ID: "eth", Value: 3}})
	series := b.Series()
	require.Len(t, series, 2)
	assert.Equal(t, 1.0, *series[0].Data[0])
}

func TestBuffer_CopiesAreDetached(t *testing.T) {
	b := NewBuffer(5, 1)
	b.Push("t0", samples("btc"))
	labels := b.Labels()
	labels[0] = "mutated"
	assert.Equal(t, "t0", b.Labels()[0])
}

func TestPalette_DistinctForTopTen(t *testing.T) {
	var p Palette
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		c := p.Next()
		require.False(t, seen[c], "duplicate color %s at %d", c, i)
		seen[c] = true
	}
}

func TestMultiSeries(t *testing.T) {
	b := NewBuffer(15, 2)
	b.Push("10.00", samples("btc", "eth"))

	cfg := MultiSeries(b, false)
	assert.Equal(t, "line", cfg.Type)
	assert.Equal(t, []string{"10.00"}, cfg.Data.Labels)
	require.Len(t, cfg.Data.Datasets, 2)
	assert.Equal(t, 0, cfg.Data.Datasets[0].PointRadius)
	assert.Equal(t, false, cfg.Options["animation"])

	animated := MultiSeries(b, true)
	_, has := animated.Options["animation"]
	assert.False(t, has)

	raw, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"animation":false`)
}

func TestArea(t *testing.T) {
	cfg := Area("Price (7 Days)", []string{"1 Okt", "2 Okt"}, []float64{1.5, 2.5})
	require.Len(t, cfg.Data.Datasets, 1)
	ds := cfg.Data.Datasets[0]
	assert.True(t, ds.Fill)
	assert.Equal(t, 0, ds.PointRadius)
	assert.Equal(t, 5, ds.PointHoverRadius)
	assert.Equal(t, 0.4, ds.Tension)
	assert.Equal(t, 2.5, *ds.Data[1])
	assert.Equal(t, []string{"1 Okt", "2 Okt"}, cfg.Data.Labels)
}

func TestInstance(t *testing.T) {
	a := NewInstance(Config{Type: "line"})
	b := NewInstance(Config{Type: "line"})
	assert.NotEqual(t, a.ID(), b.ID())
	assert.False(t, a.Destroyed())
	a.Destroy()
	a.Destroy()
	assert.True(t, a.Destroyed())
	assert.Equal(t, "line", a.Config().Type)
}
