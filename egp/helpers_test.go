package egp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedSource replays queued draws and falls back on a seeded generator
// once a queue runs dry.
type scriptedSource struct {
	floats   []float64
	ints     []int
	fallback *rand.Rand

	floatCalls int
	intCalls   int
}

func newScriptedSource(floats []float64, ints []int) *scriptedSource {
	return &scriptedSource{floats: floats, ints: ints, fallback: rand.New(rand.NewSource(7))}
}

func (s *scriptedSource) Float64() float64 {
	s.floatCalls++
	if len(s.floats) == 0 {
		return s.fallback.Float64()
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedSource) Intn(n int) int {
	s.intCalls++
	if len(s.ints) == 0 {
		return s.fallback.Intn(n)
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v >= n {
		panic("scripted Intn out of range")
	}
	return v
}

// arithCatalog builds a recursive single-group catalog:
// out -> add(x, y) | neg(x) | x | one.
func arithCatalog(t testing.TB, seed int64) *Catalog {
	t.Helper()
	catalog, err := BuildCatalog(
		SingleMain("out"),
		[][]Blueprint{{DoubleMain("add"), SingleMain("neg")}},
		[][]Blueprint{TerminalBlueprints("x", "one")},
		nil,
		NewSource(seed),
	)
	require.NoError(t, err)
	return catalog
}

// twoGroupCatalog has a second group reached only through "call".
func twoGroupCatalog(t testing.TB, seed int64) *Catalog {
	t.Helper()
	catalog, err := BuildCatalog(
		Blueprint{Label: "out", Strong: []int{0, 1}},
		[][]Blueprint{
			{DoubleMain("add"), {Label: "call", Strong: []int{1}, Weak: []int{1}}},
			{{Label: "def", Strong: []int{0}}},
		},
		[][]Blueprint{
			TerminalBlueprints("x", "one"),
			TerminalBlueprints("nop"),
		},
		map[string]string{"call": "def"},
		NewSource(seed),
	)
	require.NoError(t, err)
	return catalog
}

// requireSameChromosome compares chromosomes structurally, treating nil and
// empty slices alike.
func requireSameChromosome(t *testing.T, want, got *Chromosome) {
	t.Helper()
	requireSameComponent(t, want.Output, got.Output)
	require.Len(t, got.Regular, len(want.Regular))
	for g := range want.Regular {
		require.Len(t, got.Regular[g], len(want.Regular[g]), "group %d", g)
		for i := range want.Regular[g] {
			requireSameComponent(t, want.Regular[g][i], got.Regular[g][i])
		}
	}
}

func requireSameComponent(t *testing.T, want, got *Component) {
	t.Helper()
	require.Equal(t, want.Activity, got.Activity)
	require.Equal(t, want.Label, got.Label)
	require.Len(t, got.Strong, len(want.Strong))
	require.Len(t, got.Weak, len(want.Weak))
	for i := range want.Strong {
		require.Equal(t, []float64(want.Strong[i]), []float64(got.Strong[i]))
		require.Equal(t, want.StrongGroup[i], got.StrongGroup[i])
	}
	for i := range want.Weak {
		require.Equal(t, []float64(want.Weak[i]), []float64(got.Weak[i]))
		require.Equal(t, want.WeakGroup[i], got.WeakGroup[i])
	}
}

func groupSizes(ch *Chromosome) []int {
	sizes := make([]int, len(ch.Regular))
	for g, group := range ch.Regular {
		sizes[g] = len(group)
	}
	return sizes
}
