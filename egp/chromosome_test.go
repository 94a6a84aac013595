package egp

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistribute(t *testing.T) {
	t.Run("exact split", func(t *testing.T) {
		src := newScriptedSource([]float64{0.25, 0.25, 0.5}, nil)
		assert.Equal(t, []int{2, 2, 4}, Distribute(3, 8, src))
		assert.Equal(t, 0, src.intCalls)
	})

	t.Run("shortfall repaired on random slots", func(t *testing.T) {
		// Each slot gets 4/3 truncated to 1, one unit is left over.
		src := newScriptedSource([]float64{0.5, 0.5, 0.5}, []int{2})
		assert.Equal(t, []int{1, 1, 2}, Distribute(3, 4, src))
		assert.Equal(t, 1, src.intCalls)
	})

	t.Run("no slots", func(t *testing.T) {
		assert.Empty(t, Distribute(0, 5, NewSource(1)))
	})
}

func TestNewChromosomeRejectsSmallSizes(t *testing.T) {
	catalog := arithCatalog(t, 1)

	for _, size := range []int{0, 1, 2, 3} {
		ch, err := NewChromosome(catalog, size, NewSource(1))
		require.ErrorIs(t, err, ErrChromosomeSize, "size %d", size)
		assert.Nil(t, ch)
	}

	ch, err := NewChromosome(catalog, 4, NewSource(1))
	require.NoError(t, err)
	assert.Equal(t, 1, ch.NumRegulars())
}

func TestNewChromosomeInstantiatesPerBlueprint(t *testing.T) {
	catalog := twoGroupCatalog(t, 1)
	ch, err := NewChromosome(catalog, 40, NewSource(11))
	require.NoError(t, err)

	require.Len(t, ch.Regular, 2)
	assert.Equal(t, "out", ch.Output.Label)
	assert.Len(t, ch.Output.Strong, 2)

	for g, group := range ch.Regular {
		for _, comp := range group {
			var bp *Blueprint
			for i := range catalog.Regular[g] {
				if catalog.Regular[g][i].Activity == comp.Activity {
					bp = &catalog.Regular[g][i]
				}
			}
			require.NotNil(t, bp, "component %s not from group %d", comp.Label, g)
			assert.Equal(t, bp.Label, comp.Label)
			assert.Len(t, comp.Strong, len(bp.Strong))
			assert.Len(t, comp.Weak, len(bp.Weak))
			for _, v := range comp.Strong {
				assert.Len(t, v, catalog.TotalActivities)
			}
		}
	}
}

func TestChromosomeCloneIsDeep(t *testing.T) {
	catalog := arithCatalog(t, 1)
	ch, err := NewChromosome(catalog, 10, NewSource(2))
	require.NoError(t, err)

	clone := ch.Clone()
	requireSameChromosome(t, ch, clone)

	clone.Regular[0] = clone.Regular[0][:0]
	clone.Output.Strong[0][0] = 42
	assert.Equal(t, 7, ch.NumRegulars())
	assert.NotEqual(t, 42.0, ch.Output.Strong[0][0])
}

func TestNewChromosomeSizeProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	catalog := twoGroupCatalog(t, 1)

	properties.Property("regulars + terminals + output == size", prop.ForAll(
		func(extra int, seed int64) bool {
			size := catalog.NumTerminals + 2 + extra
			ch, err := NewChromosome(catalog, size, NewSource(seed))
			if err != nil {
				return false
			}
			return ch.NumRegulars()+catalog.NumTerminals+1 == size
		},
		gen.IntRange(0, 200),
		gen.Int64Range(1, 1<<40),
	))

	properties.TestingRun(t)
}

func TestChromosomeLenCountsOutput(t *testing.T) {
	catalog := arithCatalog(t, 1)
	ch, err := NewChromosome(catalog, 10, NewSource(2))
	require.NoError(t, err)

	assert.Equal(t, 8, ch.Len())
	assert.Equal(t, 10, ch.Len()+catalog.NumTerminals)
}
