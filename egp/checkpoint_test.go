package egp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointRoundTrip(t *testing.T) {
	for _, compression := range []string{"gzip", "snappy"} {
		t.Run(compression, func(t *testing.T) {
			p := newTestPopulation(t)
			p.Config.Checkpoint.Compression = compression
			p.Generation = 7
			p.Individuals[0].Fitness = 1.5
			child := p.Breed(p.Individuals[0], p.Individuals[1])
			p.Individuals[2] = child

			path := filepath.Join(t.TempDir(), "population.ckpt")
			require.NoError(t, p.SaveCheckpoint(path))

			loaded, err := LoadCheckpoint(path, p.Config, p.Catalog, WithLogger(quietLogger()))
			require.NoError(t, err)

			assert.Equal(t, 7, loaded.Generation)
			require.Len(t, loaded.Individuals, len(p.Individuals))
			for i, ind := range p.Individuals {
				got := loaded.Individuals[i]
				assert.Equal(t, ind.ID, got.ID)
				assert.Equal(t, ind.Fitness, got.Fitness)
				assert.Equal(t, len(ind.Parents), len(got.Parents))
				requireSameChromosome(t, ind.Chromosome, got.Chromosome)
			}
			assert.Equal(t, child.Parents, loaded.Individuals[2].Parents)

			// The loaded chromosomes express like the saved ones.
			for i, ind := range p.Individuals {
				want := Express(p.Catalog, ind.Chromosome)
				got := Express(loaded.Catalog, loaded.Individuals[i].Chromosome)
				assert.Equal(t, want.DOT(), got.DOT())
			}
		})
	}
}

func TestLoadCheckpointErrors(t *testing.T) {
	p := newTestPopulation(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "population.ckpt")
	require.NoError(t, p.SaveCheckpoint(path))

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCheckpoint(filepath.Join(dir, "nope.ckpt"), p.Config, p.Catalog)
		assert.Error(t, err)
	})

	t.Run("wrong compression", func(t *testing.T) {
		config := *p.Config
		config.Checkpoint.Compression = "snappy"
		_, err := LoadCheckpoint(path, &config, p.Catalog)
		assert.Error(t, err)
	})

	t.Run("unsupported compression", func(t *testing.T) {
		config := *p.Config
		config.Checkpoint.Compression = "zstd"
		_, err := LoadCheckpoint(path, &config, p.Catalog)
		assert.ErrorContains(t, err, "unsupported checkpoint compression")
	})

	t.Run("catalog with different group count", func(t *testing.T) {
		_, err := LoadCheckpoint(path, p.Config, twoGroupCatalog(t, 1))
		assert.ErrorContains(t, err, "groups")
	})

	t.Run("catalog with different activity count", func(t *testing.T) {
		small, err := BuildCatalog(
			SingleMain("out"),
			[][]Blueprint{{TerminalBlueprint("r")}},
			[][]Blueprint{TerminalBlueprints("t")},
			nil,
			NewSource(1),
		)
		require.NoError(t, err)
		require.Equal(t, 2, small.TotalActivities)

		loaded, err := LoadCheckpoint(path, p.Config, small)
		require.ErrorIs(t, err, ErrChromosomeShape)
		assert.ErrorContains(t, err, "config error")
		assert.Nil(t, loaded)
	})

	t.Run("corrupt data", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.ckpt")
		require.NoError(t, os.WriteFile(bad, []byte("not a checkpoint"), 0o644))
		_, err := LoadCheckpoint(bad, p.Config, p.Catalog)
		assert.Error(t, err)
	})
}

func TestCheckChromosome(t *testing.T) {
	catalog := twoGroupCatalog(t, 1)
	valid := func() *Chromosome {
		ch, err := NewChromosome(catalog, 20, NewSource(4))
		require.NoError(t, err)
		// Keep group 0 nonempty so the regular cases below have a target.
		if len(ch.Regular[0]) == 0 {
			ch.Regular[0] = append(ch.Regular[0], NewComponent(catalog.Regular[0][0], catalog.TotalActivities, NewSource(5)))
		}
		return ch
	}
	require.NoError(t, checkChromosome(catalog, valid()))

	tests := []struct {
		name   string
		mutate func(ch *Chromosome)
	}{
		{"no output", func(ch *Chromosome) { ch.Output = nil }},
		{"missing regular", func(ch *Chromosome) { ch.Regular[0][0] = nil }},
		{"activity out of range", func(ch *Chromosome) { ch.Regular[0][0].Activity = catalog.TotalActivities }},
		{"short strong vector", func(ch *Chromosome) { ch.Output.Strong[0] = ch.Output.Strong[0][:2] }},
		{"strong site to unknown group", func(ch *Chromosome) { ch.Output.StrongGroup[1] = 5 }},
		{"sites without groups", func(ch *Chromosome) { ch.Output.StrongGroup = ch.Output.StrongGroup[:1] }},
		{"extra group", func(ch *Chromosome) { ch.Regular = append(ch.Regular, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := valid()
			tt.mutate(ch)
			assert.ErrorIs(t, checkChromosome(catalog, ch), ErrChromosomeShape)
		})
	}
}

func TestCheckChromosomeRejectsWrongWeakSites(t *testing.T) {
	catalog := weakCatalog(t)
	call := &Component{Activity: 0, Label: "call", Weak: []Vector{{0, 1, 0}}, WeakGroup: []int{0}}
	ch := &Chromosome{
		Output:  &Component{Label: "out", Strong: []Vector{{0.5, 0.5, 0}}, StrongGroup: []int{0}},
		Regular: [][]*Component{{call}},
	}
	require.NoError(t, checkChromosome(catalog, ch))

	call.Weak[0] = Vector{0, 1}
	assert.ErrorIs(t, checkChromosome(catalog, ch), ErrChromosomeShape)

	call.Weak[0] = Vector{0, 1, 0}
	call.WeakGroup[0] = -1
	assert.ErrorIs(t, checkChromosome(catalog, ch), ErrChromosomeShape)
}
