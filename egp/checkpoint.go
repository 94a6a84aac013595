package egp

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/golang/snappy"
)

// CheckpointData is what a checkpoint file holds. Chromosomes are stored field
// for field; the catalog and config are not saved and must be supplied again
// when loading.
type CheckpointData struct {
	Generation  int
	Individuals []*Individual
}

// SaveCheckpoint writes the population to filePath, compressed as configured.
func (p *Population) SaveCheckpoint(filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create checkpoint file '%s': %w", filePath, err)
	}
	defer file.Close()

	w, err := compressor(p.Config.Checkpoint.Compression, file)
	if err != nil {
		return err
	}

	data := CheckpointData{Generation: p.Generation, Individuals: p.Individuals}
	if err := gob.NewEncoder(w).Encode(data); err != nil {
		w.Close()
		return fmt.Errorf("failed to encode population data: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to flush checkpoint '%s': %w", filePath, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close checkpoint '%s': %w", filePath, err)
	}

	p.logger.Info("checkpoint saved", "path", filePath, "generation", p.Generation)
	return nil
}

// LoadCheckpoint restores a population saved by SaveCheckpoint. The config and
// catalog must be the ones the checkpoint was written with.
func LoadCheckpoint(filePath string, config *Config, catalog *Catalog, opts ...PopulationOption) (*Population, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint file '%s': %w", filePath, err)
	}
	defer file.Close()

	r, err := decompressor(config.Checkpoint.Compression, file)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data := CheckpointData{}
	if err := gob.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode population data from checkpoint: %w", err)
	}

	for _, ind := range data.Individuals {
		if err := checkChromosome(catalog, ind.Chromosome); err != nil {
			return nil, fmt.Errorf("config error: checkpoint individual %s: %w", ind.ID, err)
		}
	}

	p := &Population{
		Config:      config,
		Catalog:     catalog,
		Individuals: data.Individuals,
		Generation:  data.Generation,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.src == nil {
		p.src = NewSource(config.EGP.Seed)
	}

	p.logger.Info("checkpoint loaded", "path", filePath, "generation", p.Generation)
	return p, nil
}

// checkChromosome reports whether ch can be expressed against catalog: the
// group count, every vector length, every site target and every activity must
// agree with it.
func checkChromosome(catalog *Catalog, ch *Chromosome) error {
	if ch == nil || ch.Output == nil {
		return fmt.Errorf("%w: no output component", ErrChromosomeShape)
	}
	if len(ch.Regular) != catalog.NumGroups() {
		return fmt.Errorf("%w: chromosome has %d groups, catalog has %d",
			ErrChromosomeShape, len(ch.Regular), catalog.NumGroups())
	}
	if err := checkComponent(catalog, ch.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	for g, group := range ch.Regular {
		for i, comp := range group {
			if comp == nil {
				return fmt.Errorf("%w: regular %d of group %d is missing", ErrChromosomeShape, i, g)
			}
			if err := checkComponent(catalog, comp); err != nil {
				return fmt.Errorf("regular %d of group %d: %w", i, g, err)
			}
		}
	}
	return nil
}

func checkComponent(catalog *Catalog, comp *Component) error {
	if comp.Activity < 0 || comp.Activity >= catalog.TotalActivities {
		return fmt.Errorf("%w: activity %d not in [0, %d)", ErrChromosomeShape, comp.Activity, catalog.TotalActivities)
	}
	if len(comp.Strong) != len(comp.StrongGroup) || len(comp.Weak) != len(comp.WeakGroup) {
		return fmt.Errorf("%w: %q has sites without target groups", ErrChromosomeShape, comp.Label)
	}
	for i, site := range comp.Strong {
		g := comp.StrongGroup[i]
		if g < 0 || g >= catalog.NumGroups() || len(catalog.Terminal[g]) == 0 {
			return fmt.Errorf("%w: %q strong site %d targets group %d", ErrChromosomeShape, comp.Label, i, g)
		}
		if len(site) != catalog.TotalActivities {
			return fmt.Errorf("%w: %q strong site %d has %d dimensions, catalog has %d activities",
				ErrChromosomeShape, comp.Label, i, len(site), catalog.TotalActivities)
		}
	}
	for i, site := range comp.Weak {
		g := comp.WeakGroup[i]
		if g < 0 || g >= catalog.NumGroups() {
			return fmt.Errorf("%w: %q weak site %d targets group %d", ErrChromosomeShape, comp.Label, i, g)
		}
		if len(site) != catalog.TotalActivities {
			return fmt.Errorf("%w: %q weak site %d has %d dimensions, catalog has %d activities",
				ErrChromosomeShape, comp.Label, i, len(site), catalog.TotalActivities)
		}
	}
	return nil
}

func compressor(kind string, w io.Writer) (io.WriteCloser, error) {
	switch kind {
	case "", "gzip":
		return gzip.NewWriter(w), nil
	case "snappy":
		return snappy.NewBufferedWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported checkpoint compression: %s", kind)
	}
}

func decompressor(kind string, r io.Reader) (io.ReadCloser, error) {
	switch kind {
	case "", "gzip":
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for checkpoint: %w", err)
		}
		return gz, nil
	case "snappy":
		return io.NopCloser(snappy.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("unsupported checkpoint compression: %s", kind)
	}
}
