package egp

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Individual is one member of a population.
type Individual struct {
	ID         uuid.UUID
	Chromosome *Chromosome
	Fitness    float64
	Parents    []uuid.UUID // empty for ab-initio individuals
}

// EvalFunc scores an individual from its developed phenotype. It is called
// concurrently for different individuals.
type EvalFunc func(ctx context.Context, ind *Individual, p *Phenotype) (float64, error)

// Population holds the individuals of one generation together with what is
// needed to develop and vary them. Choosing which individuals survive or breed
// is left to the caller.
type Population struct {
	Config      *Config
	Catalog     *Catalog
	Individuals []*Individual
	Generation  int

	src     Source
	logger  *slog.Logger
	metrics *Metrics
	mu      sync.Mutex // guards src
}

// PopulationOption configures a Population.
type PopulationOption func(*Population)

// WithLogger sets the logger used for generation-level events.
func WithLogger(logger *slog.Logger) PopulationOption {
	return func(p *Population) { p.logger = logger }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m *Metrics) PopulationOption {
	return func(p *Population) { p.metrics = m }
}

// WithSource overrides the random source, which otherwise comes from the
// configured seed.
func WithSource(src Source) PopulationOption {
	return func(p *Population) { p.src = src }
}

// NewPopulation creates pop_size ab-initio individuals.
func NewPopulation(config *Config, catalog *Catalog, opts ...PopulationOption) (*Population, error) {
	p := &Population{
		Config:  config,
		Catalog: catalog,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.src == nil {
		p.src = NewSource(config.EGP.Seed)
	}

	if err := config.Validate(catalog); err != nil {
		return nil, err
	}

	p.Individuals = make([]*Individual, 0, config.Population.PopSize)
	for i := 0; i < config.Population.PopSize; i++ {
		ch, err := NewChromosome(catalog, config.Chromosome.Size, p.src)
		if err != nil {
			return nil, fmt.Errorf("failed to create individual %d: %w", i, err)
		}
		p.Individuals = append(p.Individuals, &Individual{ID: uuid.New(), Chromosome: ch})
	}

	p.logger.Info("population created",
		"size", len(p.Individuals),
		"chromosome_size", config.Chromosome.Size,
		"total_activities", catalog.TotalActivities)
	return p, nil
}

// Develop expresses every individual and stores the fitness returned by eval.
// Individuals are developed in parallel; the catalog is shared read-only and
// every chromosome is touched by one goroutine only.
func (p *Population) Develop(ctx context.Context, eval EvalFunc) error {
	if len(p.Individuals) == 0 {
		return ErrEmptyPopulation
	}

	start := time.Now()
	workers := p.Config.Population.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, ind := range p.Individuals {
		ind := ind
		g.Go(func() (err error) {
			if err := ctx.Err(); err != nil {
				return err
			}
			// A malformed chromosome fails its own development, not the process.
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: individual %s: %v", ErrDevelopment, ind.ID, r)
				}
			}()

			phenotype, stats := ExpressWithStats(p.Catalog, ind.Chromosome)
			p.metrics.ObserveExpression(phenotype, stats)

			fitness, err := eval(ctx, ind, phenotype)
			if err != nil {
				return fmt.Errorf("failed to evaluate individual %s: %w", ind.ID, err)
			}
			ind.Fitness = fitness
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("development failed in generation %d: %w", p.Generation, err)
	}

	stats := p.FitnessStats()
	p.logger.Info("generation developed",
		"generation", p.Generation,
		"individuals", len(p.Individuals),
		"best_fitness", stats.Max,
		"mean_fitness", stats.Mean,
		"stdev_fitness", stats.Stdev,
		"elapsed", time.Since(start))
	return nil
}

// Best returns the individual with the highest fitness, or nil when empty.
func (p *Population) Best() *Individual {
	var best *Individual
	for _, ind := range p.Individuals {
		if best == nil || ind.Fitness > best.Fitness {
			best = ind
		}
	}
	return best
}

// Breed recombines parent with donor using the configured n_transfer and then
// mutates the child. Parents are not modified.
func (p *Population) Breed(parent, donor *Individual) *Individual {
	p.mu.Lock()
	defer p.mu.Unlock()

	child, recombination := Recombine(p.Catalog, p.Config.Chromosome.NTransfer, parent.Chromosome, donor.Chromosome, p.src)
	p.metrics.ObserveRecombination(recombination)

	mutation := Mutate(p.Catalog, child, p.src)
	p.metrics.ObserveMutation(mutation)

	return &Individual{
		ID:         uuid.New(),
		Chromosome: child,
		Parents:    []uuid.UUID{parent.ID, donor.ID},
	}
}

// Intn draws from the population's random source. Callers implementing
// selection use it to keep a run reproducible from its seed.
func (p *Population) Intn(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.src.Intn(n)
}

// Replace installs the next generation.
func (p *Population) Replace(next []*Individual) error {
	if len(next) == 0 {
		return ErrEmptyPopulation
	}
	p.Individuals = next
	p.Generation++
	p.logger.Debug("generation replaced", "generation", p.Generation, "individuals", len(next))
	return nil
}
