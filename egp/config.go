package egp

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/ini.v1"
)

// Config stores the parameters of an evolutionary run driven by this engine.
type Config struct {
	EGP        EGPConfig
	Chromosome ChromosomeConfig
	Population PopulationConfig
	Checkpoint CheckpointConfig
}

// EGPConfig holds run-wide parameters.
type EGPConfig struct {
	CatalogFile string `ini:"catalog_file" validate:"required"` // YAML catalog, relative to the config file
	Seed        int64  `ini:"seed"`                             // 0 seeds from the clock
}

// ChromosomeConfig holds parameters for building and recombining chromosomes.
type ChromosomeConfig struct {
	Size      int `ini:"chromosome_size" validate:"gt=0"`
	NTransfer int `ini:"n_transfer" validate:"gte=0"`
}

// PopulationConfig holds parameters for the population container.
type PopulationConfig struct {
	PopSize int `ini:"pop_size" validate:"gt=0"`
	Workers int `ini:"workers" validate:"gte=0"` // 0 means GOMAXPROCS
}

// CheckpointConfig holds parameters for checkpoint files.
type CheckpointConfig struct {
	Compression string `ini:"compression" validate:"oneof=gzip snappy"`
	Interval    int    `ini:"interval" validate:"gte=0"` // generations between checkpoints, 0 disables
}

var validate = validator.New()

// LoadConfig loads configuration parameters from an INI file.
func LoadConfig(filePath string) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}

	config, err := parseConfig(cfg)
	if err != nil {
		return nil, err
	}

	if config.EGP.CatalogFile != "" && !filepath.IsAbs(config.EGP.CatalogFile) {
		config.EGP.CatalogFile = filepath.Join(filepath.Dir(filePath), config.EGP.CatalogFile)
	}
	return config, nil
}

// ParseConfig parses configuration parameters from INI source data.
// A relative catalog_file is left as written.
func ParseConfig(data []byte) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return parseConfig(cfg)
}

func parseConfig(cfg *ini.File) (*Config, error) {
	config := &Config{}

	if err := cfg.Section("EGP").MapTo(&config.EGP); err != nil {
		return nil, fmt.Errorf("failed to map [EGP] section: %w", err)
	}
	if err := cfg.Section("DefaultChromosome").MapTo(&config.Chromosome); err != nil {
		return nil, fmt.Errorf("failed to map [DefaultChromosome] section: %w", err)
	}
	if err := cfg.Section("Population").MapTo(&config.Population); err != nil {
		return nil, fmt.Errorf("failed to map [Population] section: %w", err)
	}
	if err := cfg.Section("Checkpoint").MapTo(&config.Checkpoint); err != nil {
		return nil, fmt.Errorf("failed to map [Checkpoint] section: %w", err)
	}

	config.EGP.CatalogFile = cleanIniString(config.EGP.CatalogFile)
	config.Checkpoint.Compression = strings.ToLower(cleanIniString(config.Checkpoint.Compression))

	// Defaults
	if config.Checkpoint.Compression == "" {
		config.Checkpoint.Compression = "gzip"
	}

	sections := []struct {
		name  string
		value any
	}{
		{"EGP", &config.EGP},
		{"DefaultChromosome", &config.Chromosome},
		{"Population", &config.Population},
		{"Checkpoint", &config.Checkpoint},
	}
	for _, section := range sections {
		if err := validate.Struct(section.value); err != nil {
			return nil, fmt.Errorf("config error: [%s]: %w", section.name, err)
		}
	}

	return config, nil
}

// Validate checks the parts of the config that depend on the catalog.
func (c *Config) Validate(catalog *Catalog) error {
	if c.Chromosome.Size <= catalog.NumTerminals+1 {
		return fmt.Errorf("config error: %w: chromosome_size must exceed %d (terminals + output), got %d", ErrChromosomeSize, catalog.NumTerminals+1, c.Chromosome.Size)
	}
	return nil
}

// cleanIniString removes inline comments and trims whitespace from a string read from INI.
func cleanIniString(s string) string {
	if idx := strings.IndexAny(s, "#;"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
