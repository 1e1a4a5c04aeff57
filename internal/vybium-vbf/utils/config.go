package utils

import (
	"fmt"
	"strings"
)

// Config represents the configuration shared by analyses, the equivalence
// engine and the batch runner
type Config struct {
	// Dimension limits
	MaxDimension         uint // Largest n accepted for truth tables
	MonomialMaxDimension uint // Largest n for which the monomial test runs

	// Search parameters
	MaxSearchNodes uint64 // Equivalence search node budget, 0 for unlimited

	// Batch parameters
	Workers        int // Parallel workers for batch runs
	FieldCacheSize int // Number of cached field contexts

	// Storage
	StorePath string // Known-function database directory, empty for in-memory

	// Logging
	LogFacilities string // Comma separated debug facilities, "all" for every one
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		MaxDimension:         20,
		MonomialMaxDimension: 16,
		MaxSearchNodes:       0,
		Workers:              4,
		FieldCacheSize:       32,
		StorePath:            "",
		LogFacilities:        "",
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.MaxDimension == 0 || c.MaxDimension > 24 {
		return fmt.Errorf("max dimension must be in [1, 24], got %d", c.MaxDimension)
	}

	if c.MonomialMaxDimension == 0 || c.MonomialMaxDimension > c.MaxDimension {
		return fmt.Errorf("monomial max dimension (%d) must be in [1, max dimension (%d)]",
			c.MonomialMaxDimension, c.MaxDimension)
	}

	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}

	if c.FieldCacheSize <= 0 {
		return fmt.Errorf("field cache size must be positive")
	}

	return nil
}

// Facilities splits LogFacilities into trimmed, non-empty names
func (c *Config) Facilities() []string {
	var out []string
	for _, f := range strings.Split(c.LogFacilities, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// WithMaxDimension sets the largest accepted dimension
func (c *Config) WithMaxDimension(n uint) *Config {
	c.MaxDimension = n
	return c
}

// WithMonomialMaxDimension sets the monomial test bound
func (c *Config) WithMonomialMaxDimension(n uint) *Config {
	c.MonomialMaxDimension = n
	return c
}

// WithMaxSearchNodes sets the equivalence search node budget
func (c *Config) WithMaxSearchNodes(nodes uint64) *Config {
	c.MaxSearchNodes = nodes
	return c
}

// WithWorkers sets the number of batch workers
func (c *Config) WithWorkers(workers int) *Config {
	c.Workers = workers
	return c
}

// WithFieldCacheSize sets the field cache capacity
func (c *Config) WithFieldCacheSize(size int) *Config {
	c.FieldCacheSize = size
	return c
}

// WithStorePath sets the database directory
func (c *Config) WithStorePath(path string) *Config {
	c.StorePath = path
	return c
}

// WithLogFacilities sets the enabled debug facilities
func (c *Config) WithLogFacilities(facilities string) *Config {
	c.LogFacilities = facilities
	return c
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
