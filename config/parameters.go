// Package config holds the parameters of a generation session.
package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrInvalidParameters is returned by Validate and Load for parameters no
// session can run with.
var ErrInvalidParameters = errors.New("config: invalid parameters")

const (
	DefaultGenSize             = 1000
	DefaultTries               = 1000
	DefaultMaxEdgeCases        = 20
	DefaultEdgeCaseProbability = 0.05

	// Builder level defaults.
	DefaultMaxMisses         = 10000
	DefaultUniqueRetries     = 100
	DefaultMaxCollectionSize = 255
)

// GenerationMode selects how samples are produced.
type GenerationMode string

const (
	// Exhaustive when the domain is small enough, random otherwise.
	GenerationAuto       GenerationMode = "auto"
	GenerationRandom     GenerationMode = "random"
	GenerationExhaustive GenerationMode = "exhaustive"
)

func (m *GenerationMode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch mode := GenerationMode(s); mode {
	case GenerationAuto, GenerationRandom, GenerationExhaustive:
		*m = mode
		return nil
	}
	return fmt.Errorf("%w: unknown generation mode %q", ErrInvalidParameters, s)
}

// EdgeCasesMode selects where edge cases appear in a random session.
type EdgeCasesMode string

const (
	// All edge cases before the random samples.
	EdgeCasesFirst EdgeCasesMode = "first"
	// Edge cases mixed into the random samples.
	EdgeCasesMixin EdgeCasesMode = "mixin"
	EdgeCasesNone  EdgeCasesMode = "none"
)

func (m *EdgeCasesMode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch mode := EdgeCasesMode(s); mode {
	case EdgeCasesFirst, EdgeCasesMixin, EdgeCasesNone:
		*m = mode
		return nil
	}
	return fmt.Errorf("%w: unknown edge cases mode %q", ErrInvalidParameters, s)
}

// Parameters configures a generation session.
type Parameters struct {
	// Size hint passed to every random generator.
	GenSize int `yaml:"gen_size"`
	// Number of samples a session produces. Exhaustive generation is only
	// used when the domain fits.
	Tries int64 `yaml:"tries"`
	// Budget of edge cases per session.
	MaxEdgeCases int `yaml:"max_edge_cases"`
	// Seed of the session's random source. Zero picks one from the clock.
	Seed int64 `yaml:"seed"`

	Generation          GenerationMode `yaml:"generation"`
	EdgeCases           EdgeCasesMode  `yaml:"edge_cases"`
	EdgeCaseProbability float64        `yaml:"edge_case_probability"`
}

// Default returns the parameters used when nothing is configured.
func Default() Parameters {
	return Parameters{
		GenSize:             DefaultGenSize,
		Tries:               DefaultTries,
		MaxEdgeCases:        DefaultMaxEdgeCases,
		Generation:          GenerationAuto,
		EdgeCases:           EdgeCasesMixin,
		EdgeCaseProbability: DefaultEdgeCaseProbability,
	}
}

// Validate reports the first parameter out of its allowed range.
func (p Parameters) Validate() error {
	switch {
	case p.GenSize < 1:
		return fmt.Errorf("%w: gen_size must be positive, got %d", ErrInvalidParameters, p.GenSize)
	case p.Tries < 1:
		return fmt.Errorf("%w: tries must be positive, got %d", ErrInvalidParameters, p.Tries)
	case p.MaxEdgeCases < 0:
		return fmt.Errorf("%w: max_edge_cases must not be negative, got %d", ErrInvalidParameters, p.MaxEdgeCases)
	case p.EdgeCaseProbability < 0 || p.EdgeCaseProbability > 1:
		return fmt.Errorf("%w: edge_case_probability must be in [0, 1], got %v", ErrInvalidParameters, p.EdgeCaseProbability)
	}
	switch p.Generation {
	case GenerationAuto, GenerationRandom, GenerationExhaustive:
	default:
		return fmt.Errorf("%w: unknown generation mode %q", ErrInvalidParameters, p.Generation)
	}
	switch p.EdgeCases {
	case EdgeCasesFirst, EdgeCasesMixin, EdgeCasesNone:
	default:
		return fmt.Errorf("%w: unknown edge cases mode %q", ErrInvalidParameters, p.EdgeCases)
	}
	return nil
}
