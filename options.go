package propcheck

import "propcheck/config"

// Configure the size hint passed to random generators.
//
// Default value is 1000
func GenSize(genSize int) config.Option {
	return config.GenSizeOption{GenSize: genSize}
}

// Configure the number of samples a session produces.
//
// Exhaustive generation is only chosen when the whole domain fits in this
// budget. Default value is 1000
func Tries(tries int64) config.Option {
	return config.TriesOption{Tries: tries}
}

// Configure how many edge cases a session may use.
//
// Default value is 20
func MaxEdgeCases(n int) config.Option {
	return config.MaxEdgeCasesOption{MaxEdgeCases: n}
}

// Use a fixed seed for the random source of the session.
//
// Sessions with the same seed and parameters produce the same samples.
// Default value is a seed taken from the clock.
func Seed(seed int64) config.Option {
	return config.SeedOption{Seed: seed}
}

// Always generate random samples, even for small domains.
func RandomGeneration() config.Option {
	return config.GenerationOption{Mode: config.GenerationRandom}
}

// Enumerate the whole domain. Generating fails if the domain is too large.
func ExhaustiveGeneration() config.Option {
	return config.GenerationOption{Mode: config.GenerationExhaustive}
}

// Enumerate small domains and sample large ones. This is the default.
func AutoGeneration() config.Option {
	return config.GenerationOption{Mode: config.GenerationAuto}
}

// Produce every edge case before the random samples.
func EdgeCasesFirst() config.Option {
	return config.EdgeCasesOption{Mode: config.EdgeCasesFirst}
}

// Mix edge cases into the random samples. This is the default.
func EdgeCasesMixin() config.Option {
	return config.EdgeCasesOption{Mode: config.EdgeCasesMixin}
}

// Do not use edge cases.
func NoEdgeCases() config.Option {
	return config.EdgeCasesOption{Mode: config.EdgeCasesNone}
}

// Configure the probability of a mixed in edge case replacing a random sample.
//
// Default value is 0.05
func EdgeCaseProbability(p float64) config.Option {
	return config.EdgeCaseProbabilityOption{Probability: p}
}

// Use the provided parameters, typically read with config.Load.
func WithParameters(p config.Parameters) config.Option {
	return config.ParametersOption{Parameters: p}
}
