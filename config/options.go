package config

// Option configures Parameters. Options are resolved in order by New.
type Option interface {
	// noop method
	ParamOpt()
}

type GenSizeOption struct{ GenSize int }

func (o GenSizeOption) ParamOpt() {}

type TriesOption struct{ Tries int64 }

func (o TriesOption) ParamOpt() {}

type MaxEdgeCasesOption struct{ MaxEdgeCases int }

func (o MaxEdgeCasesOption) ParamOpt() {}

type SeedOption struct{ Seed int64 }

func (o SeedOption) ParamOpt() {}

type GenerationOption struct{ Mode GenerationMode }

func (o GenerationOption) ParamOpt() {}

type EdgeCasesOption struct{ Mode EdgeCasesMode }

func (o EdgeCasesOption) ParamOpt() {}

type EdgeCaseProbabilityOption struct{ Probability float64 }

func (o EdgeCaseProbabilityOption) ParamOpt() {}

// Replaces every parameter, typically with a loaded file. Options given after
// it still apply.
type ParametersOption struct{ Parameters Parameters }

func (o ParametersOption) ParamOpt() {}

// New resolves opts on top of the default parameters.
func New(opts ...Option) Parameters {
	p := Default()
	for _, opt := range opts {
		switch t := opt.(type) {
		case ParametersOption:
			p = t.Parameters
		case GenSizeOption:
			p.GenSize = t.GenSize
		case TriesOption:
			p.Tries = t.Tries
		case MaxEdgeCasesOption:
			p.MaxEdgeCases = t.MaxEdgeCases
		case SeedOption:
			p.Seed = t.Seed
		case GenerationOption:
			p.Generation = t.Mode
		case EdgeCasesOption:
			p.EdgeCases = t.Mode
		case EdgeCaseProbabilityOption:
			p.EdgeCaseProbability = t.Probability
		}
	}
	return p
}
