package config

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Load reads YAML parameters from r. Missing fields keep their default value,
// unknown fields are an error.
func Load(r io.Reader) (Parameters, error) {
	p := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		if errors.Is(err, ErrInvalidParameters) {
			return Parameters{}, err
		}
		return Parameters{}, fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}
	if err := p.Validate(); err != nil {
		return Parameters{}, err
	}
	return p, nil
}
