package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

type optionsBuilder struct {
	options []*Options
	err     error
}

func newOptionsBuilder() *optionsBuilder {
	return &optionsBuilder{
		options: make([]*Options, 0, 4),
	}
}

func (b *optionsBuilder) build() (*Options, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building options: %w", b.err)
	}

	merged := new(Options)
	for _, opts := range b.options {
		if err := mergo.Merge(merged, opts); err != nil {
			return nil, fmt.Errorf("error merging options: %w", err)
		}
	}

	merged.normalize()

	return merged, merged.validate()
}

func (b *optionsBuilder) withOverrides(overrides *Options) *optionsBuilder {
	if overrides != nil {
		b.options = append(b.options, overrides)
	}

	return b
}

func (b *optionsBuilder) withEnv() *optionsBuilder {
	envOpts := &Options{}
	if err := parseEnv(envOpts); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.options = append(b.options, envOpts)
	return b
}

func (b *optionsBuilder) withJSON() *optionsBuilder {
	var jsonPath string

	for _, opts := range b.options {
		if opts.JSONFilePath != "" {
			jsonPath = opts.JSONFilePath
			break
		}
	}

	if jsonPath != "" {
		jsonOpts, err := parseJSON(jsonPath)
		if err != nil {
			b.err = errors.Join(b.err, err)
			return b
		}
		b.options = append(b.options, jsonOpts)
	}

	return b
}

func (b *optionsBuilder) withDefaults() *optionsBuilder {
	b.options = append(b.options, defaultOptions())
	return b
}
