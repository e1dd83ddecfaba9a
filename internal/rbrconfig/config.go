// Package rbrconfig loads recombination-search parameters from an
// optional YAML file, layered under CLI flag overrides, recovering
// original_source/rebar/src/run/mod.rs's RunArgs defaults that the
// distilled spec only tables (spec.md §4.7).
package rbrconfig

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ktmeaton/rebar-sub000/internal/rbrerr"
	"github.com/ktmeaton/rebar-sub000/internal/recombination"
	"github.com/ktmeaton/rebar-sub000/internal/sequence"
)

// Config is the on-disk shape of a recombination-parameter file. Every
// field is a pointer (or nil-able slice) so that "absent from the
// file" is distinguishable from "explicitly zero" when layering onto
// a Params value that already carries defaults.
type Config struct {
	MinParents     *int     `yaml:"min_parents"`
	MaxParents     *int     `yaml:"max_parents"`
	MaxIter        *int     `yaml:"max_iter"`
	MinConsecutive *int     `yaml:"min_consecutive"`
	MinLength      *int     `yaml:"min_length"`
	MinSubs        *int     `yaml:"min_subs"`
	Mask           *[2]int  `yaml:"mask"`
	Parents        []string `yaml:"parents"`
	Knockout       []string `yaml:"knockout"`
	Naive          *bool    `yaml:"naive"`
}

// Load parses a recombination-parameter YAML file at path. A missing
// file is not an error; it returns a zero Config, which Apply leaves
// entirely to its base Params.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, rbrerr.Wrap(rbrerr.IO, err, "reading config file "+path)
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, rbrerr.Wrap(rbrerr.BadAttribute, err, "parsing config file "+path)
	}
	return &c, nil
}

// Apply overlays c's set fields onto base, returning the merged
// Params: every field set in the file replaces base's value. The run
// command calls it with recombination.DefaultParams() as base and
// applies explicitly passed flags afterwards, so flags win over the
// file and the file wins over the defaults.
func (c *Config) Apply(base recombination.Params) recombination.Params {
	if c == nil {
		return base
	}
	if c.MinParents != nil {
		base.MinParents = *c.MinParents
	}
	if c.MaxParents != nil {
		base.MaxParents = *c.MaxParents
	}
	if c.MaxIter != nil {
		base.MaxIter = *c.MaxIter
	}
	if c.MinConsecutive != nil {
		base.MinConsecutive = *c.MinConsecutive
	}
	if c.MinLength != nil {
		base.MinLength = *c.MinLength
	}
	if c.MinSubs != nil {
		base.MinSubs = *c.MinSubs
	}
	if c.Mask != nil {
		base.Mask = sequence.Mask{M5: c.Mask[0], M3: c.Mask[1]}
	}
	if c.Parents != nil {
		base.Parents = c.Parents
	}
	if c.Knockout != nil {
		base.Knockout = c.Knockout
	}
	if c.Naive != nil {
		base.Naive = *c.Naive
	}
	return base
}
