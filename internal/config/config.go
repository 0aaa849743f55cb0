// Package config manages pltsync options and PLT filesystem paths.
//
// Options mirror the host build tool's dialyzer configuration: which PLTs to
// maintain, where they live, and which warning categories are enabled. An
// optional YAML file at the project base directory overrides the defaults;
// command-line flags override the file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Location values for PLT directories.
const (
	// LocationLocal places the project PLT in the project base directory.
	LocationLocal = "local"

	// LocationGlobal places the base PLT in the user cache directory.
	LocationGlobal = "global"
)

// DefaultPrefix is the default PLT file name prefix.
const DefaultPrefix = "pltsync"

// Options holds all pltsync configuration. Read-only to the analysis core.
type Options struct {
	// UpdatePLT controls whether PLTs are synchronized at all. When false
	// every PLT mutation phase is skipped.
	UpdatePLT bool `yaml:"update_plt"`

	// SuccTypings controls whether the final success-typing pass runs.
	SuccTypings bool `yaml:"succ_typings"`

	// Warnings lists the enabled warning categories beyond the built-ins.
	Warnings []string `yaml:"warnings"`

	// GetWarnings controls whether PLT-maintenance phases also emit
	// warnings. The success-typing pass always does.
	GetWarnings bool `yaml:"get_warnings"`

	// PLTExtraApps lists applications added to the project PLT beyond the
	// project's dependencies.
	PLTExtraApps []string `yaml:"plt_extra_apps"`

	// PLTLocation is "local" or an explicit directory for the project PLT.
	PLTLocation string `yaml:"plt_location"`

	// PLTPrefix is the project PLT file name prefix.
	PLTPrefix string `yaml:"plt_prefix"`

	// BasePLTApps lists the applications covered by the shared base PLT.
	BasePLTApps []string `yaml:"base_plt_apps"`

	// BasePLTLocation is "global" or an explicit directory for the base PLT.
	BasePLTLocation string `yaml:"base_plt_location"`

	// BasePLTPrefix is the base PLT file name prefix. Defaults to PLTPrefix.
	BasePLTPrefix string `yaml:"base_plt_prefix"`
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		UpdatePLT:       true,
		SuccTypings:     true,
		Warnings:        []string{},
		GetWarnings:     false,
		PLTExtraApps:    []string{},
		PLTLocation:     LocationLocal,
		PLTPrefix:       DefaultPrefix,
		BasePLTApps:     []string{"erts", "crypto", "kernel", "stdlib"},
		BasePLTLocation: LocationGlobal,
	}
}

// Load reads a YAML options file on top of the defaults. A missing file
// yields the defaults unchanged.
func Load(path string) (*Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return opts, nil
}

// EffectiveBasePrefix returns the base PLT prefix, falling back to the
// project PLT prefix.
func (o *Options) EffectiveBasePrefix() string {
	if o.BasePLTPrefix != "" {
		return o.BasePLTPrefix
	}
	return o.PLTPrefix
}
