// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"

	"github.com/invowk/buildenv/pkg/platform"
)

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
	// ConfigDirPath overrides the config directory lookup when set.
	ConfigDirPath string
	// WorkDir is where LocalConfigFileName is looked up. Empty means the
	// process's current directory.
	WorkDir string
}

// Provider loads configuration from explicit options.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
	// Locate returns the file Load would read, or "" when only defaults apply.
	Locate(opts LoadOptions) (string, error)
}

type fileProvider struct {
	platform platform.Platform
}

// NewProvider creates a configuration provider that resolves the user config
// directory through plat.
func NewProvider(plat platform.Platform) Provider {
	return &fileProvider{platform: plat}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, p.platform, opts)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (p *fileProvider) Locate(opts LoadOptions) (string, error) {
	return locate(p.platform, opts)
}
