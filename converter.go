package opencc

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/npillmayer/opencc/segment"
)

// Converter converts text according to a configuration.
// A Converter is safe for concurrent use.
type Converter struct {
	name      string
	config    *Config
	chain     *ConversionChain
	segmenter segment.Segmenter
}

// New creates a Converter from a configuration file, e.g. "s2t.json". All
// dictionaries of the conversion chain are loaded, compiling text sources
// if necessary.
func New(configPath string) (*Converter, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	converter, err := newConverter(config, newFileLoader(config.dir))
	if err != nil {
		return nil, err
	}
	tracer().Infof("loaded conversion %q with %d steps", config.Name, converter.chain.Len())
	return converter, nil
}

// NewFromFS creates a Converter from a configuration and precompiled
// dictionaries bundled in fsys, without touching the host file system.
func NewFromFS(fsys fs.FS, configName string) (*Converter, error) {
	data, err := fs.ReadFile(fsys, configName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("bundled configuration %s: %w", configName, ErrNotFound)
		}
		return nil, err
	}
	config, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configName, err)
	}
	return newConverter(config, newFSLoader(fsys))
}

// newConverter builds chain and segmenter with a shared loader, so a
// dictionary used by both is loaded once.
func newConverter(config *Config, loader dictLoader) (*Converter, error) {
	chain, err := config.buildChain(loader)
	if err != nil {
		return nil, err
	}
	segmenter, err := config.Segmentation.build(loader)
	if err != nil {
		return nil, err
	}
	return &Converter{
		name:      config.Name,
		config:    config,
		chain:     chain,
		segmenter: segmenter,
	}, nil
}

// Convert converts input.
func (c *Converter) Convert(input string) string {
	return c.chain.Convert(input)
}

// Name returns the name of the configuration.
func (c *Converter) Name() string {
	return c.name
}

// Segmenter returns the segmenter of the configuration, or nil if the
// configuration has no segmentation section.
func (c *Converter) Segmenter() segment.Segmenter {
	return c.segmenter
}

// Config returns the configuration the Converter was created from.
func (c *Converter) Config() *Config {
	return c.config
}
