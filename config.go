package opencc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/npillmayer/opencc/segment"
	"github.com/npillmayer/opencc/textdict"
)

// Config is a conversion configuration in OpenCC JSON format:
//
//	{
//	  "name": "Simplified Chinese to Traditional Chinese",
//	  "segmentation": { "type": "mmseg", "dict": { "type": "ocd2", "file": "STPhrases.ocd2" } },
//	  "conversion_chain": [{
//	    "dict": { "type": "group", "dicts": [
//	      { "type": "ocd2", "file": "STPhrases.ocd2" },
//	      { "type": "ocd2", "file": "STCharacters.ocd2" }
//	    ]}
//	  }]
//	}
type Config struct {
	Name            string                 `json:"name"`
	Segmentation    SegmentationConfig     `json:"segmentation"`
	ConversionChain []ConversionNodeConfig `json:"conversion_chain"`

	dir string // directory of the configuration file
}

// SegmentationConfig selects a segmenter and its dictionary.
type SegmentationConfig struct {
	Type string     `json:"type"`
	Dict DictConfig `json:"dict"`
}

// ConversionNodeConfig is one pass of a conversion chain.
type ConversionNodeConfig struct {
	Dict DictConfig `json:"dict"`
}

// DictConfig describes a single dictionary ("text", "ocd2") or a group of
// dictionaries ("group").
type DictConfig struct {
	Type  string       `json:"type"`
	File  string       `json:"file,omitempty"`
	Dicts []DictConfig `json:"dicts,omitempty"`
}

// ParseConfig decodes a JSON configuration.
func ParseConfig(data []byte) (*Config, error) {
	config := &Config{}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return config, nil
}

// LoadConfig reads a JSON configuration file. Dictionary files are resolved
// relative to the directory of the configuration.
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("configuration %s: %w", configPath, ErrNotFound)
		}
		return nil, err
	}
	config, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	config.dir = filepath.Dir(configPath)
	return config, nil
}

// Dir returns the directory dictionary files are resolved against.
func (config *Config) Dir() string {
	return config.dir
}

// Chain builds the conversion chain from dictionary files in the
// configuration's directory.
func (config *Config) Chain() (*ConversionChain, error) {
	return config.buildChain(newFileLoader(config.dir))
}

// ChainFS builds the conversion chain from precompiled dictionaries in fsys,
// e.g. an embed.FS bundled with an application.
func (config *Config) ChainFS(fsys fs.FS) (*ConversionChain, error) {
	return config.buildChain(newFSLoader(fsys))
}

func (config *Config) buildChain(loader dictLoader) (*ConversionChain, error) {
	dicts := make([]Dictionary, 0, len(config.ConversionChain))
	for i, node := range config.ConversionChain {
		dict, err := node.Dict.build(loader)
		if err != nil {
			return nil, fmt.Errorf("conversion chain step %d: %w", i+1, err)
		}
		dicts = append(dicts, dict)
	}
	return NewConversionChain(dicts...), nil
}

// Build creates the segmenter described by sc, resolving dictionary files
// against dir. A configuration without segmentation type yields a nil
// Segmenter.
func (sc SegmentationConfig) Build(dir string) (segment.Segmenter, error) {
	return sc.build(newFileLoader(dir))
}

// BuildFS creates the segmenter described by sc from bundled dictionaries.
func (sc SegmentationConfig) BuildFS(fsys fs.FS) (segment.Segmenter, error) {
	return sc.build(newFSLoader(fsys))
}

func (sc SegmentationConfig) build(loader dictLoader) (segment.Segmenter, error) {
	switch sc.Type {
	case "":
		return nil, nil
	case "mm", "mmseg":
		dict, err := sc.Dict.build(loader)
		if err != nil {
			return nil, fmt.Errorf("segmentation: %w", err)
		}
		return segment.NewMaxMatch(dict), nil
	}
	return nil, fmt.Errorf("%w: unsupported segmentation type %q", ErrInvalidConfig, sc.Type)
}

// Build loads the dictionary described by dc, resolving files against dir.
func (dc DictConfig) Build(dir string) (Dictionary, error) {
	return dc.build(newFileLoader(dir))
}

// BuildFS loads the dictionary described by dc from fsys.
func (dc DictConfig) BuildFS(fsys fs.FS) (Dictionary, error) {
	return dc.build(newFSLoader(fsys))
}

func (dc DictConfig) build(loader dictLoader) (Dictionary, error) {
	switch dc.Type {
	case "text", "ocd2":
		if dc.File == "" {
			return nil, fmt.Errorf("%w: 'file' not found for %q dict", ErrInvalidConfig, dc.Type)
		}
		return loader.load(dc.File)
	case "group":
		if dc.Dicts == nil {
			return nil, fmt.Errorf("%w: 'dicts' not found for 'group' dict", ErrInvalidConfig)
		}
		dicts := make([]Dictionary, 0, len(dc.Dicts))
		for _, sub := range dc.Dicts {
			dict, err := sub.build(loader)
			if err != nil {
				return nil, err
			}
			dicts = append(dicts, dict)
		}
		return NewDictGroup(dicts...), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDictType, dc.Type)
}

// --- Loaders ---------------------------------------------------------------

// dictLoader resolves dictionary file names. Loaders memoize, so a file
// referenced more than once in a configuration is loaded once and shared.
type dictLoader interface {
	load(file string) (Dictionary, error)
}

type fileLoader struct {
	dir   string
	cache map[string]Dictionary
}

func newFileLoader(dir string) *fileLoader {
	return &fileLoader{dir: dir, cache: make(map[string]Dictionary)}
}

func (l *fileLoader) load(file string) (Dictionary, error) {
	p := filepath.Join(l.dir, file)
	if dict, ok := l.cache[p]; ok {
		return dict, nil
	}
	if _, err := os.Stat(p); err != nil {
		// a missing source is fine as long as its compiled form exists
		if _, cerr := os.Stat(CompiledPath(p)); cerr != nil {
			return nil, fmt.Errorf("dictionary file %s: %w", p, ErrNotFound)
		}
	}
	dict, err := LoadTrieDict(p)
	if err != nil {
		return nil, err
	}
	l.cache[p] = dict
	return dict, nil
}

type fsLoader struct {
	fsys  fs.FS
	cache map[string]Dictionary
}

func newFSLoader(fsys fs.FS) *fsLoader {
	return &fsLoader{fsys: fsys, cache: make(map[string]Dictionary)}
}

// load prefers the precompiled form of file. Text sources are compiled in
// memory if no precompiled form is bundled.
func (l *fsLoader) load(file string) (Dictionary, error) {
	if dict, ok := l.cache[file]; ok {
		return dict, nil
	}
	compiled := strings.TrimSuffix(file, path.Ext(file)) + CompiledExt
	var dict *TrieDict
	blob, err := fs.ReadFile(l.fsys, compiled)
	switch {
	case err == nil:
		if dict, err = TrieDictFromBytes(blob); err != nil {
			return nil, fmt.Errorf("bundled dictionary %s: %w", compiled, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if dict, err = l.compileText(file); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	l.cache[file] = dict
	return dict, nil
}

func (l *fsLoader) compileText(file string) (*TrieDict, error) {
	f, err := l.fsys.Open(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("bundled dictionary %s: %w", file, ErrNotFound)
		}
		return nil, err
	}
	defer f.Close()
	blob, err := Compile(textdict.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("compile bundled %s: %w", file, err)
	}
	return TrieDictFromBytes(blob)
}
