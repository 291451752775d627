package schema

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// rawSchema is the file form of a schema. The same tags serve YAML and TOML.
type rawSchema struct {
	Types []rawType `yaml:"types" toml:"types"`
}

type rawType struct {
	Name         string     `yaml:"name" toml:"name"`
	Category     string     `yaml:"category" toml:"category"`
	Children     string     `yaml:"children" toml:"children"`
	Intermediate string     `yaml:"intermediate" toml:"intermediate"`
	Facets       []rawFacet `yaml:"facets" toml:"facets"`
}

type rawFacet struct {
	Name         string   `yaml:"name" toml:"name"`
	Kind         string   `yaml:"kind" toml:"kind"`
	Optional     bool     `yaml:"optional" toml:"optional"`
	Options      []string `yaml:"options" toml:"options"`
	NodeCategory string   `yaml:"node_category" toml:"node_category"`
}

// LoadFile loads a schema file, choosing the decoder by extension
// (.yaml/.yml or .toml).
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return parseTOML(path, data)
	case ".yaml", ".yml":
		return parseYAML(path, data)
	default:
		return nil, fmt.Errorf("schema file %s: unsupported extension", path)
	}
}

// LoadYAML reads a YAML schema.
func LoadYAML(r io.Reader) (*Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}
	return parseYAML("<reader>", data)
}

// LoadTOML reads a TOML schema.
func LoadTOML(r io.Reader) (*Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}
	return parseTOML("<reader>", data)
}

func parseYAML(source string, data []byte) (*Registry, error) {
	var raw rawSchema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && err != io.EOF {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return build(source, raw)
}

func parseTOML(source string, data []byte) (*Registry, error) {
	var raw rawSchema
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return build(source, raw)
}

func build(source string, raw rawSchema) (*Registry, error) {
	reg := &Registry{types: make(map[string]*NodeType, len(raw.Types))}
	for i, rt := range raw.Types {
		t, err := rt.toNodeType()
		if err != nil {
			return nil, &ParseError{
				Path:    source,
				Message: fmt.Sprintf("type #%d (%s): %v", i, rt.Name, err),
				Err:     err,
			}
		}
		if err := reg.Register(t); err != nil {
			return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
		}
	}
	return reg, nil
}

func (rt rawType) toNodeType() (*NodeType, error) {
	cat, err := ParseCategory(rt.Category)
	if err != nil {
		return nil, err
	}
	kind, err := ParseChildrenKind(rt.Children)
	if err != nil {
		return nil, err
	}
	t := &NodeType{
		Name:         rt.Name,
		Category:     cat,
		Children:     kind,
		Intermediate: rt.Intermediate,
	}
	for _, rf := range rt.Facets {
		fk, err := ParseFacetKind(rf.Kind)
		if err != nil {
			return nil, err
		}
		spec := FacetSpec{
			Name:     rf.Name,
			Kind:     fk,
			Optional: rf.Optional,
			Options:  rf.Options,
		}
		if rf.NodeCategory != "" {
			nc, err := ParseCategory(rf.NodeCategory)
			if err != nil {
				return nil, err
			}
			spec.NodeCategory = &nc
		}
		t.Facets = append(t.Facets, spec)
	}
	return t, nil
}
