package config

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"builder-generator/internal/common"
)

// Defaults applied to optional settings.
const (
	DefaultVersion = "1"
	DefaultOutput  = "builder_gen.go"
)

// File is the root of a configuration file.
type File struct {
	// Version of the schema; only "1" is supported.
	Version string `yaml:"version"`
	// GenerateComments enables doc comments in generated code. Nil means true.
	GenerateComments *bool `yaml:"generate_comments,omitempty"`
	// Targets lists the packages to generate builders for.
	Targets []Target `yaml:"targets"`
}

// Comments reports whether generated code carries doc comments.
func (f *File) Comments() bool {
	return f.GenerateComments == nil || *f.GenerateComments
}

// Target selects types of one package.
type Target struct {
	// Package is a Go package pattern, e.g. "./examples/basic".
	Package string `yaml:"package"`
	// Output is the file name written into the package directory.
	Output string `yaml:"output,omitempty"`
	// Types lists record type names in the order builders are emitted.
	// Empty means marker discovery.
	Types StringOrArray `yaml:"types,omitempty"`
}

// StringOrArray accepts either a single string or a list of strings.
type StringOrArray []string

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
// Accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		// Single string value
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		// Array of strings
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}

// MarshalYAML implements custom YAML marshaling for StringOrArray.
// Outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// First returns the first element or empty string if empty.
func (s StringOrArray) First() string {
	if v, ok := common.First(s); ok {
		return v
	}

	return ""
}

// IsEmpty returns true if the array is empty.
func (s StringOrArray) IsEmpty() bool {
	return common.IsEmpty(s)
}

// Contains returns true if the array contains the given string.
func (s StringOrArray) Contains(str string) bool {
	return slices.Contains(s, str)
}
