package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// hclFile represents the top-level structure of an HCL config for decoding.
type hclFile struct {
	Version          *string     `hcl:"version,optional"`
	GenerateComments *bool       `hcl:"generate_comments,optional"`
	Targets          []hclTarget `hcl:"target,block"`
}

type hclTarget struct {
	Package string   `hcl:"package,label"`
	Output  *string  `hcl:"output,optional"`
	Types   []string `hcl:"types,optional"`
}

// ParseHCL parses HCL data into a File. The filename is only used in
// diagnostics.
func ParseHCL(data []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()

	hclF, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config HCL %s: %w", filename, diags)
	}

	var raw hclFile

	diags = gohcl.DecodeBody(hclF.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config HCL %s: %w", filename, diags)
	}

	f := &File{GenerateComments: raw.GenerateComments}
	if raw.Version != nil {
		f.Version = *raw.Version
	}

	for _, t := range raw.Targets {
		target := Target{Package: t.Package, Types: t.Types}
		if t.Output != nil {
			target.Output = *t.Output
		}

		f.Targets = append(f.Targets, target)
	}

	applyDefaults(f)

	return f, nil
}
