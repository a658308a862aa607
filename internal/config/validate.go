package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"builder-generator/internal/diagnostic"
)

// Validate checks a configuration file for structural problems. Whether the
// listed types exist is only known after loading packages.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError(diagnostic.CodeMissingPackage, "config file is nil", "", "")
		return res
	}

	if f.Version != DefaultVersion {
		res.AddError(diagnostic.CodeUnsupportedVersion,
			fmt.Sprintf("unsupported config version %q, want %q", f.Version, DefaultVersion), "", "")
	}

	if len(f.Targets) == 0 {
		res.AddError(diagnostic.CodeMissingPackage, "no targets configured", "", "")
	}

	seenPackages := map[string]struct{}{}

	for i := range f.Targets {
		t := &f.Targets[i]

		if t.Package == "" {
			res.AddError(diagnostic.CodeMissingPackage, fmt.Sprintf("target #%d has no package", i+1), "", "")
			continue
		}

		if _, ok := seenPackages[t.Package]; ok {
			res.AddError(diagnostic.CodeDuplicatePackage, "package listed more than once", t.Package, "")
			continue
		}

		seenPackages[t.Package] = struct{}{}

		if err := ValidateOutput(t.Output); err != nil {
			res.AddError(diagnostic.CodeInvalidOutput, err.Error(), t.Package, "")
		}

		if t.Types.IsEmpty() {
			res.AddInfo(diagnostic.CodeMarkerDiscovery,
				"no types listed, types marked //builder:derive will be used", t.Package, "")
		}

		seenTypes := map[string]struct{}{}

		for _, name := range t.Types {
			if _, ok := seenTypes[name]; ok {
				res.AddError(diagnostic.CodeDuplicateType, "type listed more than once", t.Package, name)
				continue
			}

			seenTypes[name] = struct{}{}
		}
	}

	return res
}

// ValidateOutput checks that name is a plain, non-test Go file name.
func ValidateOutput(name string) error {
	switch {
	case name == "":
		return errors.New("output file name is empty")
	case filepath.Base(name) != name:
		return fmt.Errorf("output %q must be a file name, not a path", name)
	case !strings.HasSuffix(name, ".go"):
		return fmt.Errorf("output %q must end in .go", name)
	case strings.HasSuffix(name, "_test.go"):
		return fmt.Errorf("output %q must not be a test file", name)
	}

	return nil
}
