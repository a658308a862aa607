package match

import (
	"strings"
)

// companionSuffixes are the folded suffixes of generated identifiers, longest
// first so that "builderror" is not cut down to "builderr".
var companionSuffixes = []string{"builderror", "builder"}

// Fold reduces an identifier to the form names are compared in: lower case,
// without the separators people insert when they misremember a name.
// "order_item", "Order-Item" and "OrderItem" all fold to "orderitem".
func Fold(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ', '.':
			return -1
		}

		return r
	}, strings.ToLower(name))
}

// TrimCompanion removes a builder or build-error suffix from a folded name,
// so that asking for "PointBuilder" finds the record Point. A name that is
// nothing but the suffix is returned unchanged.
func TrimCompanion(folded string) string {
	for _, suffix := range companionSuffixes {
		if trimmed, ok := strings.CutSuffix(folded, suffix); ok && trimmed != "" {
			return trimmed
		}
	}

	return folded
}
