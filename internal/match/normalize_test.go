package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"OrderItem", "orderitem"},
		{"order_item", "orderitem"},
		{"Order-Item", "orderitem"},
		{"orderItem", "orderitem"},
		{"XMLParser", "xmlparser"},
		{"basic.Point", "basicpoint"},
		{"Größe", "größe"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Fold(tt.input))
		})
	}
}

func TestTrimCompanion(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"pointbuilder", "point"},
		{"pointbuilderror", "point"},
		{"point", "point"},
		{"builder", "builder"},
		{"builderror", "builderror"},
		// Only one suffix is removed.
		{"pointbuilderbuilder", "pointbuilder"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, TrimCompanion(tt.input))
		})
	}
}
