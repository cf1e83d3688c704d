package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		name       string
		ref        string
		target     string
		pointer    string
		hasPointer bool
		external   bool
	}{
		{
			name:     "internal pointer",
			ref:      "#/components/schemas/Pet",
			pointer:  "/components/schemas/Pet",
			external: false, hasPointer: true,
		},
		{
			name:     "external with pointer",
			ref:      "./shared.yaml#/defs/Error",
			target:   "./shared.yaml",
			pointer:  "/defs/Error",
			external: true, hasPointer: true,
		},
		{
			name:     "external whole document",
			ref:      "common/parameters.yaml",
			target:   "common/parameters.yaml",
			external: true, hasPointer: false,
		},
		{
			name:     "external with empty fragment",
			ref:      "shared.yaml#",
			target:   "shared.yaml",
			external: true, hasPointer: true,
		},
		{
			name:     "absolute URL",
			ref:      "https://example.com/api.yaml#/info",
			target:   "https://example.com/api.yaml",
			pointer:  "/info",
			external: true, hasPointer: true,
		},
		{
			name: "empty string is internal",
			ref:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRef(tt.ref)
			assert.Equal(t, tt.target, got.Target)
			assert.Equal(t, tt.pointer, got.Pointer)
			assert.Equal(t, tt.hasPointer, got.HasPointer)
			assert.Equal(t, tt.external, got.IsExternal())
		})
	}
}
