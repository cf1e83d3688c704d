package stitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want SourceFormat
	}{
		{"api.yaml", SourceFormatYAML},
		{"api.yml", SourceFormatYAML},
		{"api.json", SourceFormatJSON},
		{"https://example.com/specs/api.json", SourceFormatJSON},
		{"api.txt", SourceFormatUnknown},
		{"api", SourceFormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, detectFormatFromPath(tt.path))
		})
	}
}

func TestDetectFormatFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    SourceFormat
	}{
		{"json object", `{"a": 1}`, SourceFormatJSON},
		{"json array", `[1, 2]`, SourceFormatJSON},
		{"json with leading whitespace", "\n\t {\"a\": 1}", SourceFormatJSON},
		{"yaml mapping", "a: 1\n", SourceFormatYAML},
		{"yaml document marker", "---\na: 1\n", SourceFormatYAML},
		{"empty", "", SourceFormatUnknown},
		{"whitespace only", "  \n", SourceFormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectFormatFromContent([]byte(tt.content)))
		})
	}
}
