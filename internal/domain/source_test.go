package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInformationSource(t *testing.T) {
	tests := []struct {
		input    string
		expected InformationSource
	}{
		{"assemblyinfo", SourcePrimary},
		{"Primary", SourcePrimary},
		{"appmanifest", SourceDescriptor},
		{"descriptor", SourceDescriptor},
		{"BOTH", SourceBoth},
		{"none", SourceNone},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s, err := ParseInformationSource(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s)
		})
	}

	_, err := ParseInformationSource("registry")
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestInformationSource_Needs(t *testing.T) {
	assert.True(t, SourcePrimary.NeedsProject())
	assert.False(t, SourcePrimary.NeedsDescriptor())
	assert.True(t, SourceDescriptor.NeedsDescriptor())
	assert.True(t, SourceBoth.NeedsProject())
	assert.True(t, SourceBoth.NeedsDescriptor())
	assert.False(t, SourceNone.NeedsProject())
	assert.False(t, SourceNone.NeedsDescriptor())
}

func TestNormalizePlatform(t *testing.T) {
	assert.Equal(t, "AnyCPU", NormalizePlatform(""))
	assert.Equal(t, "AnyCPU", NormalizePlatform("Automatic"))
	assert.Equal(t, "x64", NormalizePlatform("x64"))
}
