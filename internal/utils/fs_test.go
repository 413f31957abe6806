package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "valid filename",
			input:    "test-file.md",
			expected: "test-file.md",
		},
		{
			name:     "invalid characters",
			input:    "test:file<>?*.md",
			expected: "test-file-.md",
		},
		{
			name:     "multiple spaces and dashes",
			input:    "test--file  name.md",
			expected: "test-file-name.md",
		},
		{
			name:     "leading and trailing dashes",
			input:    "-test-file-.md",
			expected: "test-file.md",
		},
		{
			name:     "multiple spaces and dashes",
			input:    "test--file  name.md",
			expected: "test-file-name.md",
		},
		{
			name:     "leading and trailing dashes",
			input:    "-test-file-.md",
			expected: "test-file.md",
		},
		{
			name:     "Windows reserved name CON",
			input:    "CON.md",
			expected: "_CON.md",
		},
		{
			name:     "Windows reserved name PRN",
			input:    "PRN.txt",
			expected: "_PRN.txt",
		},
		{
			name:     "very long filename",
			input:    strings.Repeat("a", 250) + ".md",
			expected: strings.Repeat("a", 200-3) + ".md",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "untitled",
		},
		{
			name:     "only invalid characters",
			input:    "<>:\"|?*",
			expected: "untitled",
		},
		{
			name:     "path separators",
			input:    "test/file/name.md",
			expected: "test-file-name.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeFilename(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestIsValidFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		expected bool
	}{
		{
			name:     "valid filename",
			filename: "test.md",
			expected: true,
		},
		{
			name:     "invalid characters",
			filename: "test:file.md",
			expected: false,
		},
		{
			name:     "empty string",
			filename: "",
			expected: false,
		},
		{
			name:     "dot",
			filename: ".",
			expected: false,
		},
		{
			name:     "double dot",
			filename: "..",
			expected: false,
		},
		{
			name:     "Windows reserved name",
			filename: "CON",
			expected: false,
		},
		{
			name:     "control character",
			filename: "test\x00file.md",
			expected: false,
		},
		{
			name:     "valid with spaces",
			filename: "test file.md",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidFilename(tt.filename)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	t.Run("creates directory", func(t *testing.T) {
		tempDir := t.TempDir()
		testPath := filepath.Join(tempDir, "subdir", "file.txt")

		err := EnsureDir(testPath)
		require.NoError(t, err)

		// Check that the directory was created
		info, err := os.Stat(filepath.Dir(testPath))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("existing directory", func(t *testing.T) {
		tempDir := t.TempDir()
		testPath := filepath.Join(tempDir, "file.txt")

		err := EnsureDir(testPath)
		require.NoError(t, err)

		// Should not error if directory already exists
		err = EnsureDir(testPath)
		require.NoError(t, err)
	})
}

func TestExpandPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "home directory with slash",
			input:    "~/test",
			expected: filepath.Join(os.Getenv("HOME"), "test"),
		},
		{
			name:     "home directory only",
			input:    "~",
			expected: os.Getenv("HOME"),
		},
		{
			name:     "regular path",
			input:    "/tmp/test",
			expected: "/tmp/test",
		},
		{
			name:     "relative path",
			input:    "./test",
			expected: "./test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExpandPath(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "setup.exe")
	require.NoError(t, os.WriteFile(src, []byte("binary"), 0755))

	dst := filepath.Join(dir, "out", "nested", "setup.exe")
	require.NoError(t, CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "binary", string(data))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	assert.Error(t, CopyFile(filepath.Join(dir, "missing"), dst))
}

func TestCopyDir(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "Application Files", "App_1_0_0_0"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "App.application"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "Application Files", "App_1_0_0_0", "App.exe.deploy"), []byte("b"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(src, "empty"), 0755))

	dst := filepath.Join(t.TempDir(), "deploy")
	n, err := CopyDir(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.FileExists(t, filepath.Join(dst, "App.application"))
	assert.FileExists(t, filepath.Join(dst, "Application Files", "App_1_0_0_0", "App.exe.deploy"))
	assert.DirExists(t, filepath.Join(dst, "empty"))
}

func TestCopyDir_Errors(t *testing.T) {
	_, err := CopyDir(filepath.Join(t.TempDir(), "missing"), t.TempDir())
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	_, err = CopyDir(file, t.TempDir())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not a directory"))
}
