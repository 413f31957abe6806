package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnnotations_CSharp(t *testing.T) {
	ann := ParseAnnotations(projectAssemblyInfo)

	assert.Equal(t, "Acme Desktop", ann["AssemblyTitle"])
	assert.Equal(t, "Line of business app", ann["AssemblyDescription"])
	assert.Equal(t, "Acme Suite", ann["AssemblyProduct"])
	assert.Equal(t, "1.4.0.0", ann["AssemblyVersion"])
	assert.Equal(t, "1.4.0.7", ann["AssemblyFileVersion"])
	assert.Equal(t, "false", ann["ComVisible"])
}

func TestParseAnnotations_Variants(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		key      string
		expected string
	}{
		{
			name:     "qualified name with suffix",
			src:      `[assembly: System.Reflection.AssemblyTitleAttribute("Qualified")]`,
			key:      "AssemblyTitle",
			expected: "Qualified",
		},
		{
			name:     "multiple attributes in one section",
			src:      `[assembly: AssemblyTitle("A"), AssemblyCompany("B")]`,
			key:      "AssemblyCompany",
			expected: "B",
		},
		{
			name:     "escaped quote",
			src:      `[assembly: AssemblyDescription("say \"hi\"")]`,
			key:      "AssemblyDescription",
			expected: `say "hi"`,
		},
		{
			name:     "verbatim string",
			src:      `[assembly: AssemblyDescription(@"C:\path ""quoted""")]`,
			key:      "AssemblyDescription",
			expected: `C:\path "quoted"`,
		},
		{
			name:     "visual basic",
			src:      "<Assembly: AssemblyTitle(\"Vb \"\"App\"\"\")>\n<Assembly: AssemblyVersion(\"3.0.0.0\")>",
			key:      "AssemblyTitle",
			expected: `Vb "App"`,
		},
		{
			name:     "block comment ignored",
			src:      "/* [assembly: AssemblyTitle(\"Old\")] */\n[assembly: AssemblyTitle(\"New\")]",
			key:      "AssemblyTitle",
			expected: "New",
		},
		{
			name:     "extra whitespace",
			src:      "[ assembly :  AssemblyTitle ( \"Spaced\" ) ]",
			key:      "AssemblyTitle",
			expected: "Spaced",
		},
		{
			name:     "string containing bracket",
			src:      `var s = "[assembly: AssemblyTitle(\"Fake\")]"; [assembly: AssemblyTitle("Real")]`,
			key:      "AssemblyTitle",
			expected: "Real",
		},
		{
			name:     "unicode escape",
			src:      `[assembly: AssemblyCopyright("Copyright \u00A9 Acme")]`,
			key:      "AssemblyCopyright",
			expected: "Copyright © Acme",
		},
		{
			name:     "hex escape stops at non-hex",
			src:      `[assembly: AssemblyTitle("\x41pp!")]`,
			key:      "AssemblyTitle",
			expected: "App!",
		},
		{
			name:     "hex escape takes up to four digits",
			src:      `[assembly: AssemblyTitle("\x00A9x")]`,
			key:      "AssemblyTitle",
			expected: "©x",
		},
		{
			name:     "long unicode escape",
			src:      `[assembly: AssemblyDescription("smile \U0001F600")]`,
			key:      "AssemblyDescription",
			expected: "smile 😀",
		},
		{
			name:     "surrogate pair",
			src:      `[assembly: AssemblyDescription("\uD83D\uDE00")]`,
			key:      "AssemblyDescription",
			expected: "😀",
		},
		{
			name:     "simple escapes",
			src:      `[assembly: AssemblyDescription("a\ab\bf\fv\v\\\'")]`,
			key:      "AssemblyDescription",
			expected: "a\ab\bf\fv\v\\'",
		},
		{
			name:     "escaped multibyte character stays valid",
			src:      `[assembly: AssemblyTitle("caf\é")]`,
			key:      "AssemblyTitle",
			expected: "café",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ann := ParseAnnotations(tt.src)
			assert.Equal(t, tt.expected, ann[tt.key])
		})
	}
}

func TestParseAnnotations_IgnoresNonAssemblyTargets(t *testing.T) {
	src := `[module: AssemblyTitle("Module")]
[Serializable]
public class Foo { int[] values = new int[3]; }`

	ann := ParseAnnotations(src)

	assert.Empty(t, ann)
}

func TestAnnotations_Merge_FirstNonEmptyWins(t *testing.T) {
	a := Annotations{"AssemblyTitle": "First", "AssemblyCompany": ""}
	a.Merge(Annotations{"AssemblyTitle": "Second", "AssemblyCompany": "Acme", "AssemblyProduct": "Suite"})

	assert.Equal(t, "First", a["AssemblyTitle"])
	assert.Equal(t, "Acme", a["AssemblyCompany"])
	assert.Equal(t, "Suite", a["AssemblyProduct"])
}

func TestReadSource_UTF16BOM(t *testing.T) {
	src := `[assembly: AssemblyTitle("Wide")]`
	encoded := []byte{0xFF, 0xFE}
	for _, r := range src {
		encoded = append(encoded, byte(r), 0)
	}

	path := filepath.Join(t.TempDir(), "AssemblyInfo.cs")
	require.NoError(t, os.WriteFile(path, encoded, 0644))

	text, err := readSource(path)

	require.NoError(t, err)
	assert.Equal(t, "Wide", ParseAnnotations(text)["AssemblyTitle"])
}

func TestAnnotationCarriers(t *testing.T) {
	root := t.TempDir()
	project := writeProject(t, root)

	carriers, err := AnnotationCarriers(project)

	require.NoError(t, err)
	require.Len(t, carriers, 2)
	assert.Equal(t, filepath.Join(root, "Shared", "GlobalAssemblyInfo.cs"), carriers[0])
	assert.Equal(t, filepath.Join(root, "App", "Properties", "AssemblyInfo.cs"), carriers[1])
}

func TestAnnotationCarriers_SDKStyle(t *testing.T) {
	root := t.TempDir()
	project := writeFile(t, filepath.Join(root, "App.csproj"), `<Project Sdk="Microsoft.NET.Sdk">
  <ItemGroup><Compile Include="Properties/AssemblyInfo.cs" /></ItemGroup>
</Project>`)

	carriers, err := AnnotationCarriers(project)

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "Properties", "AssemblyInfo.cs")}, carriers)
}

func TestAnnotationCarriers_InvalidXML(t *testing.T) {
	project := writeFile(t, filepath.Join(t.TempDir(), "App.csproj"), "<Project Sdk=>")

	_, err := AnnotationCarriers(project)

	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestReadAnnotations_Merged(t *testing.T) {
	project := writeProject(t, t.TempDir())

	ann, ok, err := ReadAnnotations(project)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Acme Corp", ann["AssemblyCompany"])
	assert.Equal(t, "Acme Desktop", ann["AssemblyTitle"])
}

func TestReadAnnotations_NoCarriers(t *testing.T) {
	project := writeFile(t, filepath.Join(t.TempDir(), "App.csproj"), `<Project Sdk="Microsoft.NET.Sdk" />`)

	ann, ok, err := ReadAnnotations(project)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, ann)
}

func TestReadAnnotations_MissingCarrierFile(t *testing.T) {
	root := t.TempDir()
	project := writeFile(t, filepath.Join(root, "App.csproj"), legacyProject)

	_, _, err := ReadAnnotations(project)

	assert.Error(t, err)
}
