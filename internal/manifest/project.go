package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/antchfx/xmlquery"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// carrierSuffixes are the Compile item names treated as annotation carriers.
var carrierSuffixes = []string{"AssemblyInfo.cs", "AssemblyInfo.vb"}

// parseXMLFile parses an XML document, dropping a UTF-8 byte order mark.
func parseXMLFile(path string) (*xmlquery.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := xmlquery.Parse(transform.NewReader(f, xunicode.UTF8BOM.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, path, err)
	}
	return doc, nil
}

// AnnotationCarriers returns the absolute paths of every AssemblyInfo file
// the project declares as a Compile item, in declaration order. Both
// namespaced (legacy) and SDK-style project files are accepted.
func AnnotationCarriers(projectPath string) ([]string, error) {
	doc, err := parseXMLFile(projectPath)
	if err != nil {
		return nil, err
	}

	projectDir := filepath.Dir(projectPath)
	var carriers []string
	for _, n := range xmlquery.Find(doc, "//*[local-name()='Compile']") {
		include, ok := attr(n, "Include")
		if !ok || !isCarrier(include) {
			continue
		}
		rel := filepath.FromSlash(strings.ReplaceAll(include, `\`, "/"))
		carriers = append(carriers, filepath.Join(projectDir, rel))
	}
	return carriers, nil
}

func isCarrier(include string) bool {
	for _, suffix := range carrierSuffixes {
		if strings.HasSuffix(include, suffix) {
			return true
		}
	}
	return false
}

// ReadAnnotations reads and merges the annotations of every carrier. The
// returned bool is false when the project declares no carriers.
func ReadAnnotations(projectPath string) (Annotations, bool, error) {
	carriers, err := AnnotationCarriers(projectPath)
	if err != nil {
		return nil, false, err
	}
	if len(carriers) == 0 {
		return nil, false, nil
	}

	merged := Annotations{}
	for _, path := range carriers {
		src, err := readSource(path)
		if err != nil {
			return nil, false, fmt.Errorf("read %s: %w", path, err)
		}
		merged.Merge(ParseAnnotations(src))
	}
	return merged, true, nil
}

// attr looks up an attribute by local name, ignoring any namespace prefix.
func attr(n *xmlquery.Node, name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}
