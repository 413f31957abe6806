package domain

import (
	"fmt"
	"strings"
)

// InformationSource selects where manifest metadata is resolved from.
type InformationSource int

const (
	// SourcePrimary reads compiled-code annotations declared by the project.
	SourcePrimary InformationSource = iota
	// SourceDescriptor reads an existing deployment descriptor.
	SourceDescriptor
	// SourceBoth resolves the primary source, then overlays the descriptor.
	SourceBoth
	// SourceNone performs no I/O and yields an empty manifest.
	SourceNone
)

func (s InformationSource) String() string {
	switch s {
	case SourcePrimary:
		return "assemblyinfo"
	case SourceDescriptor:
		return "appmanifest"
	case SourceBoth:
		return "both"
	case SourceNone:
		return "none"
	default:
		return fmt.Sprintf("InformationSource(%d)", int(s))
	}
}

// ParseInformationSource accepts the canonical names plus the aliases
// "primary" and "descriptor".
func ParseInformationSource(s string) (InformationSource, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "assemblyinfo", "primary":
		return SourcePrimary, nil
	case "appmanifest", "descriptor":
		return SourceDescriptor, nil
	case "both":
		return SourceBoth, nil
	case "none":
		return SourceNone, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSource, s)
	}
}

// NeedsProject reports whether the source reads the project file.
func (s InformationSource) NeedsProject() bool {
	return s == SourcePrimary || s == SourceBoth
}

// NeedsDescriptor reports whether the source reads the deployment descriptor.
func (s InformationSource) NeedsDescriptor() bool {
	return s == SourceDescriptor || s == SourceBoth
}
