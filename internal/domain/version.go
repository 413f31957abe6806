package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a numeric version of the form major.minor[.build[.revision]].
// Build and Revision are -1 when the parsed string did not carry them, so
// that "4.5" and "4.5.0" stay distinguishable and print back unchanged.
type Version struct {
	Major    int
	Minor    int
	Build    int
	Revision int
}

// DefaultFrameworkVersion is applied by consumers when no framework version
// could be resolved from any source.
var DefaultFrameworkVersion = Version{Major: 4, Minor: 5, Build: -1, Revision: -1}

// NewVersion builds a version from its components. Omitted build and
// revision components are recorded as absent.
func NewVersion(major, minor int, rest ...int) Version {
	v := Version{Major: major, Minor: minor, Build: -1, Revision: -1}
	if len(rest) > 0 {
		v.Build = rest[0]
	}
	if len(rest) > 1 {
		v.Revision = rest[1]
	}
	return v
}

// ParseVersion parses a dotted numeric version with two to four components.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 4 {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	comps := [4]int{-1, -1, -1, -1}
	for i, p := range parts {
		if p == "" || strings.TrimLeft(p, "0123456789") != "" {
			return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, s, err)
		}
		comps[i] = n
	}

	return Version{Major: comps[0], Minor: comps[1], Build: comps[2], Revision: comps[3]}, nil
}

// MustParseVersion is like ParseVersion but panics on malformed input.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the dotted form, omitting absent trailing components.
func (v Version) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d", v.Major, v.Minor)
	if v.Build >= 0 {
		fmt.Fprintf(&b, ".%d", v.Build)
		if v.Revision >= 0 {
			fmt.Fprintf(&b, ".%d", v.Revision)
		}
	}
	return b.String()
}

// Compare returns -1, 0 or 1. An absent component orders before zero.
func (v Version) Compare(o Version) int {
	a := [4]int{v.Major, v.Minor, v.Build, v.Revision}
	b := [4]int{o.Major, o.Minor, o.Build, o.Revision}
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// Less reports whether v orders before o.
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

// MarshalText encodes the version as a dotted string for JSON and YAML.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes a dotted version string.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
