package domain

// AppManifest is the canonical description of one application's identity
// and versioning. Empty strings and nil versions mean "not resolved".
type AppManifest struct {
	ApplicationName  string   `json:"application_name,omitempty" yaml:"application_name,omitempty"`
	PublisherName    string   `json:"publisher_name,omitempty" yaml:"publisher_name,omitempty"`
	SuiteName        string   `json:"suite_name,omitempty" yaml:"suite_name,omitempty"`
	ShortName        string   `json:"short_name,omitempty" yaml:"short_name,omitempty"`
	Description      string   `json:"description,omitempty" yaml:"description,omitempty"`
	Copyright        string   `json:"copyright,omitempty" yaml:"copyright,omitempty"`
	AppVersion       *Version `json:"app_version,omitempty" yaml:"app_version,omitempty"`
	FrameworkVersion *Version `json:"framework_version,omitempty" yaml:"framework_version,omitempty"`
}

// Clone returns a deep copy of the manifest.
func (m AppManifest) Clone() AppManifest {
	out := m
	if m.AppVersion != nil {
		v := *m.AppVersion
		out.AppVersion = &v
	}
	if m.FrameworkVersion != nil {
		v := *m.FrameworkVersion
		out.FrameworkVersion = &v
	}
	return out
}

// WithFrameworkDefault returns a copy whose FrameworkVersion falls back to
// DefaultFrameworkVersion when unresolved.
func (m AppManifest) WithFrameworkDefault() AppManifest {
	out := m.Clone()
	if out.FrameworkVersion == nil {
		v := DefaultFrameworkVersion
		out.FrameworkVersion = &v
	}
	return out
}

// IsEmpty reports whether no field has been resolved.
func (m AppManifest) IsEmpty() bool {
	return m == AppManifest{}
}
