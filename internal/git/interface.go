package git

// Client defines the interface for Git operations
type Client interface {
	// Head returns the commit hash HEAD points at
	Head(dir string) (string, error)
	// CreateTag tags HEAD. An empty message creates a lightweight tag.
	CreateTag(dir, name string, opts TagOptions) (string, error)
	// TagExists reports whether the tag is already present
	TagExists(dir, name string) (bool, error)
}

// TagOptions configures an annotated tag
type TagOptions struct {
	Message     string
	TaggerName  string
	TaggerEmail string
}
