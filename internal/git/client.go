package git

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

var (
	// ErrNotRepository is returned when dir is not inside a git work tree
	ErrNotRepository = errors.New("not a git repository")
	// ErrTagExists is returned when the tag name is already taken
	ErrTagExists = errors.New("tag already exists")
)

// RealClient implements Client using go-git
type RealClient struct{}

// NewClient creates a new RealClient
func NewClient() *RealClient {
	return &RealClient{}
}

// open finds the repository containing dir, walking up to the .git directory
func (c *RealClient) open(dir string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, dir)
		}
		return nil, err
	}
	return repo, nil
}

// Head returns the commit hash HEAD points at
func (c *RealClient) Head(dir string) (string, error) {
	repo, err := c.open(dir)
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// TagExists reports whether refs/tags/<name> exists
func (c *RealClient) TagExists(dir, name string) (bool, error) {
	repo, err := c.open(dir)
	if err != nil {
		return false, err
	}
	_, err = repo.Tag(name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, git.ErrTagNotFound):
		return false, nil
	default:
		return false, err
	}
}

// CreateTag tags HEAD and returns the tagged commit hash
func (c *RealClient) CreateTag(dir, name string, opts TagOptions) (string, error) {
	repo, err := c.open(dir)
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}

	var tagOpts *git.CreateTagOptions
	if opts.Message != "" {
		tagOpts = &git.CreateTagOptions{
			Message: opts.Message,
			Tagger: &object.Signature{
				Name:  opts.TaggerName,
				Email: opts.TaggerEmail,
				When:  time.Now(),
			},
		}
	}

	if _, err := repo.CreateTag(name, head.Hash(), tagOpts); err != nil {
		if errors.Is(err, git.ErrTagExists) {
			return "", fmt.Errorf("%w: %s", ErrTagExists, name)
		}
		return "", err
	}
	return head.Hash().String(), nil
}

// TagRef returns the full reference name for a tag
func TagRef(name string) plumbing.ReferenceName {
	return plumbing.NewTagReferenceName(name)
}
