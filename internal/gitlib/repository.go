// Package gitlib wraps the libgit2 bindings used for repository discovery
// and ref validation. Commit enumeration runs through the git binary
// (internal/gitexec) because date parsing is delegated to it; libgit2
// answers the structural questions that must fail fast before a run.
package gitlib

import (
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// Repository wraps a libgit2 repository.
type Repository struct {
	repo *git2go.Repository
	path string
}

// OpenRepository opens the git repository containing the given path,
// searching upward the way git itself does.
func OpenRepository(path string) (*Repository, error) {
	repo, err := git2go.OpenRepositoryExtended(path, 0, "")
	if err != nil {
		return nil, fmt.Errorf("open repository at %s: %w", path, err)
	}

	return &Repository{repo: repo, path: path}, nil
}

// Path returns the path the repository was opened with.
func (r *Repository) Path() string {
	return r.path
}

// Free releases the repository resources.
func (r *Repository) Free() {
	if r.repo != nil {
		r.repo.Free()
		r.repo = nil
	}
}

// ResolveRef resolves a branch or ref name to a commit id the way git
// rev-parse does, falling back to refs/heads/ and refs/remotes/ for
// shorthand names. Returns the hex object id.
func (r *Repository) ResolveRef(name string) (string, error) {
	obj, err := r.repo.RevparseSingle(name)
	if err == nil {
		defer obj.Free()

		return obj.Id().String(), nil
	}

	for _, prefix := range []string{"refs/heads/", "refs/remotes/"} {
		ref, lookupErr := r.repo.References.Lookup(prefix + name)
		if lookupErr != nil {
			continue
		}

		resolved, resolveErr := ref.Resolve()
		ref.Free()

		if resolveErr != nil {
			continue
		}

		id := resolved.Target().String()
		resolved.Free()

		return id, nil
	}

	return "", fmt.Errorf("resolve ref %q: %w", name, err)
}
