// Package gitfetcher implements fetcher.Fetcher backed by go-git, cloning
// a plugin's declared source repository to a local destination.
package gitfetcher

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/GoCodeAlone/pluginhub/fetcher"
)

// Fetcher clones plugin source repositories with go-git.
type Fetcher struct {
	// AuthToken, when set, is sent as the HTTP basic-auth password for
	// authenticated clones (username is ignored by most git hosts when a
	// token is used in its place).
	AuthToken string
}

// New returns a Fetcher with no authentication configured.
func New() *Fetcher {
	return &Fetcher{}
}

var _ fetcher.Fetcher = (*Fetcher)(nil)

// Fetch clones repoURL into dest, checked out to ref. A 40-hex-character
// ref is treated as a commit: the default branch is cloned first, then the
// worktree is reset to that commit. Anything else is treated as a
// branch or tag reference name passed directly to go-git.
func (f *Fetcher) Fetch(ctx context.Context, repoURL, ref, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		return &fetcher.FetchError{Kind: fetcher.ErrDestinationExists, RepoURL: repoURL, Ref: ref, Err: fmt.Errorf("%s already exists", dest)}
	}

	opts := &git.CloneOptions{
		URL: repoURL,
	}
	if f.AuthToken != "" {
		opts.Auth = &githttp.BasicAuth{Username: "token", Password: f.AuthToken}
	}

	commit := fetcher.IsCommit(ref)
	if ref != "" && !commit {
		opts.ReferenceName = plumbing.NewBranchReferenceName(ref)
		if fetcher.IsTag(ref) {
			opts.ReferenceName = plumbing.NewTagReferenceName(ref)
		}
		opts.SingleBranch = true
	}

	repo, err := git.PlainCloneContext(ctx, dest, false, opts)
	if err != nil {
		return classifyCloneError(err, repoURL, ref)
	}

	if commit {
		wt, err := repo.Worktree()
		if err != nil {
			return &fetcher.FetchError{Kind: fetcher.ErrIO, RepoURL: repoURL, Ref: ref, Err: err}
		}
		if err := wt.Checkout(&git.CheckoutOptions{Hash: plumbing.NewHash(ref)}); err != nil {
			return &fetcher.FetchError{Kind: fetcher.ErrNoSuchReference, RepoURL: repoURL, Ref: ref, Err: err}
		}
	}

	return nil
}

func classifyCloneError(err error, repoURL, ref string) error {
	switch {
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		return &fetcher.FetchError{Kind: fetcher.ErrNoSuchReference, RepoURL: repoURL, Ref: ref, Err: err}
	case errors.Is(err, transport.ErrAuthenticationRequired), errors.Is(err, transport.ErrAuthorizationFailed):
		return &fetcher.FetchError{Kind: fetcher.ErrAuthentication, RepoURL: repoURL, Ref: ref, Err: err}
	case errors.Is(err, transport.ErrRepositoryNotFound):
		return &fetcher.FetchError{Kind: fetcher.ErrNoSuchReference, RepoURL: repoURL, Ref: ref, Err: err}
	case errors.Is(err, git.ErrRepositoryAlreadyExists):
		return &fetcher.FetchError{Kind: fetcher.ErrDestinationExists, RepoURL: repoURL, Ref: ref, Err: err}
	default:
		return &fetcher.FetchError{Kind: fetcher.ErrNetwork, RepoURL: repoURL, Ref: ref, Err: err}
	}
}
