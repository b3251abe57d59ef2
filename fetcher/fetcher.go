// Package fetcher defines the contract for retrieving a plugin's source
// from its declared location. The contract is deliberately minimal: how a
// Fetcher reaches the source (git, a tarball host, a local mirror) lives
// outside this package.
package fetcher

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Fetcher retrieves the source tree referenced by a DependencySpec-style
// git URL and ref, placing it at dest.
type Fetcher interface {
	// Fetch clones or copies the source at repoURL, checked out to ref (a
	// branch name, tag name, or full commit hash; empty means the
	// remote's default branch), into dest. dest must not already exist.
	Fetch(ctx context.Context, repoURL, ref, dest string) error
}

// ErrorKind classifies a FetchError.
type ErrorKind string

const (
	ErrNetwork           ErrorKind = "network"
	ErrAuthentication    ErrorKind = "authentication"
	ErrNoSuchReference   ErrorKind = "no_such_reference"
	ErrDestinationExists ErrorKind = "destination_exists"
	ErrIO                ErrorKind = "io"
)

// FetchError reports why a Fetch call failed.
type FetchError struct {
	Kind    ErrorKind
	RepoURL string
	Ref     string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("fetcher: %s: fetch %s@%s: %v", e.Kind, e.RepoURL, e.Ref, e.Err)
	}
	return fmt.Sprintf("fetcher: %s: fetch %s: %v", e.Kind, e.RepoURL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

var commitRe = regexp.MustCompile(`^[0-9a-f]{40}$`)

// IsCommit reports whether ref is a full, lowercase 40-character hex commit
// identifier.
func IsCommit(ref string) bool {
	return commitRe.MatchString(ref)
}

// IsTag reports whether ref starts with "v" followed by an ASCII digit.
func IsTag(ref string) bool {
	if len(ref) < 2 {
		return false
	}
	return ref[0] == 'v' && ref[1] >= '0' && ref[1] <= '9'
}

// ExtractRepoName derives a short, filesystem-friendly name from a git
// repository URL, stripping a trailing ".git" suffix and any path prefix.
func ExtractRepoName(repoURL string) string {
	trimmed := strings.TrimSuffix(strings.TrimRight(repoURL, "/"), ".git")
	if idx := strings.LastIndexAny(trimmed, "/:"); idx != -1 {
		trimmed = trimmed[idx+1:]
	}
	return trimmed
}
