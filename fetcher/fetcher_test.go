package fetcher

import (
	"errors"
	"testing"
)

func TestIsCommit(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4", true},
		{"A1B2C3D4E5F60718293A4B5C6D7E8F90A1B2C3D4", false}, // uppercase not accepted
		{"main", false},
		{"v1.2.3", false},
		{"a1b2c3", false}, // too short
		{"", false},
	}
	for _, tt := range tests {
		if got := IsCommit(tt.ref); got != tt.want {
			t.Errorf("IsCommit(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}

func TestIsTag(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"v1.2.3", true},
		{"1.2.3", false}, // no leading "v"
		{"v2", true},
		{"v1.2.3-rc1", true},
		{"v1beta", true},    // "v" + digit, rest is irrelevant per spec
		{"v1.2.3.4", true},  // "v" + digit, rest is irrelevant per spec
		{"vmain", false},    // "v" not followed by a digit
		{"v", false},        // no character after "v"
		{"main", false},
		{"a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4", false}, // commit, not tag
		{"", false},
	}
	for _, tt := range tests {
		if got := IsTag(tt.ref); got != tt.want {
			t.Errorf("IsTag(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}

func TestExtractRepoName(t *testing.T) {
	tests := []struct {
		repoURL string
		want    string
	}{
		{"https://example.com/org/widget.git", "widget"},
		{"https://example.com/org/widget", "widget"},
		{"https://example.com/org/widget.git/", "widget"},
		{"git@example.com:org/widget.git", "widget"},
		{"widget.git", "widget"},
	}
	for _, tt := range tests {
		if got := ExtractRepoName(tt.repoURL); got != tt.want {
			t.Errorf("ExtractRepoName(%q) = %q, want %q", tt.repoURL, got, tt.want)
		}
	}
}

func TestFetchErrorUnwrapAndMessage(t *testing.T) {
	inner := errors.New("connection reset")
	err := &FetchError{Kind: ErrNetwork, RepoURL: "https://example.com/widget.git", Ref: "main", Err: inner}

	if !errors.Is(err, inner) {
		t.Fatalf("expected errors.Is to unwrap to inner error")
	}
	want := "fetcher: network: fetch https://example.com/widget.git@main: connection reset"
	if got := err.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}

	noRef := &FetchError{Kind: ErrIO, RepoURL: "https://example.com/widget.git", Err: inner}
	wantNoRef := "fetcher: io: fetch https://example.com/widget.git: connection reset"
	if got := noRef.Error(); got != wantNoRef {
		t.Fatalf("Error() = %q, want %q", got, wantNoRef)
	}
}
