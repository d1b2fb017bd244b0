// Package gitclone shells out to the git binary to fetch public
// repositories into the workspace.
package gitclone

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var (
	// ErrNotFound means the remote repository does not exist.
	ErrNotFound = errors.New("repository not found")
	// ErrAuthFailed means the remote requires credentials we do not have.
	ErrAuthFailed = errors.New("authentication failed")
)

// CloneError wraps a git failure that is neither a missing repository nor
// an authentication problem, keeping git's own stderr message.
type CloneError struct {
	URL    string
	Stderr string
	Err    error
}

func (e *CloneError) Error() string {
	return fmt.Sprintf("git clone %s: %v: %s", e.URL, e.Err, e.Stderr)
}

func (e *CloneError) Unwrap() error { return e.Err }

// RepoName derives a directory name from a repository URL: the last path
// segment with any .git suffix removed.
func RepoName(url string) string {
	trimmed := strings.TrimSuffix(strings.TrimRight(url, "/"), ".git")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	return trimmed
}

// Clone runs a shallow clone of url into dest. Failures are classified
// from git's stderr into ErrNotFound, ErrAuthFailed, or a CloneError.
func Clone(ctx context.Context, url, dest string) error {
	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", url, dest)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	// No terminal prompts: a private repo should fail, not hang.
	cmd.Env = append(cmd.Environ(), "GIT_TERMINAL_PROMPT=0")

	if err := cmd.Run(); err != nil {
		return classify(url, stderr.String(), err)
	}
	return nil
}

func classify(url, stderr string, err error) error {
	lower := strings.ToLower(stderr)
	switch {
	case strings.Contains(lower, "not found") || strings.Contains(lower, "does not exist"):
		return fmt.Errorf("%w: %s", ErrNotFound, url)
	case strings.Contains(lower, "authentication") || strings.Contains(lower, "could not read username") || strings.Contains(lower, "permission denied"):
		return fmt.Errorf("%w: %s", ErrAuthFailed, url)
	}
	return &CloneError{URL: url, Stderr: strings.TrimSpace(stderr), Err: err}
}
