package gitclone

import (
	"errors"
	"testing"
)

func TestRepoName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		url  string
		want string
	}{
		{"https://github.com/fastapi/fastapi", "fastapi"},
		{"https://github.com/fastapi/fastapi/", "fastapi"},
		{"https://github.com/user/repo.git", "repo"},
		{"https://github.com/user/repo.git/", "repo"},
		{"repo", "repo"},
	}
	for _, tc := range cases {
		if got := RepoName(tc.url); got != tc.want {
			t.Fatalf("RepoName(%q)=%q want %q", tc.url, got, tc.want)
		}
	}
}

func TestClassifyNotFound(t *testing.T) {
	t.Parallel()

	err := classify("https://github.com/u/r", "fatal: repository 'https://github.com/u/r/' not found", errors.New("exit status 128"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v", err)
	}
}

func TestClassifyAuthFailed(t *testing.T) {
	t.Parallel()

	for _, stderr := range []string{
		"fatal: Authentication failed for 'https://github.com/u/r/'",
		"fatal: could not read Username for 'https://github.com': terminal prompts disabled",
		"Permission denied (publickey).",
	} {
		err := classify("https://github.com/u/r", stderr, errors.New("exit status 128"))
		if !errors.Is(err, ErrAuthFailed) {
			t.Fatalf("stderr=%q err=%v", stderr, err)
		}
	}
}

func TestClassifyOtherGitError(t *testing.T) {
	t.Parallel()

	err := classify("https://github.com/u/r", "fatal: unable to access: Could not resolve host", errors.New("exit status 128"))
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAuthFailed) {
		t.Fatalf("misclassified: %v", err)
	}
	var cloneErr *CloneError
	if !errors.As(err, &cloneErr) {
		t.Fatalf("err=%T %v", err, err)
	}
	if cloneErr.Stderr == "" {
		t.Fatal("stderr not preserved")
	}
}
