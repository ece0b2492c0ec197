package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupManifest writes content to a package.json in a temporary directory.
func setupManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "package.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

func readManifest(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read manifest: %v", err)
	}
	return string(data)
}

// TestRunBumps checks the stdout message, exit code and rewritten manifest
// for each bump flag.
func TestRunBumps(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		args     []string
		expected string
		message  string
	}{
		{
			name:     "minor",
			content:  `{"version": "1.2.3", "name": "x"}`,
			args:     []string{"--minor"},
			expected: "{\n  \"version\": \"1.3.0\",\n  \"name\": \"x\"\n}\n",
			message:  "Version bumped to 1.3.0\n",
		},
		{
			name:     "major",
			content:  `{"version": "0.0.1"}`,
			args:     []string{"--major"},
			expected: "{\n  \"version\": \"1.0.0\"\n}\n",
			message:  "Version bumped to 1.0.0\n",
		},
		{
			name:     "patch",
			content:  `{"name": "x", "version": "1.2.3"}`,
			args:     []string{"--patch"},
			expected: "{\n  \"name\": \"x\",\n  \"version\": \"1.2.4\"\n}\n",
			message:  "Version bumped to 1.2.4\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := setupManifest(t, tt.content)
			var stdout, stderr bytes.Buffer

			code := run(tt.args, &stdout, &stderr, path)
			if code != 0 {
				t.Fatalf("expected exit code 0, got %d; stderr:\n%s", code, stderr.String())
			}
			if stdout.String() != tt.message {
				t.Errorf("expected stdout %q, got %q", tt.message, stdout.String())
			}
			if stderr.Len() != 0 {
				t.Errorf("expected empty stderr, got %q", stderr.String())
			}
			if got := readManifest(t, path); got != tt.expected {
				t.Errorf("unexpected manifest; expected:\n%s\ngot:\n%s", tt.expected, got)
			}
		})
	}
}

// TestRunLeavesManifestUnchanged covers every path that must exit 1 without
// writing the manifest.
func TestRunLeavesManifestUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		content string
		args    []string
		stdout  string
		stderr  string
	}{
		{name: "skip", content: `{"version": "1.2.3"}`, args: []string{"--skip"}, stdout: skipMsg},
		{name: "missing flag", content: `{"version": "1.2.3"}`, args: nil, stderr: missingFlagMsg},
		{name: "unknown flag", content: `{"version": "1.2.3"}`, args: []string{"--bogus"}, stderr: invalidFlagMsg},
		{name: "unknown shorthand", content: `{"version": "1.2.3"}`, args: []string{"-x"}, stderr: invalidFlagMsg},
		{name: "positional", content: `{"version": "1.2.3"}`, args: []string{"minor"}, stderr: invalidFlagMsg},
		{name: "two bump flags", content: `{"version": "1.2.3"}`, args: []string{"--major", "--minor"}, stderr: invalidFlagMsg},
		{name: "invalid json", content: `{"version": "1.2.3",}`, args: []string{"--patch"}, stderr: "Error:"},
		{name: "malformed version", content: `{"version": "1.2"}`, args: []string{"--patch"}, stderr: "malformed version"},
		{name: "prerelease version", content: `{"version": "1.2.3-rc.1"}`, args: []string{"--patch"}, stderr: "unsupported version"},
		{name: "missing version", content: `{"name": "x"}`, args: []string{"--patch"}, stderr: "no version field"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := setupManifest(t, tt.content)
			var stdout, stderr bytes.Buffer

			if code := run(tt.args, &stdout, &stderr, path); code != 1 {
				t.Errorf("expected exit code 1, got %d", code)
			}
			if tt.stdout != "" && !strings.Contains(stdout.String(), tt.stdout) {
				t.Errorf("expected stdout to contain %q, got %q", tt.stdout, stdout.String())
			}
			if tt.stderr != "" && !strings.Contains(stderr.String(), tt.stderr) {
				t.Errorf("expected stderr to contain %q, got %q", tt.stderr, stderr.String())
			}
			if got := readManifest(t, path); got != tt.content {
				t.Errorf("manifest was modified; got:\n%s", got)
			}
		})
	}
}

// TestRunDry tests that --dry reports the new version without writing it.
func TestRunDry(t *testing.T) {
	content := `{"version": "1.2.3"}`
	path := setupManifest(t, content)
	var stdout, stderr bytes.Buffer

	if code := run([]string{"--dry", "--patch"}, &stdout, &stderr, path); code != 0 {
		t.Fatalf("expected exit code 0, got %d; stderr:\n%s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Dry run: version would be bumped from 1.2.3 to 1.2.4") {
		t.Errorf("unexpected dry run output: %q", stdout.String())
	}
	if got := readManifest(t, path); got != content {
		t.Errorf("dry run should not update the manifest; got:\n%s", got)
	}
}

// TestRunInvalidFlagDetail checks that an invalid flag prints the fixed
// message followed by a single detail line.
func TestRunInvalidFlagDetail(t *testing.T) {
	path := setupManifest(t, `{"version": "1.2.3"}`)
	var stdout, stderr bytes.Buffer

	if code := run([]string{"--bogus"}, &stdout, &stderr, path); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	expected := invalidFlagMsg + "\nError: unknown flag: --bogus\n"
	if stderr.String() != expected {
		t.Errorf("expected stderr %q, got %q", expected, stderr.String())
	}
}

func TestRunMissingManifest(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--patch"}, &stdout, &stderr, filepath.Join(t.TempDir(), "package.json"))
	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Error: reading manifest") {
		t.Errorf("expected read error on stderr, got %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("expected empty stdout, got %q", stdout.String())
	}
}
