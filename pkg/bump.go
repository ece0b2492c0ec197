package pkgbump

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/semver"
)

// ErrSkipped is returned by Run and DryRun for BumpSkip. It signals an
// intentional no-op, not a failure.
var ErrSkipped = errors.New("version bump skipped")

// VersionMeta holds metadata about the version bump operation.
type VersionMeta struct {
	OldVersion   string   // The version before bumping.
	NewVersion   string   // The new version after bumping.
	BumpType     BumpType // Which component was bumped.
	ManifestPath string   // The manifest that was (or would be) rewritten.
}

// DefaultManifestPath returns the manifest location used by the CLI: a
// package.json one directory above the running executable.
func DefaultManifestPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	// Fall back to the unresolved path if the link cannot be followed.
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), "..", ManifestFileName), nil
}

// plan loads the manifest and computes the bumped version without writing
// anything.
func plan(manifestPath string, bump BumpType) (*Manifest, VersionMeta, error) {
	meta := VersionMeta{BumpType: bump, ManifestPath: manifestPath}

	// 1. Skip never reads the manifest.
	if bump == BumpSkip {
		return nil, meta, ErrSkipped
	}

	// 2. Read the current version.
	m, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, meta, err
	}
	current, err := m.Version()
	if err != nil {
		return nil, meta, fmt.Errorf("%s: %w", manifestPath, err)
	}
	meta.OldVersion = current

	v, err := ParseVersion(current)
	if err != nil {
		return nil, meta, err
	}

	// 3. Determine the new version.
	bumped, err := v.Bump(bump)
	if err != nil {
		return nil, meta, err
	}
	meta.NewVersion = bumped.String()

	// A bump must move forward; this also catches integer overflow.
	if semver.Compare("v"+meta.NewVersion, "v"+meta.OldVersion) <= 0 {
		return nil, meta, fmt.Errorf("new version (%s) is not greater than the current version (%s)", meta.NewVersion, meta.OldVersion)
	}

	if err := m.SetVersion(meta.NewVersion); err != nil {
		return nil, meta, err
	}
	return m, meta, nil
}

// Run bumps the version stored in the manifest at manifestPath and rewrites
// the file in place. Fields other than version are preserved in order.
//
// For BumpSkip it returns ErrSkipped and leaves the file alone.
func Run(manifestPath string, bump BumpType) (VersionMeta, error) {
	m, meta, err := plan(manifestPath, bump)
	if err != nil {
		return meta, err
	}

	// 4. Write the manifest back.
	if err := m.WriteFile(manifestPath); err != nil {
		return meta, err
	}
	return meta, nil
}

// DryRun computes the same VersionMeta as Run without modifying the
// manifest.
func DryRun(manifestPath string, bump BumpType) (VersionMeta, error) {
	_, meta, err := plan(manifestPath, bump)
	return meta, err
}
