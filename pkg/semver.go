package pkgbump

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

var (
	// ErrMalformedVersion is returned when a version string is not three
	// dot-separated unsigned integers.
	ErrMalformedVersion = errors.New("malformed version")
	// ErrUnsupportedVersion is returned for versions carrying pre-release or
	// build metadata.
	ErrUnsupportedVersion = errors.New("unsupported version")
	// ErrUnknownBump is returned when a bump type cannot be applied.
	ErrUnknownBump = errors.New("unknown bump type")
)

// BumpType selects which version component is incremented.
type BumpType string

const (
	BumpMajor BumpType = "major"
	BumpMinor BumpType = "minor"
	BumpPatch BumpType = "patch"
	// BumpSkip is an explicit no-op. Run reports it as ErrSkipped.
	BumpSkip BumpType = "skip"
)

// Version is a major.minor.patch triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion splits s on "." and parses each of the three segments as an
// unsigned decimal integer. No "v" prefix is accepted.
func ParseVersion(s string) (Version, error) {
	if canonical := "v" + s; semver.Prerelease(canonical) != "" || semver.Build(canonical) != "" {
		return Version{}, fmt.Errorf("%w: %q has pre-release or build metadata", ErrUnsupportedVersion, s)
	}

	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w: %q does not have exactly three components", ErrMalformedVersion, s)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, strconv.IntSize-1)
		if err != nil {
			return Version{}, fmt.Errorf("%w: component %q of %q is not a non-negative integer", ErrMalformedVersion, p, s)
		}
		nums[i] = int(n)
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String formats the version as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Bump returns v with the component selected by bump incremented and every
// lower-order component reset to zero.
func (v Version) Bump(bump BumpType) (Version, error) {
	switch bump {
	case BumpMajor:
		v.Major++
		v.Minor = 0
		v.Patch = 0
	case BumpMinor:
		v.Minor++
		v.Patch = 0
	case BumpPatch:
		v.Patch++
	default:
		return v, fmt.Errorf("%w: %s", ErrUnknownBump, bump)
	}
	return v, nil
}
