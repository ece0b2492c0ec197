// Package main implements the pkgbump CLI tool.
//
// The pkgbump tool bumps the semantic version stored in a package.json manifest.
// The manifest is the package.json one directory above the pkgbump binary, so a
// binary built into ./bin bumps ./package.json. The tool reads the "version" field,
// bumps it according to a single flag, and rewrites the manifest with two-space
// indentation and a trailing newline. Every other field keeps its position and value.
//
// Command Usage:
//
//	pkgbump [--dry] <--major|--minor|--patch|--skip>
//
// Flags:
//
//	--major:   Increments the major version and resets minor and patch to 0.
//	--minor:   Increments the minor version and resets patch to 0.
//	--patch:   Increments the patch version.
//	--skip:    Prints "Skipping version bump." and exits with status 1 without
//	           touching the manifest. Callers should treat this as an intentional
//	           no-op rather than a failure.
//	--dry:     Prints the version that would be written without modifying the manifest.
//	--version: Displays the version of the pkgbump CLI tool and exits.
//
// Exactly one of --major, --minor, --patch or --skip is required. A missing or
// unrecognized flag prints an error on stderr and exits with status 1.
//
// Examples:
//
//	# Bump the patch version (e.g. 1.2.3 → 1.2.4)
//	pkgbump --patch
//
//	# Bump the minor version (e.g. 1.2.3 → 1.3.0)
//	pkgbump --minor
//
//	# Bump the major version (e.g. 1.2.3 → 2.0.0)
//	pkgbump --major
//
//	# Show what a major bump would produce
//	pkgbump --dry --major
//
// Versions with pre-release or build metadata (1.2.3-beta.1, 1.2.3+build) and
// versions that are not three dot-separated integers are rejected.
//
// For more detailed API documentation, please see the documentation in the "pkg" package
// or visit [PkgGoDev](https://pkg.go.dev/github.com/bcomnes/pkgbump).
package main
