// Package pkgbump provides a library for bumping the semantic version stored in a
// package.json manifest.
//
// It provides functionalities for:
//   - Loading a manifest while keeping its top-level key order and every field
//     other than "version" exactly as written.
//   - Parsing a "major.minor.patch" version and bumping it by major, minor, or patch.
//   - Writing the manifest back with two-space indentation and a trailing newline,
//     replacing the file atomically. Symlinks are followed and the target is
//     replaced. Permission bits are kept, but the new file is owned by the
//     invoking user and group.
//
// Pre-release and build metadata are not supported; versions carrying them are
// rejected with ErrUnsupportedVersion.
//
// Usage Example:
//
//	import (
//	    "log"
//	    "github.com/bcomnes/pkgbump/pkg"
//	)
//
//	func main() {
//	    meta, err := pkgbump.Run("./package.json", pkgbump.BumpMinor)
//	    if err != nil {
//	        log.Fatalf("version bump failed: %v", err)
//	    }
//	    log.Println("Version bumped to", meta.NewVersion)
//	}
//
// For additional details and API documentation, see https://pkg.go.dev/github.com/bcomnes/pkgbump.
package pkgbump
