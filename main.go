// Package main implements a CLI tool to bump the version in a package.json
// manifest located one directory above the executable.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	pkgbump "github.com/bcomnes/pkgbump/pkg"
)

const (
	missingFlagMsg = "Please provide a version bump flag: --major, --minor, or --patch"
	invalidFlagMsg = "Invalid flag. Use --major, --minor, or --patch"
	skipMsg        = "Skipping version bump."
)

var errMissingFlag = errors.New("no version bump flag given")

// invalidFlagError reports an unknown flag, a stray argument, or conflicting
// bump flags. Error returns only the detail.
type invalidFlagError struct {
	cause error
}

func (e *invalidFlagError) Error() string { return e.cause.Error() }
func (e *invalidFlagError) Unwrap() error { return e.cause }

const usageTemplate = `Usage:
  pkgbump [--dry] <--major|--minor|--patch|--skip>

Bumps the "version" field of the package.json one directory above this binary and
rewrites the file with two-space indentation. All other fields are left untouched.

Examples:
  pkgbump --minor
  pkgbump --dry --major

Exit status is 0 after a bump and 1 otherwise. --skip exits 1 on purpose; it is
a no-op, not a failure.

Options:
{{.LocalFlags.FlagUsages}}`

type bumpFlags struct {
	major, minor, patch, skip bool
	dry                       bool
}

// bumpType returns the single bump selected on the command line.
func (f bumpFlags) bumpType() (pkgbump.BumpType, error) {
	var selected []pkgbump.BumpType
	if f.major {
		selected = append(selected, pkgbump.BumpMajor)
	}
	if f.minor {
		selected = append(selected, pkgbump.BumpMinor)
	}
	if f.patch {
		selected = append(selected, pkgbump.BumpPatch)
	}
	if f.skip {
		selected = append(selected, pkgbump.BumpSkip)
	}

	switch len(selected) {
	case 0:
		return "", errMissingFlag
	case 1:
		return selected[0], nil
	default:
		return "", &invalidFlagError{errors.New("only one of --major, --minor, --patch, --skip may be given")}
	}
}

// newRootCmd builds the pkgbump command. Output goes to stdout and stderr;
// manifestPath is the package.json that gets rewritten.
func newRootCmd(stdout, stderr io.Writer, manifestPath string) *cobra.Command {
	var flags bumpFlags

	cmd := &cobra.Command{
		Use:           "pkgbump",
		Short:         "Bump the version in package.json",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &invalidFlagError{fmt.Errorf("unexpected argument %q", args[0])}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			bump, err := flags.bumpType()
			if err != nil {
				return err
			}

			if flags.dry {
				meta, err := pkgbump.DryRun(manifestPath, bump)
				if err != nil {
					return err
				}
				fmt.Fprintf(stdout, "Dry run: version would be bumped from %s to %s\n", meta.OldVersion, meta.NewVersion)
				return nil
			}

			meta, err := pkgbump.Run(manifestPath, bump)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Version bumped to %s\n", meta.NewVersion)
			return nil
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate("pkgbump CLI version {{.Version}}\n")
	cmd.SetUsageTemplate(usageTemplate)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &invalidFlagError{err}
	})

	cmd.Flags().BoolVar(&flags.major, "major", false, "Bump the major version and reset minor and patch")
	cmd.Flags().BoolVar(&flags.minor, "minor", false, "Bump the minor version and reset patch")
	cmd.Flags().BoolVar(&flags.patch, "patch", false, "Bump the patch version")
	cmd.Flags().BoolVar(&flags.skip, "skip", false, "Do nothing and exit with status 1")
	cmd.Flags().BoolVar(&flags.dry, "dry", false, "Print the new version without modifying package.json")

	return cmd
}

// run executes the CLI with args and returns the process exit status.
func run(args []string, stdout, stderr io.Writer, manifestPath string) int {
	cmd := newRootCmd(stdout, stderr, manifestPath)
	// cobra falls back to os.Args when given nil.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	var flagErr *invalidFlagError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, pkgbump.ErrSkipped):
		color.New(color.FgYellow).Fprintln(stdout, skipMsg)
	case errors.Is(err, errMissingFlag):
		color.New(color.FgRed).Fprintln(stderr, missingFlagMsg)
	case errors.As(err, &flagErr):
		color.New(color.FgRed).Fprintln(stderr, invalidFlagMsg)
		fmt.Fprintln(stderr, "Error:", flagErr)
	default:
		color.New(color.FgRed).Fprintln(stderr, "Error:", err)
	}
	return 1
}

func main() {
	manifestPath, err := pkgbump.DefaultManifestPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, manifestPath))
}
