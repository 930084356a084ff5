package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lmarten/coursemap/pkg/catalog"
	pkgio "github.com/lmarten/coursemap/pkg/io"
)

// groupOpts holds the command-line flags for the group command.
type groupOpts struct {
	output  string // output file path ("-" for stdout, empty for config default)
	sample  bool   // group the built-in sample listing
	summary bool   // print a styled per-subject summary after grouping
}

// newGroupCmd creates the group command, the core operation of the tool:
// read a SUBJECT-NUMBER listing, group it by subject, and export the
// ordered mapping as indented JSON.
//
// The listing comes from a positional file path, from stdin when the
// argument is "-" or absent, or from the embedded sample with --sample.
// Output defaults to subject_data.json in the current directory (or the
// configured path); "-o -" writes to stdout.
func newGroupCmd() *cobra.Command {
	var opts groupOpts

	cmd := &cobra.Command{
		Use:   "group [listing]",
		Short: "Group a course listing by subject and export it as JSON",
		Long: `Group a hyphen-delimited course listing by subject and export the result
as indented JSON.

Each non-blank line of the listing must have the shape SUBJECT-NUMBER and is
split on the first hyphen; further hyphens stay in the course number. Blank
lines are skipped. A line without a hyphen aborts the run before any output
is written.

Examples:
  coursemap group courses.txt                 # listing from a file
  cat courses.txt | coursemap group           # listing from stdin
  coursemap group --sample -o -               # built-in sample to stdout
  coursemap group courses.txt -o fall.json    # explicit output path`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			var arg string
			if len(args) == 1 {
				arg = args[0]
			}
			return runGroup(c.Context(), &opts, arg)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default subject_data.json, \"-\" for stdout)")
	cmd.Flags().BoolVar(&opts.sample, "sample", false, "group the built-in sample listing")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "print a per-subject summary after grouping")

	return cmd
}

// runGroup executes the group operation: load, parse, export, confirm.
// Parsing completes before the output file is opened, so a malformed line
// never leaves a partial output file behind.
func runGroup(ctx context.Context, opts *groupOpts, arg string) error {
	logger := loggerFromContext(ctx)

	if opts.sample && arg != "" {
		return fmt.Errorf("cannot combine --sample with a listing argument")
	}

	c, err := loadListing(opts, arg)
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		out = configFromContext(ctx).Output
	}

	prog := newProgress(logger)
	if err := writeCatalog(c, out); err != nil {
		return err
	}
	if out != "-" {
		prog.done(fmt.Sprintf("Wrote %d subjects (%d courses) to %s", c.SubjectCount(), c.CourseCount(), out))
	}

	if opts.summary {
		fmt.Fprint(os.Stdout, renderSummary(c))
	}
	return nil
}

// loadListing reads and groups the selected listing source.
func loadListing(opts *groupOpts, arg string) (*catalog.Catalog, error) {
	if opts.sample {
		return catalog.Parse(sampleListing)
	}
	in, err := openInput(arg)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return catalog.ParseReader(in)
}

// writeCatalog serializes c as indented JSON to path ("-" for stdout).
func writeCatalog(c *catalog.Catalog, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return pkgio.WriteJSON(c, out)
}
