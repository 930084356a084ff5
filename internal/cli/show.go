package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pkgio "github.com/lmarten/coursemap/pkg/io"
)

// newShowCmd creates the show command, which prints a styled per-subject
// summary of an exported catalog file. Without an argument it reads the
// configured default export path.
func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [catalog.json]",
		Short: "Print a per-subject summary of an exported catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			path := configFromContext(c.Context()).Output
			if len(args) == 1 {
				path = args[0]
			}

			cat, err := pkgio.ImportJSON(path)
			if err != nil {
				return err
			}
			fmt.Fprint(os.Stdout, renderSummary(cat))
			return nil
		},
	}
}
