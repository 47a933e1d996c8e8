package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(a Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(c *cobra.Command, _ []string) {
			out := c.OutOrStdout()
			fmt.Fprintf(out, "intake %s\n", a.Version())
			fmt.Fprintf(out, "  commit:   %s\n", a.Commit())
			fmt.Fprintf(out, "  built:    %s\n", a.Date())
			fmt.Fprintf(out, "  built by: %s\n", a.BuiltBy())
		},
	}
}
