package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"sitelint/internal/commands"
	"sitelint/internal/commands/site"
)

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Validate and index every document under the content tree",
	Long: `Check parses and validates every markdown document under the content
tree, prints a per-document failure report, and exits non-zero when any
document failed. Duplicate identifiers are reported as warnings and do
not affect the exit code.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		module, err := newModule()
		if err != nil {
			return err
		}

		handler := site.NewCheckDirectoryHandler(
			module.Scanner(),
			os.Stdout,
			commands.WithLogger[site.CheckDirectoryCommand](module.Logger("sitelint.cli")),
			commands.WithOperation[site.CheckDirectoryCommand]("check"),
			commands.WithTimeout[site.CheckDirectoryCommand](0),
		)
		return handler.Execute(cmd.Context(), site.CheckDirectoryCommand{Directory: dir})
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
