package cmd

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sitelint/internal/commands"
	"sitelint/internal/commands/site"
)

var (
	listCategory string
	listAuthor   string
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "Index the content tree and list documents",
	Long: `List scans the content tree and renders one view of the resulting
index: chronological by default, or a category/author grouping when the
matching flag is set. Invalid documents are skipped, matching the
per-document isolation of check.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		if listCategory != "" && listAuthor != "" {
			return errors.New("--category and --author are mutually exclusive")
		}

		module, err := newModule()
		if err != nil {
			return err
		}

		// Populate the index first. Document failures only exclude the
		// failing documents from the listing.
		check := site.NewCheckDirectoryHandler(
			module.Scanner(),
			io.Discard,
			commands.WithLogger[site.CheckDirectoryCommand](module.Logger("sitelint.cli")),
			commands.WithTimeout[site.CheckDirectoryCommand](0),
		)
		if err := check.Execute(cmd.Context(), site.CheckDirectoryCommand{Directory: dir}); err != nil {
			if !errors.Is(err, site.ErrCheckFailed) {
				return err
			}
		}

		msg := site.ListDocumentsCommand{Query: site.QueryChronological}
		switch {
		case listCategory != "":
			msg = site.ListDocumentsCommand{Query: site.QueryCategory, Key: listCategory}
		case listAuthor != "":
			msg = site.ListDocumentsCommand{Query: site.QueryAuthor, Key: listAuthor}
		}

		handler := site.NewListDocumentsHandler(
			module.Index(),
			os.Stdout,
			commands.WithLogger[site.ListDocumentsCommand](module.Logger("sitelint.cli")),
			commands.WithOperation[site.ListDocumentsCommand]("list"),
			commands.WithTimeout[site.ListDocumentsCommand](0),
		)
		return handler.Execute(cmd.Context(), msg)
	},
}

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "", "list documents in a category")
	listCmd.Flags().StringVar(&listAuthor, "author", "", "list documents by an author")
	rootCmd.AddCommand(listCmd)
}
