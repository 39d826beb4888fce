package path

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/notetree/pkg/cmd"
)

// WriteClipboard is replaced in tests.
var WriteClipboard = clipboard.WriteAll

func NewCmdPath(l *cmd.Loader) *cobra.Command {
	var copyPath bool

	c := &cobra.Command{
		Use:   "path [note]",
		Short: "Print the absolute path of a note or folder.",
		Long: heredoc.Doc(`
			Resolves a note or folder relative to the notes directory and prints
			its absolute path. With no argument the notes directory is printed.
		`),
		Example: "notetree path todo --copy",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			s, err := l.State()
			if err != nil {
				return err
			}

			target := s.Root
			if len(args) == 1 {
				target, err = cmd.ResolveNotesPath(s, args[0])
				if err != nil {
					return err
				}
			}
			if !s.Store.Exists(target) {
				return fmt.Errorf("%s does not exist", target)
			}

			fmt.Fprintln(c.OutOrStdout(), target)

			if copyPath {
				if err := WriteClipboard(target); err != nil {
					return fmt.Errorf("failed to copy path: %w", err)
				}
			}
			return nil
		},
	}

	c.Flags().BoolVarP(&copyPath, "copy", "c", false, "Also copy the path to the clipboard")
	return c
}
