package move

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/notetree/internal/workflow"
	"github.com/Paintersrp/notetree/pkg/cmd"
)

func NewCmdMove(l *cmd.Loader) *cobra.Command {
	c := &cobra.Command{
		Use:     "mv [path] [folder]",
		Aliases: []string{"move"},
		Short:   "Move a note or folder into another folder.",
		Long: heredoc.Doc(`
			Moves a note or folder into an existing folder. The destination is
			relative to the notes directory; use / for the notes directory
			itself. Nothing is overwritten.
		`),
		Example: heredoc.Doc(`
			notetree mv todo work
			notetree mv work/old /
		`),
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			if strings.TrimSpace(args[1]) == "" {
				return fmt.Errorf("a destination folder is required")
			}

			s, err := l.State()
			if err != nil {
				return err
			}

			target, err := cmd.ResolveNotesPath(s, args[0])
			if err != nil {
				return err
			}

			m, err := cmd.NewMachine(s, c.OutOrStdout())
			if err != nil {
				return err
			}

			if err := m.Dispatch(workflow.Select{Path: target}); err != nil {
				return err
			}
			if err := m.Dispatch(workflow.StartMove{}); err != nil {
				return err
			}
			return m.Dispatch(workflow.Confirm{Text: args[1]})
		},
	}

	return c
}
