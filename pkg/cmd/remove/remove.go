package remove

import (
	"fmt"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/notetree/internal/workflow"
	"github.com/Paintersrp/notetree/pkg/cmd"
)

// Confirm asks before deleting. Tests replace it.
var Confirm = func(question string) (bool, error) {
	return confirmation.New(question, confirmation.No).RunPrompt()
}

func NewCmdRemove(l *cmd.Loader) *cobra.Command {
	var yes bool

	c := &cobra.Command{
		Use:     "rm [path]",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a note or an empty folder.",
		Long: heredoc.Doc(`
			Deletes a single note or an empty folder. Folders that still contain
			anything are refused; delete their contents first. The notes
			directory itself can never be deleted.
		`),
		Example: heredoc.Doc(`
			notetree rm todo
			notetree rm work/old --yes
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
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

			if !yes {
				ok, err := Confirm(fmt.Sprintf("Delete %s?", filepath.Base(target)))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(c.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			return m.Dispatch(workflow.Delete{})
		},
	}

	c.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking for confirmation")
	return c
}
