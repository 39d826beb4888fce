package mkdir

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/notetree/internal/workflow"
	"github.com/Paintersrp/notetree/pkg/cmd"
)

func NewCmdMkdir(l *cmd.Loader) *cobra.Command {
	var parent string

	c := &cobra.Command{
		Use:     "mkdir [name]",
		Aliases: []string{"folder"},
		Short:   "Create a folder in the notes directory.",
		Long: heredoc.Doc(`
			Creates a folder under the notes directory, or under the folder given
			with --in. Creating a folder that already exists is not an error.
		`),
		Example: "notetree mkdir projects --in work",
		Args:    cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if strings.TrimSpace(args[0]) == "" {
				return fmt.Errorf("error: No name given. Try again with 'notetree mkdir [name]'")
			}

			s, err := l.State()
			if err != nil {
				return err
			}

			dir, err := cmd.ResolveFolder(s, parent)
			if err != nil {
				return err
			}

			m, err := cmd.NewMachine(s, c.OutOrStdout())
			if err != nil {
				return err
			}

			for _, t := range []workflow.Trigger{
				workflow.Select{Path: dir},
				workflow.StartNewFolder{},
				workflow.Confirm{Text: args[0]},
			} {
				if err := m.Dispatch(t); err != nil {
					return err
				}
			}
			return nil
		},
	}

	c.Flags().StringVarP(&parent, "in", "i", "", "Parent folder, relative to the notes directory")
	return c
}
