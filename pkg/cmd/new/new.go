package new

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/notetree/internal/workflow"
	"github.com/Paintersrp/notetree/pkg/cmd"
)

func NewCmdNew(l *cmd.Loader) *cobra.Command {
	var folder string

	c := &cobra.Command{
		Use:     "new [name]",
		Aliases: []string{"n"},
		Short:   "Create a new note.",
		Long: heredoc.Doc(`
			Creates a new markdown note in the notes directory, or in the folder
			given with --in. The ".md" extension is added when missing and the
			note starts with a heading matching its name.
		`),
		Example: heredoc.Doc(`
			notetree new todo
			notetree new standup --in work/meetings
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return run(c, l, args[0], folder)
		},
	}

	c.Flags().StringVarP(&folder, "in", "i", "", "Folder, relative to the notes directory, to create the note in")
	return c
}

func run(c *cobra.Command, l *cmd.Loader, name, folder string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("error: No name given. Try again with 'notetree new [name]'")
	}

	s, err := l.State()
	if err != nil {
		return err
	}

	dir, err := cmd.ResolveFolder(s, folder)
	if err != nil {
		return err
	}

	m, err := cmd.NewMachine(s, c.OutOrStdout())
	if err != nil {
		return err
	}

	for _, t := range []workflow.Trigger{
		workflow.Select{Path: dir},
		workflow.StartNewNote{},
		workflow.Confirm{Text: name},
	} {
		if err := m.Dispatch(t); err != nil {
			return err
		}
	}
	return nil
}
