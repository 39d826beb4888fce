package notes

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/notetree/internal/tui/notes"
	"github.com/Paintersrp/notetree/pkg/cmd"
)

func NewCmdNotes(l *cmd.Loader) *cobra.Command {
	c := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"ui", "tui"},
		Short:   "Browse and edit notes in the interactive view.",
		Long: heredoc.Doc(`
			Opens the two-pane view: the notes tree on the left and the selected
			note on the right. Press ? inside the view for the key bindings.
		`),
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			s, err := l.State()
			if err != nil {
				return err
			}
			return notes.Run(s, notes.Options{})
		},
	}

	return c
}
