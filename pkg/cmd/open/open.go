package open

import (
	"errors"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/notetree/internal/fzf"
	"github.com/Paintersrp/notetree/internal/tui/notes"
	"github.com/Paintersrp/notetree/pkg/cmd"
)

func NewCmdOpen(l *cmd.Loader) *cobra.Command {
	c := &cobra.Command{
		Use:     "open [query]",
		Aliases: []string{"o"},
		Short:   "Pick a note with a fuzzy finder and open it.",
		Long: heredoc.Doc(`
			Lists every note with a rendered preview. The chosen note is opened
			in the interactive view. An optional query pre-fills the finder.
		`),
		Example: "notetree open standup",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			s, err := l.State()
			if err != nil {
				return err
			}
			if err := s.Index.Refresh(); err != nil {
				return err
			}

			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			finder := fzf.NewFuzzyFinder(s.Index, s.Store, s.Renderer, "Select note to open.")
			path, err := finder.Run(query)
			if errors.Is(err, fzf.ErrNoSelection) {
				return nil
			}
			if err != nil {
				return err
			}

			return notes.Run(s, notes.Options{Open: path})
		},
	}

	return c
}
