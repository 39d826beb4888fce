package show

import (
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Paintersrp/notetree/pkg/cmd"
)

func NewCmdShow(l *cmd.Loader) *cobra.Command {
	var raw bool

	c := &cobra.Command{
		Use:     "show [note]",
		Aliases: []string{"cat"},
		Short:   "Print a note.",
		Long: heredoc.Doc(`
			Prints a note. On a terminal the markdown is rendered with the
			configured glamour style; when piped, or with --raw, the file is
			printed as is.
		`),
		Example: "notetree show work/todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			s, err := l.State()
			if err != nil {
				return err
			}

			path, err := cmd.ResolveNotesPath(s, args[0])
			if err != nil {
				return err
			}

			content, err := s.Store.ReadDocument(path)
			if err != nil {
				return err
			}

			out := c.OutOrStdout()
			width, tty := terminalWidth(out)
			if raw || !tty {
				_, err := io.WriteString(out, content)
				return err
			}

			rendered, err := s.Renderer.Render(path, content, width)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out, rendered)
			return err
		},
	}

	c.Flags().BoolVarP(&raw, "raw", "r", false, "Print the markdown source without rendering")
	return c
}

func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, true
	}
	return width, true
}
