package root

import (
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/notetree/internal/constants"
	"github.com/Paintersrp/notetree/pkg/cmd"
	"github.com/Paintersrp/notetree/pkg/cmd/initialize"
	"github.com/Paintersrp/notetree/pkg/cmd/list"
	"github.com/Paintersrp/notetree/pkg/cmd/mkdir"
	"github.com/Paintersrp/notetree/pkg/cmd/move"
	"github.com/Paintersrp/notetree/pkg/cmd/new"
	"github.com/Paintersrp/notetree/pkg/cmd/notes"
	"github.com/Paintersrp/notetree/pkg/cmd/open"
	"github.com/Paintersrp/notetree/pkg/cmd/path"
	"github.com/Paintersrp/notetree/pkg/cmd/remove"
	"github.com/Paintersrp/notetree/pkg/cmd/show"
)

func NewCmdRoot(l *cmd.Loader) *cobra.Command {
	v := l.Viper()
	notesCmd := notes.NewCmdNotes(l)

	c := &cobra.Command{
		Use:   constants.AppName,
		Short: "A modal notes manager for the terminal.",
		Long: heredoc.Doc(`
			notetree keeps markdown notes in a folder tree and lets you browse,
			create, edit, rename and delete them from a two-pane terminal view.

			Run without a subcommand to open the interactive view.
		`),
		Version:      constants.Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         notesCmd.RunE,
		PersistentPostRunE: func(c *cobra.Command, args []string) error {
			return l.Close()
		},
	}

	flags := c.PersistentFlags()
	flags.String("dir", "", "Notes directory (overrides notes_dir in the config)")
	flags.String("log-level", "", "Log level: trace, debug, info, warn or error")
	flags.String("log-file", "", "Log file (default ~/.notetree/notetree.log)")
	flags.Bool("no-watch", false, "Do not watch the notes directory for outside changes")

	_ = v.BindPFlag("notes_dir", flags.Lookup("dir"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = v.BindPFlag("log_file", flags.Lookup("log-file"))
	_ = v.BindPFlag("no_watch", flags.Lookup("no-watch"))

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	c.AddCommand(
		initialize.NewCmdInit(l),
		notesCmd,
		new.NewCmdNew(l),
		mkdir.NewCmdMkdir(l),
		remove.NewCmdRemove(l),
		move.NewCmdMove(l),
		list.NewCmdList(l),
		show.NewCmdShow(l),
		open.NewCmdOpen(l),
		path.NewCmdPath(l),
	)

	return c
}

// Execute runs the command tree with a fresh viper instance.
func Execute() error {
	l := cmd.NewLoader(viper.New())
	defer l.Close()
	return NewCmdRoot(l).Execute()
}
