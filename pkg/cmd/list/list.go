package list

import (
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/notetree/internal/hierarchy"
	"github.com/Paintersrp/notetree/pkg/cmd"
)

func NewCmdList(l *cmd.Loader) *cobra.Command {
	var depth int

	c := &cobra.Command{
		Use:     "ls [folder]",
		Aliases: []string{"list", "tree"},
		Short:   "Print the notes tree.",
		Long: heredoc.Doc(`
			Prints the notes tree, folders first, in the same order the
			interactive view uses. Pass a folder to print only that branch.
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			s, err := l.State()
			if err != nil {
				return err
			}

			if err := s.Index.Refresh(); err != nil {
				return err
			}

			start := s.Index.Root()
			if len(args) == 1 {
				dir, err := cmd.ResolveFolder(s, args[0])
				if err != nil {
					return err
				}
				node, ok := s.Index.Lookup(dir)
				if !ok {
					return fmt.Errorf("%q is hidden or ignored", args[0])
				}
				start = node
			}

			Print(c.OutOrStdout(), start, depth)
			return nil
		},
	}

	c.Flags().IntVarP(&depth, "depth", "d", 0, "Limit how many folder levels are printed (0 for all)")
	return c
}

// Print writes n and its descendants as an indented tree.
func Print(w io.Writer, n *hierarchy.Node, maxDepth int) {
	fmt.Fprintln(w, n.Name+"/")
	printChildren(w, n, 1, maxDepth)
}

func printChildren(w io.Writer, dir *hierarchy.Node, depth, maxDepth int) {
	for _, child := range dir.Children {
		indent := strings.Repeat("  ", depth)
		if child.IsFolder() {
			fmt.Fprintf(w, "%s%s/\n", indent, child.Name)
			if maxDepth == 0 || depth < maxDepth {
				printChildren(w, child, depth+1, maxDepth)
			}
			continue
		}
		fmt.Fprintf(w, "%s%s\n", indent, child.Name)
	}
}
