/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package initialize

import (
	"fmt"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/notetree/internal/config"
	"github.com/Paintersrp/notetree/internal/state"
	"github.com/Paintersrp/notetree/pkg/cmd"
)

func NewCmdInit(l *cmd.Loader) *cobra.Command {
	c := &cobra.Command{
		Use:     "init [notes-dir]",
		Aliases: []string{"i", "initialize"},
		Short:   "Set up notetree's config and notes directory.",
		Long: heredoc.Doc(`
			Writes ~/.notetree/config.yaml if it does not exist yet, optionally
			pointing notes_dir at the given directory, then creates the notes
			directory and seeds a welcome note when it is empty.
		`),
		Example: "notetree init ~/Documents/notes",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			home, err := state.GetHomeDir()
			if err != nil {
				return err
			}

			if err := config.EnsureConfigExists(home); err != nil {
				return err
			}

			if len(args) == 1 {
				cfg, err := config.Load(home)
				if err != nil {
					return err
				}
				dir, err := filepath.Abs(args[0])
				if err != nil {
					return err
				}
				cfg.NotesDir = dir
				if err := cfg.Save(); err != nil {
					return err
				}
				l.Viper().Set("notes_dir", dir)
			}

			s, err := l.State()
			if err != nil {
				return err
			}
			if _, err := cmd.NewMachine(s, c.OutOrStdout()); err != nil {
				return err
			}

			out := c.OutOrStdout()
			fmt.Fprintf(out, "Config: %s\n", s.Config.GetConfigPath())
			fmt.Fprintf(out, "Notes:  %s\n", s.Root)
			return nil
		},
	}

	return c
}
