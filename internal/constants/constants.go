package constants

const (
	Version        = `0.1.0`
	AppName        = `notetree`
	ConfigFile     = `config`
	ConfigFileType = `yaml`
	ConfigDir      = `.notetree`
	LogFile        = `notetree.log`
	SessionFile    = `session.db`
	EnvPrefix      = `NOTETREE`

	DefaultNotesDir     = `notes`
	DefaultGlamourStyle = `dracula`
	DefaultWordWrap     = 100
	DefaultLogLevel     = `info`

	NoteExt     = `.md`
	WelcomeNote = `Welcome.md`
)

// NoteTemplate is the body written for a freshly created note. The single
// verb receives the note name without its extension.
const NoteTemplate = "# %s\n\nYour note content here...\n"

const WelcomeContent = `# Welcome to notetree!

This is your personal notes manager in the terminal.

## Features

- Create and edit notes in Markdown
- Organize notes in folders
- View rendered Markdown formatting
- Keyboard-driven interface

## Keyboard Shortcuts

- ` + "`n`" + ` - Create a new note
- ` + "`f`" + ` - Create a new folder
- ` + "`e`" + ` - Edit the selected note
- ` + "`R`" + ` - Rename the selected entry
- ` + "`d`" + ` - Delete the selected entry
- ` + "`r`" + ` - Refresh the directory tree
- ` + "`q`" + ` - Quit the application

## Getting Started

1. Press ` + "`n`" + ` to create a new note
2. Select a note and press ` + "`e`" + ` to edit it
3. Press ` + "`f`" + ` to create folders and organize your notes

Happy note-taking!
`
