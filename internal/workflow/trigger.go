package workflow

// Trigger is an input event fed to Machine.Dispatch.
type Trigger interface {
	trigger()
}

type (
	StartNewNote   struct{}
	StartNewFolder struct{}
	StartEdit      struct{}
	StartRename    struct{}
	StartMove      struct{}
	Delete         struct{}

	// Refresh rebuilds the tree. Quiet suppresses the "Refreshed" notice and
	// is used for externally detected changes.
	Refresh struct{ Quiet bool }

	// Select moves the selection without opening anything.
	Select struct{ Path string }

	// Open shows a document, or toggles a folder open or closed.
	Open struct{ Path string }

	// Collapse closes a folder in the tree.
	Collapse struct{ Path string }

	// Input records text typed into the active prompt.
	Input struct{ Text string }

	// Confirm submits a name prompt or the edited document content.
	Confirm struct{ Text string }

	Cancel struct{}
)

func (StartNewNote) trigger()   {}
func (StartNewFolder) trigger() {}
func (StartEdit) trigger()      {}
func (StartRename) trigger()    {}
func (StartMove) trigger()      {}
func (Delete) trigger()         {}
func (Refresh) trigger()        {}
func (Select) trigger()         {}
func (Open) trigger()           {}
func (Collapse) trigger()       {}
func (Input) trigger()          {}
func (Confirm) trigger()        {}
func (Cancel) trigger()         {}
