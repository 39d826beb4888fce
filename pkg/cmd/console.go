package cmd

import (
	"fmt"
	"io"

	"github.com/Paintersrp/notetree/internal/state"
	"github.com/Paintersrp/notetree/internal/workflow"
)

// Console is a workflow.Presenter for one-shot commands. Only informational
// notices are printed; warnings and errors come back from Dispatch and are
// reported by cobra.
type Console struct {
	out      io.Writer
	Document workflow.DocumentView
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) RenderTree(workflow.TreeView)           {}
func (c *Console) PromptForName(workflow.NamePrompt)      {}
func (c *Console) PromptForEdit(workflow.EditPrompt)      {}
func (c *Console) RenderDocument(v workflow.DocumentView) { c.Document = v }

func (c *Console) Notify(message string, severity workflow.Severity) {
	if severity == workflow.SeverityInfo {
		fmt.Fprintln(c.out, message)
	}
}

// NewMachine starts a workflow machine over s that reports to out.
func NewMachine(s *state.State, out io.Writer) (*workflow.Machine, error) {
	m := workflow.New(workflow.Env{
		Store:   s.Store,
		Index:   s.Index,
		Tracker: s.Tracker,
		View:    NewConsole(out),
	})
	if err := m.Start(); err != nil {
		return nil, err
	}
	return m, nil
}
