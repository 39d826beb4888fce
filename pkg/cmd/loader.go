package cmd

import (
	"github.com/spf13/viper"

	"github.com/Paintersrp/notetree/internal/state"
)

// Loader builds the shared state on first use so flags parsed by cobra are
// visible to the config layer.
type Loader struct {
	v *viper.Viper
	s *state.State
}

func NewLoader(v *viper.Viper) *Loader {
	return &Loader{v: v}
}

func (l *Loader) Viper() *viper.Viper {
	return l.v
}

func (l *Loader) State() (*state.State, error) {
	if l.s != nil {
		return l.s, nil
	}

	s, err := state.NewState(l.v)
	if err != nil {
		return nil, err
	}
	l.s = s
	return s, nil
}

// Use injects a prebuilt state, mainly for tests.
func (l *Loader) Use(s *state.State) {
	l.s = s
}

func (l *Loader) Close() error {
	if l.s == nil {
		return nil
	}
	err := l.s.Close()
	l.s = nil
	return err
}
