// Package state assembles the long-lived objects every command needs: the
// loaded config, the storage gateway rooted at the notes directory, the
// hierarchy index, the active-document tracker and the optional extras
// (renderer, session store, watcher).
package state

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/muesli/termenv"
	"github.com/spf13/viper"

	"github.com/Paintersrp/notetree/internal/active"
	"github.com/Paintersrp/notetree/internal/config"
	"github.com/Paintersrp/notetree/internal/hierarchy"
	"github.com/Paintersrp/notetree/internal/logging"
	"github.com/Paintersrp/notetree/internal/markdown"
	"github.com/Paintersrp/notetree/internal/session"
	"github.com/Paintersrp/notetree/internal/storage"
)

var log = logging.New("state")

type State struct {
	Config   *config.Config
	Home     string
	Root     string
	Store    *storage.FileStore
	Index    *hierarchy.Index
	Tracker  *active.Tracker
	Renderer *markdown.Renderer
	Session  *session.Store
	Watcher  *NotesWatcher

	logCloser io.Closer
}

// NewState loads configuration (with overrides bound in v), sets up logging
// and builds the gateway and index for the notes root. The root folder is
// created when missing.
func NewState(v *viper.Viper) (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(home)
	if err != nil {
		return nil, err
	}
	if v != nil {
		if err := cfg.ApplyOverrides(v); err != nil {
			return nil, err
		}
	}

	closer, err := logging.Setup(logging.Options{Level: cfg.LogLevel, File: cfg.LogPath()})
	if err != nil {
		return nil, err
	}

	root, err := cfg.NotesRoot()
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	store := storage.NewFileStore(root)
	if err := store.CreateFolder(root); err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("failed to prepare notes directory: %w", err)
	}

	idx, err := hierarchy.New(store, hierarchy.Options{Ignore: cfg.Ignore})
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("failed to configure tree: %w", err)
	}

	renderer := markdown.NewRenderer(markdown.Options{
		Style:    cfg.GlamourStyle,
		WordWrap: cfg.WordWrap,
		Profile:  termenv.ANSI256,
	})

	log.WithField("root", root).Info("state initialised")

	return &State{
		Config:    cfg,
		Home:      home,
		Root:      root,
		Store:     store,
		Index:     idx,
		Tracker:   active.NewTracker(),
		Renderer:  renderer,
		logCloser: closer,
	}, nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadConfig(home string) (*config.Config, error) {
	if err := config.EnsureConfigExists(home); err != nil {
		return nil, err
	}

	return config.Load(home)
}

// OpenSession attaches the sqlite session store. Failures are logged and
// leave Session nil; the UI works without it.
func (s *State) OpenSession(ctx context.Context) {
	store, err := session.Open(ctx, s.Config.SessionPath())
	if err != nil {
		log.WithError(err).Warn("session store unavailable")
		return
	}
	s.Session = store
}

// StartWatching attaches a filesystem watcher when the config enables it.
func (s *State) StartWatching() error {
	if !s.Config.WatchEnabled() || s.Watcher != nil {
		return nil
	}

	watcher, err := NewNotesWatcher(s.Root)
	if err != nil {
		return fmt.Errorf("failed to create notes watcher: %w", err)
	}
	watcher.OnChange(func(rel string) {
		log.WithField("path", rel).Debug("external change")
		if s.Renderer != nil {
			s.Renderer.Forget(filepath.Join(s.Root, filepath.FromSlash(rel)))
		}
	})
	s.Watcher = watcher
	return nil
}

// Close releases the watcher, the session store and the log file.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Watcher = nil
	}
	if s.Session != nil {
		if err := s.Session.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Session = nil
	}
	if s.logCloser != nil {
		if err := s.logCloser.Close(); err != nil {
			errs = append(errs, err)
		}
		s.logCloser = nil
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
