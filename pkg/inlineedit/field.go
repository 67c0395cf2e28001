// Package inlineedit is the state machine behind click-to-edit fields.
package inlineedit

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

type State string

const (
	StateView    State = "view"
	StateEdit    State = "edit"
	StateConfirm State = "confirm"
	StateError   State = "error"
)

var ErrInvalidTransition = errors.New("inlineedit: invalid transition")

// SaveFunc persists the committed value.
type SaveFunc func(ctx context.Context, value string) error

// MessageFunc turns a save error into the message shown next to the field.
type MessageFunc func(field string, err error) string

type Options struct {
	Name  string
	Value string
	// Destructive reports changes that need an explicit confirmation.
	Destructive func(old, new string) bool
	// Normalize cleans a draft before it is compared and saved.
	Normalize func(draft string) (string, error)
	Message   MessageFunc
}

type Field struct {
	mu sync.Mutex

	name        string
	value       string
	draft       string
	state       State
	message     string
	destructive func(old, new string) bool
	normalize   func(string) (string, error)
	messageFor  MessageFunc
}

func New(opts Options) *Field {
	return &Field{
		name:        opts.Name,
		value:       opts.Value,
		state:       StateView,
		destructive: opts.Destructive,
		normalize:   opts.Normalize,
		messageFor:  opts.Message,
	}
}

// Snapshot is a read-only copy for rendering.
type Snapshot struct {
	Name    string
	Value   string
	Draft   string
	State   State
	Message string
}

func (f *Field) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Snapshot{
		Name:    f.name,
		Value:   f.value,
		Draft:   f.draft,
		State:   f.state,
		Message: f.message,
	}
}

func (f *Field) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Field) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Begin opens the editor with the committed value as draft.
func (f *Field) Begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateView {
		return errors.Wrapf(ErrInvalidTransition, "begin from %s", f.state)
	}
	f.draft = f.value
	f.message = ""
	f.state = StateEdit
	return nil
}

func (f *Field) Change(draft string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateEdit && f.state != StateError {
		return errors.Wrapf(ErrInvalidTransition, "change from %s", f.state)
	}
	f.draft = draft
	return nil
}

// Cancel drops the draft from any state.
func (f *Field) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = ""
	f.message = ""
	f.state = StateView
}

// Submit validates the draft. An unchanged draft closes the editor without
// saving; a destructive change waits in StateConfirm.
func (f *Field) Submit(ctx context.Context, save SaveFunc) error {
	f.mu.Lock()
	if f.state != StateEdit && f.state != StateError {
		state := f.state
		f.mu.Unlock()
		return errors.Wrapf(ErrInvalidTransition, "submit from %s", state)
	}
	draft := strings.TrimSpace(f.draft)
	if f.normalize != nil {
		normalized, err := f.normalize(draft)
		if err != nil {
			f.fail(err)
			f.mu.Unlock()
			return err
		}
		draft = normalized
	}
	f.draft = draft
	if draft == f.value {
		f.state = StateView
		f.draft = ""
		f.message = ""
		f.mu.Unlock()
		return nil
	}
	if f.destructive != nil && f.destructive(f.value, draft) {
		f.state = StateConfirm
		f.mu.Unlock()
		return nil
	}
	f.mu.Unlock()
	return f.commit(ctx, draft, save)
}

// Confirm saves a draft held in StateConfirm.
func (f *Field) Confirm(ctx context.Context, save SaveFunc) error {
	f.mu.Lock()
	if f.state != StateConfirm {
		state := f.state
		f.mu.Unlock()
		return errors.Wrapf(ErrInvalidTransition, "confirm from %s", state)
	}
	draft := f.draft
	f.mu.Unlock()
	return f.commit(ctx, draft, save)
}

func (f *Field) commit(ctx context.Context, draft string, save SaveFunc) error {
	if err := save(ctx, draft); err != nil {
		f.mu.Lock()
		f.draft = draft
		f.fail(err)
		f.mu.Unlock()
		return errors.Wrapf(err, "save %s", f.name)
	}
	f.mu.Lock()
	f.value = draft
	f.draft = ""
	f.message = ""
	f.state = StateView
	f.mu.Unlock()
	return nil
}

func (f *Field) fail(err error) {
	f.state = StateError
	if f.messageFor != nil {
		f.message = f.messageFor(f.name, err)
		return
	}
	f.message = err.Error()
}
