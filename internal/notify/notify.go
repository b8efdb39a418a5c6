// Package notify delivers the editor notifications that follow an export.
package notify

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Event kinds, in the order an export emits them
const (
	KindDisplayFileCode  = "display_file_code"
	KindLoadProject      = "load_project"
	KindToggleFolderView = "toggle_folder_view"
	KindHighlightFile    = "highlight_file"
)

// Notifier receives the messages the editor reacts to
type Notifier interface {
	// DisplayFileCode shows the exported source
	DisplayFileCode(ctx context.Context, content string) error
	// LoadProject reloads the project tree rooted at root
	LoadProject(ctx context.Context, root string) error
	// ToggleFolderView expands the folder holding the new file
	ToggleFolderView(ctx context.Context, dir string) error
	// HighlightFile selects the new file in the tree
	HighlightFile(ctx context.Context, name string) error
}

// Event is the serialized form of one notification
type Event struct {
	Kind    string    `json:"kind"`
	Payload string    `json:"payload"`
	SentAt  time.Time `json:"sent_at"`
}

func newEvent(kind, payload string) Event {
	return Event{Kind: kind, Payload: payload, SentAt: time.Now().UTC()}
}

// Multi fans every notification out to all notifiers. Every notifier is
// called even when an earlier one fails; the errors are joined.
type Multi []Notifier

func (m Multi) each(fn func(n Notifier) error) error {
	var errs []error
	for _, n := range m {
		if err := fn(n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) DisplayFileCode(ctx context.Context, content string) error {
	return m.each(func(n Notifier) error { return n.DisplayFileCode(ctx, content) })
}

func (m Multi) LoadProject(ctx context.Context, root string) error {
	return m.each(func(n Notifier) error { return n.LoadProject(ctx, root) })
}

func (m Multi) ToggleFolderView(ctx context.Context, dir string) error {
	return m.each(func(n Notifier) error { return n.ToggleFolderView(ctx, dir) })
}

func (m Multi) HighlightFile(ctx context.Context, name string) error {
	return m.each(func(n Notifier) error { return n.HighlightFile(ctx, name) })
}

// Recorder keeps every notification in memory. The API uses it to return
// the events of a request; tests use it to assert on them.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) record(kind, payload string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, newEvent(kind, payload))
	return nil
}

func (r *Recorder) DisplayFileCode(_ context.Context, content string) error {
	return r.record(KindDisplayFileCode, content)
}

func (r *Recorder) LoadProject(_ context.Context, root string) error {
	return r.record(KindLoadProject, root)
}

func (r *Recorder) ToggleFolderView(_ context.Context, dir string) error {
	return r.record(KindToggleFolderView, dir)
}

func (r *Recorder) HighlightFile(_ context.Context, name string) error {
	return r.record(KindHighlightFile, name)
}

// Events returns a copy of what was recorded
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Kinds returns the kinds of the recorded events in order
func (r *Recorder) Kinds() []string {
	events := r.Events()
	kinds := make([]string, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}
	return kinds
}
