// Package connectivity supplies the online/offline signal consumed by
// the offline-first reader and UI widgets. The signal is injected as an
// Observer interface so the reader's branch logic stays deterministic
// and testable.
package connectivity

// Observer reports the current connectivity snapshot and notifies
// subscribers on online/offline transitions.
type Observer interface {
	// Online returns the current connectivity snapshot.
	Online() bool
	// Subscribe registers a transition callback and returns an
	// unsubscribe function.
	Subscribe(fn func(online bool)) (unsubscribe func())
}

// Static is a fixed-state Observer, useful for CLI runs and tests.
type Static bool

func (s Static) Online() bool { return bool(s) }

func (s Static) Subscribe(fn func(online bool)) func() { return func() {} }
