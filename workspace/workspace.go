package workspace

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-profile/profile"
)

var (
	// ErrSlot reports a slot index out of range.
	ErrSlot = errors.New("workspace: no such slot")
	// ErrNilProfile reports an attempt to store a nil profile.
	ErrNilProfile = errors.New("workspace: nil profile")
)

// NoParent marks an entry that did not replace anything.
const NoParent = -1

// Entry is one stored profile version.
type Entry struct {
	Profile     *profile.Profile
	Label       string
	Fingerprint uint64
	// Parent is the arena index of the entry this one replaced, or
	// NoParent.
	Parent int
}

// Workspace is a persistent list of profile slots. The zero value is an
// empty workspace that does not log.
type Workspace struct {
	arena []Entry
	slots []int
	log   zerolog.Logger
}

// Option configures a new Workspace.
type Option func(*Workspace)

// WithLogger logs every change at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(w *Workspace) {
		w.log = l
	}
}

// New returns an empty workspace.
func New(opts ...Option) Workspace {
	w := Workspace{log: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&w)
		}
	}
	return w
}

// Len returns the number of visible slots.
func (w Workspace) Len() int { return len(w.slots) }

// At returns the entry shown in slot.
func (w Workspace) At(slot int) (Entry, error) {
	if slot < 0 || slot >= len(w.slots) {
		return Entry{}, fmt.Errorf("%w: %d of %d", ErrSlot, slot, len(w.slots))
	}
	return w.arena[w.slots[slot]], nil
}

// Profiles returns the profiles of all slots in order.
func (w Workspace) Profiles() []*profile.Profile {
	out := make([]*profile.Profile, len(w.slots))
	for i, idx := range w.slots {
		out[i] = w.arena[idx].Profile
	}
	return out
}

// Append adds p in a new slot and returns the workspace and that slot.
func (w Workspace) Append(label string, p *profile.Profile) (Workspace, int, error) {
	if p == nil {
		return w, -1, ErrNilProfile
	}
	next := w.withEntry(Entry{Profile: p, Label: label, Fingerprint: Fingerprint(p), Parent: NoParent})
	next.slots = append(slices.Clip(w.slots), len(next.arena)-1)

	slot := len(next.slots) - 1
	w.log.Debug().Int("slot", slot).Str("label", label).Stringer("profile", p).Msg("append")
	return next, slot, nil
}

// Replace shows p in slot instead of the current entry, which becomes
// its parent. Replacing with an identical profile and label returns w
// unchanged.
func (w Workspace) Replace(slot int, label string, p *profile.Profile) (Workspace, error) {
	cur, err := w.At(slot)
	if err != nil {
		return w, err
	}
	if p == nil {
		return w, ErrNilProfile
	}
	fp := Fingerprint(p)
	if fp == cur.Fingerprint && label == cur.Label {
		w.log.Debug().Int("slot", slot).Str("label", label).Msg("replace skipped, profile unchanged")
		return w, nil
	}

	next := w.withEntry(Entry{Profile: p, Label: label, Fingerprint: fp, Parent: w.slots[slot]})
	next.slots = slices.Clone(w.slots)
	next.slots[slot] = len(next.arena) - 1

	w.log.Debug().
		Int("slot", slot).
		Str("label", label).
		Str("fingerprint", fmt.Sprintf("%016x", fp)).
		Msg("replace")
	return next, nil
}

// Apply replaces slot with fn applied to its current profile.
func (w Workspace) Apply(slot int, label string, fn func(*profile.Profile) (*profile.Profile, error)) (Workspace, error) {
	cur, err := w.At(slot)
	if err != nil {
		return w, err
	}
	p, err := fn(cur.Profile)
	if err != nil {
		return w, fmt.Errorf("workspace: %s on slot %d: %w", label, slot, err)
	}
	return w.Replace(slot, label, p)
}

// Remove drops slot from view. Later slots move down by one. The entries
// stay in the arena, so older workspace values still show them.
func (w Workspace) Remove(slot int) (Workspace, error) {
	if _, err := w.At(slot); err != nil {
		return w, err
	}
	next := w
	next.slots = slices.Delete(slices.Clone(w.slots), slot, slot+1)
	w.log.Debug().Int("slot", slot).Msg("remove")
	return next, nil
}

// Clear returns a workspace with no visible slots that keeps w's logger.
func (w Workspace) Clear() Workspace {
	w.log.Debug().Int("slots", len(w.slots)).Msg("clear")
	return Workspace{log: w.log}
}

// History returns the entries shown in slot over time, newest first.
func (w Workspace) History(slot int) ([]Entry, error) {
	if slot < 0 || slot >= len(w.slots) {
		return nil, fmt.Errorf("%w: %d of %d", ErrSlot, slot, len(w.slots))
	}
	var out []Entry
	for idx := w.slots[slot]; idx != NoParent; idx = w.arena[idx].Parent {
		out = append(out, w.arena[idx])
	}
	return out, nil
}

// withEntry returns a copy of w whose arena ends with e. The old arena is
// never written to, so earlier workspace values stay valid.
func (w Workspace) withEntry(e Entry) Workspace {
	next := w
	next.arena = append(slices.Clip(w.arena), e)
	return next
}
