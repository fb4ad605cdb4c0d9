package planner

import (
	"fmt"
	"strings"

	"github.com/danieljhkim/slotwise/internal/slots"
)

// Draft is the staged slot selection of an edit in progress. It only reads
// the allocation it was created with; committing it is the caller's job.
type Draft struct {
	checker    *ConflictChecker
	intent     EditIntent
	allocation SlotSet
	own        SlotSet
	ownOrder   []string
	staged     []string
}

// ToggleResult describes the effect of a single toggle.
type ToggleResult struct {
	// Added lists the slots added, the toggled slot first
	Added []string `json:"added,omitempty"`

	// Removed lists the slots removed, the toggled slot first
	Removed []string `json:"removed,omitempty"`

	// Conflict is set when the toggled slot was not available
	Conflict *Conflict `json:"conflict,omitempty"`
}

// Rejection is a token of a typed pattern that could not be staged.
type Rejection struct {
	Token  string `json:"token"`
	Reason string `json:"reason"`
}

// NewDraft starts a draft for intent. allocation is the current allocation
// state; own holds the slots the edited course already contributes, which
// are exempt from conflicts and staged initially.
func NewDraft(checker *ConflictChecker, intent EditIntent, allocation SlotSet, own []string) *Draft {
	d := &Draft{
		checker:    checker,
		intent:     intent,
		allocation: allocation,
		own:        NewSlotSet(own),
		ownOrder:   append([]string(nil), own...),
	}
	for _, s := range own {
		d.stage(s)
	}
	return d
}

// Intent returns the edit flow this draft belongs to.
func (d *Draft) Intent() EditIntent {
	return d.intent
}

// Slots returns the staged selection in insertion order.
func (d *Draft) Slots() []string {
	return append([]string(nil), d.staged...)
}

// Has reports whether slot is staged.
func (d *Draft) Has(slot string) bool {
	return d.index(slot) >= 0
}

// Available reports whether slot could be staged now.
func (d *Draft) Available(slot string) bool {
	return d.Has(slot) || d.checker.IsAvailable(slot, d.allocation, d.own)
}

// Toggle flips slot in the selection through the automatic-association
// path. Adding a primary slot also stages its first available extension;
// blocked extensions are skipped silently. Removing a primary slot also
// removes its "T"+p extension, but not a second-pattern extension.
func (d *Draft) Toggle(slot string) ToggleResult {
	reg := d.checker.Registry()

	if d.Has(slot) {
		res := ToggleResult{Removed: []string{slot}}
		d.unstage(slot)
		if ext, ok := reg.PrimaryExtension(slot); ok && d.Has(ext) {
			d.unstage(ext)
			res.Removed = append(res.Removed, ext)
		}
		return res
	}

	if !reg.Known(slot) {
		return ToggleResult{Conflict: &Conflict{Slot: slot, Reason: fmt.Sprintf("unknown slot %q", slot)}}
	}
	if c := d.checker.Check(slot, d.allocation, d.own); c != nil {
		return ToggleResult{Conflict: c}
	}

	res := ToggleResult{Added: []string{slot}}
	d.stage(slot)

	if slots.IsPrimary(slot) {
		ext := reg.AssociatedSlots(slot)
		for _, e := range ext {
			if d.Has(e) {
				return res
			}
		}
		for _, e := range ext {
			if d.checker.IsAvailable(e, d.allocation, d.own) {
				d.stage(e)
				res.Added = append(res.Added, e)
				break
			}
		}
	}
	return res
}

// ApplyPattern replaces the selection with the slots of a typed pattern such
// as "A1+TA1+L3". Tokens may be separated by '+', ',', '/' or whitespace.
// Every token goes through the same availability check as Toggle but no
// extensions are added; the pattern is taken literally. Tokens that are
// unknown or unavailable are returned and left out of the selection.
func (d *Draft) ApplyPattern(pattern string) []Rejection {
	reg := d.checker.Registry()

	var rejected []Rejection
	d.staged = nil
	for _, tok := range SplitPattern(pattern) {
		if !reg.Known(tok) {
			rejected = append(rejected, Rejection{Token: tok, Reason: fmt.Sprintf("unknown slot %q", tok)})
			continue
		}
		if d.Has(tok) {
			continue
		}
		if c := d.checker.Check(tok, d.allocation, d.own); c != nil {
			rejected = append(rejected, Rejection{Token: tok, Reason: c.Reason})
			continue
		}
		d.stage(tok)
	}
	return rejected
}

// Clear unstages every slot.
func (d *Draft) Clear() {
	d.staged = nil
}

// Reset drops the staged selection back to the edited course's own slots.
func (d *Draft) Reset() {
	d.staged = nil
	for _, s := range d.ownOrder {
		d.stage(s)
	}
}

// SplitPattern splits a typed slot pattern into normalized tokens.
func SplitPattern(pattern string) []string {
	fields := strings.FieldsFunc(pattern, func(r rune) bool {
		switch r {
		case '+', ',', '/', ' ', '\t', '\n', '\r':
			return true
		}
		return false
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if tok := slots.Normalize(f); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

func (d *Draft) index(slot string) int {
	for i, s := range d.staged {
		if s == slot {
			return i
		}
	}
	return -1
}

func (d *Draft) stage(slot string) {
	if d.index(slot) < 0 {
		d.staged = append(d.staged, slot)
	}
}

func (d *Draft) unstage(slot string) {
	if i := d.index(slot); i >= 0 {
		d.staged = append(d.staged[:i], d.staged[i+1:]...)
	}
}
