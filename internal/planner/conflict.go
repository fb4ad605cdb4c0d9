package planner

import (
	"fmt"

	"github.com/danieljhkim/slotwise/internal/slots"
)

// SlotSet is a set of slot identifiers.
type SlotSet map[string]struct{}

// NewSlotSet builds a set from a list of slots.
func NewSlotSet(list ...[]string) SlotSet {
	s := make(SlotSet)
	for _, l := range list {
		for _, slot := range l {
			s[slot] = struct{}{}
		}
	}
	return s
}

// Has reports whether slot is in the set.
func (s SlotSet) Has(slot string) bool {
	_, ok := s[slot]
	return ok
}

// ConflictChecker decides slot availability against an allocation.
type ConflictChecker struct {
	registry *slots.Registry
}

// NewConflictChecker creates a new ConflictChecker.
func NewConflictChecker(registry *slots.Registry) *ConflictChecker {
	return &ConflictChecker{registry: registry}
}

// Registry returns the slot registry the checker consults.
func (c *ConflictChecker) Registry() *slots.Registry {
	return c.registry
}

// IsAvailable reports whether candidate may be added given the current
// allocation. Slots in own belong to the course under edit and never block.
func (c *ConflictChecker) IsAvailable(candidate string, allocation, own SlotSet) bool {
	return c.Check(candidate, allocation, own) == nil
}

// Check returns the first reason candidate is unavailable, or nil if it can
// be added.
func (c *ConflictChecker) Check(candidate string, allocation, own SlotSet) *Conflict {
	if own.Has(candidate) {
		return nil
	}

	if allocation.Has(candidate) {
		return &Conflict{
			Slot:    candidate,
			Blocker: candidate,
			Reason:  fmt.Sprintf("%s is already taken", candidate),
		}
	}

	for _, other := range c.registry.ConflictsOf(candidate) {
		if allocation.Has(other) && !own.Has(other) {
			return &Conflict{
				Slot:    candidate,
				Blocker: other,
				Reason:  fmt.Sprintf("%s overlaps %s", candidate, other),
			}
		}
	}

	return nil
}

// Blockers returns every occupied slot that prevents candidate from being
// added. It is empty exactly when IsAvailable is true.
func (c *ConflictChecker) Blockers(candidate string, allocation, own SlotSet) []Conflict {
	if own.Has(candidate) {
		return nil
	}

	var out []Conflict
	if allocation.Has(candidate) {
		out = append(out, Conflict{
			Slot:    candidate,
			Blocker: candidate,
			Reason:  fmt.Sprintf("%s is already taken", candidate),
		})
	}
	for _, other := range c.registry.ConflictsOf(candidate) {
		if allocation.Has(other) && !own.Has(other) {
			out = append(out, Conflict{
				Slot:    candidate,
				Blocker: other,
				Reason:  fmt.Sprintf("%s overlaps %s", candidate, other),
			})
		}
	}
	return out
}
