// Package assign derives deterministic, participant-specific
// presentation orders and side assignments for the canonical item
// list.
//
// Every output is a pure function of (participant id, item count):
// nothing is persisted, and a participant reloading mid-session
// recomputes an identical order and identical left/right placement.
// Seeds come from domain-separated SHA-256 digests (see hash.go), so
// the ordering stream and the side-flip stream are provably
// independent.
package assign

import (
	"errors"
	"fmt"
)

// ErrNoItems signals an empty canonical item list. Callers must treat
// this as a fatal configuration problem for the session.
var ErrNoItems = errors.New("assign: no canonical items")

// Assignment is one participant's complete presentation plan.
type Assignment struct {
	// ParticipantID is the canonicalized identity the plan was
	// derived from.
	ParticipantID string

	// Order is the presentation order: a permutation of the canonical
	// indices [0, N).
	Order []int

	// Flips is indexed by canonical item index (not presentation
	// position). Flips[i] true means the student advice occupies
	// slot A for item i; false means the baseline does.
	Flips []bool
}

// Position returns the presentation position of canonical index idx,
// or -1 if idx is outside the assignment.
func (a Assignment) Position(idx int) int {
	for pos, i := range a.Order {
		if i == idx {
			return pos
		}
	}
	return -1
}

// For computes the assignment for a participant over n canonical
// items. The participant id is canonicalized first; an empty id or
// n == 0 is an error.
func For(participantID string, n int) (Assignment, error) {
	id, err := CanonicalParticipantID(participantID)
	if err != nil {
		return Assignment{}, err
	}
	if n == 0 {
		return Assignment{}, ErrNoItems
	}
	if n < 0 {
		return Assignment{}, fmt.Errorf("assign: negative item count %d", n)
	}

	a := Assignment{
		ParticipantID: id,
		Order:         shuffle(OrderSeed(id), n),
		Flips:         make([]bool, n),
	}
	for i := 0; i < n; i++ {
		a.Flips[i] = SideFlip(id, i)
	}
	return a, nil
}

// SideFlip draws the uniform boolean for one (participant, item) pair.
// The participant id must already be canonical.
func SideFlip(participantID string, itemIndex int) bool {
	return SideSeed(participantID, itemIndex)&1 == 1
}

// shuffle produces the Fisher-Yates permutation of [0, n) driven by a
// SplitMix64 stream. The swap index at step i is drawn as next() mod
// (i+1); the modulo bias is negligible for study-sized n and the
// construction stays byte-for-byte reproducible.
func shuffle(seed uint64, n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	rng := splitmix64{state: seed}
	for i := n - 1; i > 0; i-- {
		j := int(rng.next() % uint64(i+1))
		order[i], order[j] = order[j], order[i]
	}
	return order
}
