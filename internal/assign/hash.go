package assign

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Domain prefixes for seed derivation. Ordering and side-flip draws
// use separate domains so the two random streams are independent even
// for the same participant. Version suffix enables future algorithm
// migration.
const (
	DomainOrder = "pairwise/order/v1"
	DomainSide  = "pairwise/side/v1"
)

// seedWithDomain computes the 64-bit seed for a domain-separated
// identity string.
//
// Format: first 8 bytes, big-endian, of SHA256(domain + 0x00 + part
// [+ 0x00 + part ...]). The null separators prevent boundary ambiguity
// between domain and data and between adjacent parts.
func seedWithDomain(domain string, parts ...string) uint64 {
	h := sha256.New()
	h.Write([]byte(domain))
	for _, p := range parts {
		h.Write([]byte{0x00})
		h.Write([]byte(p))
	}
	return binary.BigEndian.Uint64(h.Sum(nil)[:8])
}

// CanonicalParticipantID trims surrounding whitespace and applies NFC
// normalization so that byte-different spellings of the same identity
// hash identically. Returns an error for an empty id; identical ids
// denote the same participant everywhere in the engine.
func CanonicalParticipantID(id string) (string, error) {
	canonical := norm.NFC.String(strings.TrimSpace(id))
	if canonical == "" {
		return "", fmt.Errorf("assign: empty participant id")
	}
	return canonical, nil
}

// OrderSeed derives the per-participant ordering seed.
func OrderSeed(participantID string) uint64 {
	return seedWithDomain(DomainOrder, participantID)
}

// SideSeed derives the per-(participant, item) side-flip seed.
func SideSeed(participantID string, itemIndex int) uint64 {
	return seedWithDomain(DomainSide, participantID, strconv.Itoa(itemIndex))
}

// splitmix64 is the SplitMix64 generator (Steele, Lea & Flood 2014).
// It is chosen over math/rand because its output sequence is fully
// specified by the published constants, so a shuffle seeded from it is
// reproducible in any language, not just across Go processes.
type splitmix64 struct {
	state uint64
}

func (r *splitmix64) next() uint64 {
	r.state += 0x9E3779B97F4A7C15
	z := r.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
