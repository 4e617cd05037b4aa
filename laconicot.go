// Package laconicot implements laconic oblivious transfer on top of
// KZG polynomial commitments over BLS12-381.
//
// The receiver encodes a bit vector as the evaluations of a polynomial
// over a power-of-two domain and publishes a single 48-byte commitment
// to it. The sender, holding two messages per index, derives two
// pairing-based one-time pads from the commitment such that the
// receiver can recover exactly the message selected by its bit, and
// learns nothing about the other. The sender learns nothing about the
// bit vector beyond the commitment.
//
// The receiver precomputes opening proofs for every index in a single
// O(n log n) batch instead of n independent openings, which is what
// makes large vectors practical.
//
// Two backends share the wire formats. The plain backend trusts the
// receiver to commit to a boolean vector; the certified backend
// attaches a succinct certificate of well-formedness to the commitment
// and senders verify it before transferring anything.
package laconicot

// Backend selects the trust model for commitment well-formedness.
type Backend uint8

const (
	// Plain performs no well-formedness check on the receiver's
	// commitment. Sender privacy for the unchosen message then rests on
	// the receiver committing honestly to bits.
	Plain Backend = iota
	// Certified requires the receiver to attach a certificate proving
	// the committed vector is boolean, and senders to verify it.
	Certified
)

func (b Backend) String() string {
	switch b {
	case Plain:
		return "plain"
	case Certified:
		return "certified"
	default:
		return "unknown"
	}
}

// MessageSize is the size in bytes of each transferred message. It is
// sized for wire labels in garbled-circuit protocols, the primary
// consumer of laconic OT.
const MessageSize = 16

// Message is one of the two sender inputs per index.
type Message = [MessageSize]byte
