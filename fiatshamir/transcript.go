// Package fiatshamir provides the transcript used to derive challenge
// scalars for the well-formedness certificate.
package fiatshamir

import (
	"crypto/sha256"
	"hash"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/crate-crypto/go-laconic-ot/internal/utils"
)

// Domain separators for the different absorbed object types and for
// challenge squeezes.
const (
	domSepG1Point = "g1"
	domSepG2Point = "g2"
	domSepScalar  = "fr"
	domSepSqueeze = "sq"
)

// Transcript mimics a random oracle over the messages appended to it.
// Both prover and verifier run the same append sequence, so both
// derive the same challenges.
type Transcript struct {
	state hash.Hash
}

func NewTranscript(label string) *Transcript {
	t := &Transcript{
		state: sha256.New(),
	}
	t.state.Write([]byte(label))
	return t
}

func (t *Transcript) appendMessage(domSep string, message []byte) {
	t.state.Write([]byte(domSep))
	t.state.Write(message)
}

// AppendScalar appends the 32 byte little-endian encoding of a scalar
// to the transcript.
func (t *Transcript) AppendScalar(scalar fr.Element) {
	tmpBytes := scalar.Bytes()
	utils.Reverse(tmpBytes[:])

	t.appendMessage(domSepScalar, tmpBytes[:])
}

// AppendPoint appends the compressed encoding of a G1 point to the
// transcript.
func (t *Transcript) AppendPoint(point curve.G1Affine) {
	tmpBytes := point.Bytes() // zcash compressed encoding
	t.appendMessage(domSepG1Point, tmpBytes[:])
}

// AppendG2Point appends the compressed encoding of a G2 point to the
// transcript.
func (t *Transcript) AppendG2Point(point curve.G2Affine) {
	tmpBytes := point.Bytes()
	t.appendMessage(domSepG2Point, tmpBytes[:])
}

// ChallengeScalar computes a challenge based off of the state of the
// transcript.
//
// Hash the transcript state, then reduce the hash modulo the size of
// the scalar field.
//
// Squeezing twice yields two different challenges, because the
// previous squeeze is absorbed back into the state.
func (t *Transcript) ChallengeScalar() fr.Element {
	t.state.Write([]byte(domSepSqueeze))

	digest := t.state.Sum(nil)
	// Reverse the bytes, so that we use little-endian
	utils.Reverse(digest)

	var challenge fr.Element
	challenge.SetBytes(digest)

	// Clear the state and absorb the digest, which summarises
	// everything appended before this squeeze.
	t.state.Reset()
	t.appendMessage("", digest)

	return challenge
}
