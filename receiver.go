package laconicot

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/crate-crypto/go-laconic-ot/boolproof"
	"github.com/crate-crypto/go-laconic-ot/internal/fk"
	"github.com/crate-crypto/go-laconic-ot/internal/kzg"
)

// Receiver holds a committed bit vector together with the opening
// proofs for every index. Construction does all the heavy lifting;
// after it, Recv is two pairings away from a message.
//
// A Receiver is immutable and safe for concurrent use.
type Receiver struct {
	params *Params
	bits   []uint8
	com    Com

	// openings[i] commits to the quotient (f - f(w^i))/(x - w^i); it is
	// the receiver's trapdoor for index i.
	openings []bls12381.G1Affine
}

// NewReceiver commits to the given bit vector. Vectors shorter than the
// supported length are padded with zeros, so the commitment always
// covers the full domain; under the certified backend the padding is
// part of what the certificate attests to.
//
// This is the expensive step: one multi-scalar multiplication for the
// commitment, an O(n log n) batch opening for all indices, and under
// the certified backend a certificate proof.
func NewReceiver(params *Params, bits []uint8) (*Receiver, error) {
	n := int(params.NumBits())
	if len(bits) == 0 {
		return nil, ErrVectorEmpty
	}
	if len(bits) > n {
		return nil, ErrVectorTooLong
	}
	for _, b := range bits {
		if b > 1 {
			return nil, ErrNonBooleanBit
		}
	}

	padded := make([]uint8, n)
	copy(padded, bits)

	evals := make([]fr.Element, n)
	for i, b := range padded {
		evals[i].SetUint64(uint64(b))
	}

	commitment, err := kzg.Commit(evals, &params.srs.CommitKey)
	if err != nil {
		return nil, err
	}

	openings, err := fk.OpenAll(params.precompY, params.domain, params.extDomain, evals)
	if err != nil {
		return nil, err
	}

	r := &Receiver{
		params:   params,
		bits:     padded,
		com:      Com{backend: params.backend, point: *commitment},
		openings: openings,
	}
	if params.backend == Certified {
		cert, err := boolproof.Prove(evals, commitment, params.domain, params.extDomain, params.srs)
		if err != nil {
			return nil, err
		}
		r.com.cert = cert
	}
	return r, nil
}

// Commitment returns the first-round message to publish to senders.
func (r *Receiver) Commitment() *Com {
	return &r.com
}

// Bit returns the committed bit at the given index, padding included.
func (r *Receiver) Bit(index uint64) (uint8, error) {
	if index >= uint64(len(r.bits)) {
		return 0, ErrIndexOutOfRange
	}
	return r.bits[index], nil
}

// Recv recovers the message the committed bit selects at `index`. The
// pad for the chosen branch is e(q_i, h_b), which by the opening
// relation equals the pad the sender derived from the commitment; the
// other branch's pad stays out of reach because f(w^i) differs from
// the unchosen bit value.
func (r *Receiver) Recv(index uint64, msg *Msg) (Message, error) {
	if index >= uint64(len(r.bits)) {
		return Message{}, ErrIndexOutOfRange
	}

	handle := msg.h0
	ciphertext := msg.c0
	if r.bits[index] == 1 {
		handle = msg.h1
		ciphertext = msg.c1
	}

	pad, err := bls12381.Pair(
		[]bls12381.G1Affine{r.openings[index]},
		[]bls12381.G2Affine{handle},
	)
	if err != nil {
		return Message{}, err
	}
	return maskMessage(&pad, ciphertext), nil
}
