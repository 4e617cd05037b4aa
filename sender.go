package laconicot

import (
	"math/big"
	"runtime"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/sync/errgroup"

	"github.com/crate-crypto/go-laconic-ot/boolproof"
)

// Sender transfers message pairs against a receiver's commitment. It
// never learns which branch the receiver can open.
//
// A Sender is immutable after construction and safe for concurrent
// use; SendBatch relies on this.
type Sender struct {
	params *SenderParams

	// The two branch bases: C for bit 0 and C - g1 for bit 1. The
	// receiver's opening cancels exactly one of them.
	comJac        bls12381.G1Jac
	comMinusG1Jac bls12381.G1Jac

	genG2Jac   bls12381.G2Jac
	alphaG2Jac bls12381.G2Jac
}

// NewSender validates the receiver's commitment and prepares for
// transfers. Under the certified backend the well-formedness
// certificate is verified here, once, rather than on every Send.
func NewSender(params *SenderParams, com *Com) (*Sender, error) {
	if com.backend != params.backend {
		return nil, ErrBackendMismatch
	}
	if params.backend == Certified {
		if com.cert == nil {
			return nil, ErrCommitmentRejected
		}
		if err := boolproof.Verify(&com.point, com.cert, params.domain, &params.openKey); err != nil {
			return nil, ErrCommitmentRejected
		}
	}

	s := &Sender{params: params}
	s.comJac.FromAffine(&com.point)

	var genG1Jac bls12381.G1Jac
	genG1Jac.FromAffine(&params.openKey.GenG1)
	s.comMinusG1Jac.Set(&s.comJac)
	s.comMinusG1Jac.SubAssign(&genG1Jac)

	s.genG2Jac.FromAffine(&params.openKey.GenG2)
	s.alphaG2Jac.FromAffine(&params.openKey.AlphaG2)
	return s, nil
}

// Send produces the transfer message for one index: msg0 is
// recoverable iff the committed bit at `index` is 0, msg1 iff it is 1.
// Fresh blinding scalars are drawn per call, so sending twice for the
// same index yields unrelated messages.
func (s *Sender) Send(index uint64, msg0, msg1 Message) (*Msg, error) {
	if index >= s.params.NumBits() {
		return nil, ErrIndexOutOfRange
	}

	var r0, r1 fr.Element
	if _, err := r0.SetRandom(); err != nil {
		return nil, err
	}
	if _, err := r1.SetRandom(); err != nil {
		return nil, err
	}

	// [alpha - w^i]G2, the verification base for openings at index i.
	var rootG2Jac, baseJac bls12381.G2Jac
	rootG2Jac.ScalarMultiplication(&s.genG2Jac, s.params.domain.Roots[index].BigInt(new(big.Int)))
	baseJac.Set(&s.alphaG2Jac)
	baseJac.SubAssign(&rootG2Jac)

	out := &Msg{}
	var err error
	out.h0, out.c0, err = s.branch(&s.comJac, &baseJac, &r0, msg0)
	if err != nil {
		return nil, err
	}
	out.h1, out.c1, err = s.branch(&s.comMinusG1Jac, &baseJac, &r1, msg1)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// branch blinds one arm of the transfer: the pad is e(r*B, g2) where B
// is the branch base, and the handle h = r*[alpha - w^i]G2 lets the
// receiver rebuild the pad as e(q_i, h) exactly when its opening
// cancels B.
func (s *Sender) branch(branchBase *bls12381.G1Jac, openingBase *bls12381.G2Jac, r *fr.Element, msg Message) (bls12381.G2Affine, Message, error) {
	var rBig big.Int
	r.BigInt(&rBig)

	var blindedJac bls12381.G1Jac
	blindedJac.ScalarMultiplication(branchBase, &rBig)
	var blinded bls12381.G1Affine
	blinded.FromJacobian(&blindedJac)

	pad, err := bls12381.Pair(
		[]bls12381.G1Affine{blinded},
		[]bls12381.G2Affine{s.params.openKey.GenG2},
	)
	if err != nil {
		return bls12381.G2Affine{}, Message{}, err
	}

	var handleJac bls12381.G2Jac
	handleJac.ScalarMultiplication(openingBase, &rBig)
	var handle bls12381.G2Affine
	handle.FromJacobian(&handleJac)

	return handle, maskMessage(&pad, msg), nil
}

// SendBatch runs Send for each index in parallel. indices and pairs
// must have equal length; pairs[i][0] is the bit-0 message for
// indices[i].
func (s *Sender) SendBatch(indices []uint64, pairs [][2]Message) ([]*Msg, error) {
	if len(indices) != len(pairs) {
		return nil, ErrBatchMismatch
	}

	msgs := make([]*Msg, len(indices))
	var group errgroup.Group
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i := range indices {
		i := i
		group.Go(func() error {
			msg, err := s.Send(indices[i], pairs[i][0], pairs[i][1])
			if err != nil {
				return err
			}
			msgs[i] = msg
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return msgs, nil
}
