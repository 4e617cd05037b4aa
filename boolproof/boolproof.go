// Package boolproof produces certificates that a committed polynomial
// takes only boolean values over the evaluation domain.
//
// The statement uses the standard quotient argument: f is boolean on
// the domain iff f(x)*(f(x)-1) is divisible by the vanishing polynomial
// x^n - 1, iff there exists q with
//
//	f(x) * (f(x) - 1) = q(x) * (x^n - 1).
//
// The prover commits to q and both sides are checked at a single point
// z derived by Fiat-Shamir from the two commitments, together with KZG
// opening proofs for f(z) and q(z).
package boolproof

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/crate-crypto/go-laconic-ot/fiatshamir"
	"github.com/crate-crypto/go-laconic-ot/internal/kzg"
)

const transcriptLabel = "lot-bool-cert-v1"

// Certificate attests that the polynomial behind a commitment evaluates
// to 0 or 1 on every point of the domain. The challenge point is not
// part of the certificate; the verifier re-derives it from the
// transcript, binding the certificate to the commitment it was made
// for.
type Certificate struct {
	// Commitment to the quotient q = f*(f-1) / (x^n - 1).
	QuotientComm kzg.Commitment
	// Claimed evaluations f(z) and q(z).
	FEval fr.Element
	QEval fr.Element
	// Opening proofs for the two evaluations.
	FProof kzg.Commitment
	QProof kzg.Commitment
}

// challengePoint derives the evaluation challenge. Besides the two
// commitments, the transcript absorbs the domain size and the G2
// secret power, so a certificate cannot be replayed against another
// domain or another trusted setup. Prover and verifier must agree on
// this byte for byte.
func challengePoint(domain *kzg.Domain, alphaG2 bls12381.G2Affine, commitment, quotientComm *kzg.Commitment) fr.Element {
	transcript := fiatshamir.NewTranscript(transcriptLabel)

	var size fr.Element
	size.SetUint64(domain.Cardinality)
	transcript.AppendScalar(size)
	transcript.AppendG2Point(alphaG2)

	transcript.AppendPoint(*commitment)
	transcript.AppendPoint(*quotientComm)
	return transcript.ChallengeScalar()
}

// Prove certifies that `evals` is boolean on the domain underlying
// `commitment`. The commitment must have been produced from the same
// evaluations; since commitments here are deterministic, the verifier's
// transcript will otherwise diverge and the certificate is useless.
func Prove(evals []fr.Element, commitment *kzg.Commitment, domain, extDomain *kzg.Domain, srs *kzg.SRS) (*Certificate, error) {
	ck := &srs.CommitKey
	n := int(domain.Cardinality)
	if len(evals) != n {
		return nil, ErrEvaluationsSize
	}
	if int(extDomain.Cardinality) != 2*n {
		return nil, ErrExtendedDomainSize
	}

	var one fr.Element
	one.SetOne()
	for i := range evals {
		if !evals[i].IsZero() && !evals[i].Equal(&one) {
			return nil, ErrNotBoolean
		}
	}

	fCoeffs, err := domain.IfftFr(evals)
	if err != nil {
		return nil, err
	}

	// Evaluate f on the double-size domain and form f^2 - f pointwise.
	// deg(f^2 - f) <= 2n-2, so 2n evaluations determine it exactly.
	extCoeffs := make([]fr.Element, 2*n)
	copy(extCoeffs, fCoeffs)
	extEvals, err := extDomain.FftFr(extCoeffs)
	if err != nil {
		return nil, err
	}
	for i := range extEvals {
		var sq fr.Element
		sq.Square(&extEvals[i])
		extEvals[i].Sub(&sq, &extEvals[i])
	}
	numCoeffs, err := extDomain.IfftFr(extEvals)
	if err != nil {
		return nil, err
	}

	// With t = f^2 - f = q*(x^n - 1) and deg q <= n-2, the coefficients
	// of q appear verbatim as t_n .. t_{2n-2}.
	qCoeffs := make(kzg.Polynomial, n-1)
	copy(qCoeffs, numCoeffs[n:2*n-1])

	quotientComm, err := kzg.CommitCoeff(qCoeffs, ck)
	if err != nil {
		return nil, err
	}

	z := challengePoint(domain, srs.OpeningKey.AlphaG2, commitment, quotientComm)

	fProof, err := kzg.Open(fCoeffs, z, ck)
	if err != nil {
		return nil, err
	}
	qProof, err := kzg.Open(qCoeffs, z, ck)
	if err != nil {
		return nil, err
	}

	return &Certificate{
		QuotientComm: *quotientComm,
		FEval:        fProof.ClaimedValue,
		QEval:        qProof.ClaimedValue,
		FProof:       fProof.QuotientComm,
		QProof:       qProof.QuotientComm,
	}, nil
}

// Verify checks a certificate against a commitment. It re-derives the
// challenge z, checks the quotient identity
//
//	f(z) * (f(z) - 1) == q(z) * (z^n - 1)
//
// and then verifies the two claimed evaluations with a single batched
// pairing check.
func Verify(commitment *kzg.Commitment, cert *Certificate, domain *kzg.Domain, openKey *kzg.OpeningKey) error {
	z := challengePoint(domain, openKey.AlphaG2, commitment, &cert.QuotientComm)

	var zPowN, one, vanishing fr.Element
	one.SetOne()
	zPowN.Exp(z, big.NewInt(int64(domain.Cardinality)))
	vanishing.Sub(&zPowN, &one)

	var lhs, rhs fr.Element
	lhs.Sub(&cert.FEval, &one)
	lhs.Mul(&lhs, &cert.FEval)
	rhs.Mul(&cert.QEval, &vanishing)
	if !lhs.Equal(&rhs) {
		return ErrInvalidCertificate
	}

	err := kzg.BatchVerifyMultiPoints(
		[]kzg.Commitment{*commitment, cert.QuotientComm},
		[]kzg.OpeningProof{
			{QuotientComm: cert.FProof, InputPoint: z, ClaimedValue: cert.FEval},
			{QuotientComm: cert.QProof, InputPoint: z, ClaimedValue: cert.QEval},
		},
		openKey,
	)
	if err != nil {
		return ErrInvalidCertificate
	}
	return nil
}
