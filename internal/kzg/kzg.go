package kzg

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/crate-crypto/go-laconic-ot/internal/multiexp"
)

type Commitment = bls12381.G1Affine

// Polynomial is a slice of field elements. Whether the slice holds
// evaluations over a domain or monomial coefficients depends on the
// function consuming it.
type Polynomial = []fr.Element

// Commit commits to a polynomial in evaluation (Lagrange) form using a
// multi exponentiation against the Lagrange-basis points of the SRS.
//
// This is a pure function of (SRS, evaluations): no blinding term is
// applied, so re-deriving the commitment from the same inputs yields
// the identical group element.
func Commit(evaluations Polynomial, ck *CommitKey) (*Commitment, error) {
	if len(evaluations) == 0 || len(evaluations) > len(ck.Lagrange) {
		return nil, ErrInvalidPolynomialSize
	}

	return multiexp.MultiExp(evaluations, ck.Lagrange[:len(evaluations)], 0)
}

// CommitCoeff commits to a polynomial in coefficient (monomial) form.
//
// A polynomial committed with Commit in evaluation form and with
// CommitCoeff in coefficient form yields the same commitment.
func CommitCoeff(coeffs Polynomial, ck *CommitKey) (*Commitment, error) {
	if len(coeffs) == 0 || len(coeffs) > len(ck.Monomial) {
		return nil, ErrInvalidPolynomialSize
	}

	return multiexp.MultiExp(coeffs, ck.Monomial[:len(coeffs)], 0)
}
