package kzg

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Proof to the claim that a polynomial f(x) was evaluated at a point `a` and
// resulted in `f(a)`
type OpeningProof struct {
	// Commitment to the quotient polynomial (f - f(a))/(x-a)
	QuotientComm bls12381.G1Affine

	// Point that we are evaluating the polynomial at : `a`
	InputPoint fr.Element

	// ClaimedValue purported value : `f(a)`
	ClaimedValue fr.Element
}

// Open creates a KZG proof that a polynomial f(x), given in coefficient
// form, evaluates to f(a) at `a`.
//
// This is the direct method: evaluate by Horner's rule, synthetic-divide
// by (x - a), commit to the quotient. It costs a full pass over the
// coefficients per point. The batch opening engine produces all openings
// over the domain at once; this function is the reference it is checked
// against, and the path used for openings at arbitrary points.
func Open(coeffs Polynomial, point fr.Element, ck *CommitKey) (OpeningProof, error) {
	if len(coeffs) == 0 || len(coeffs) > len(ck.Monomial) {
		return OpeningProof{}, ErrInvalidPolynomialSize
	}

	claimedValue := EvaluateCoeffForm(coeffs, point)

	res := OpeningProof{
		InputPoint:   point,
		ClaimedValue: claimedValue,
	}

	quotient := DivideByLinear(coeffs, point, claimedValue)
	if len(quotient) == 0 {
		// Constant polynomial; the quotient is zero and its commitment
		// is the identity.
		res.QuotientComm = bls12381.G1Affine{}
		return res, nil
	}

	quotientComm, err := CommitCoeff(quotient, ck)
	if err != nil {
		return OpeningProof{}, err
	}
	res.QuotientComm.Set(quotientComm)

	return res, nil
}

// EvaluateCoeffForm evaluates a polynomial in coefficient form at
// `point` using Horner's rule.
func EvaluateCoeffForm(coeffs Polynomial, point fr.Element) fr.Element {
	var result fr.Element
	for i := len(coeffs) - 1; i >= 0; i-- {
		result.Mul(&result, &point)
		result.Add(&result, &coeffs[i])
	}
	return result
}

// DivideByLinear computes the quotient q(x) = (f(x) - f(a)) / (x - a)
// by synthetic division, where f is given by its coefficients and
// fa = f(a). The remainder of the division is f(a) and is dropped.
func DivideByLinear(coeffs Polynomial, a, fa fr.Element) Polynomial {
	n := len(coeffs)
	if n <= 1 {
		return Polynomial{}
	}

	quotient := make(Polynomial, n-1)
	quotient[n-2] = coeffs[n-1]
	for i := n - 2; i >= 1; i-- {
		quotient[i-1].Mul(&a, &quotient[i])
		quotient[i-1].Add(&quotient[i-1], &coeffs[i])
	}

	return quotient
}
