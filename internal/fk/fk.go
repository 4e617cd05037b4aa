// Package fk implements the Feist-Khovratovich technique for producing
// the KZG opening proofs at every point of an evaluation domain at
// once.
//
// Producing a single opening costs O(n) field operations, so opening at
// all n domain points directly costs O(n^2). The transform below
// computes the same n quotient commitments with two FFTs over a domain
// of size 2n and one pointwise scalar-by-point multiplication, for
// O(n log n) total. The receiver needs every opening to be able to
// answer transfers at arbitrary indices, which is what makes the
// amortization load-bearing.
package fk

import (
	"fmt"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/sync/errgroup"

	"github.com/crate-crypto/go-laconic-ot/internal/kzg"
)

// PrecomputedY is the forward FFT, over the extended domain, of the
// reversed and zero-padded monomial SRS slice. It depends only on the
// SRS and the domain, so it is computed once and reused for every
// batch opening against that SRS.
type PrecomputedY []bls12381.G1Affine

// PrecomputeY builds the reusable half of the batch opening transform.
//
// With d = n - 1, the vector transformed is
//
//	[s_{d-1}, s_{d-2}, ..., s_0, 0, ..., 0]   (d+2 identity points)
//
// where s_i are the monomial G1 powers of the SRS.
func PrecomputeY(ck *kzg.CommitKey, domain, extDomain *kzg.Domain) (PrecomputedY, error) {
	n := int(domain.Cardinality)
	d := n - 1

	if len(ck.Monomial) < d {
		return nil, fmt.Errorf("%w: srs has %d monomial powers, domain of size %d needs %d",
			ErrSRSTooSmall, len(ck.Monomial), n, d)
	}
	if int(extDomain.Cardinality) != 2*n {
		return nil, fmt.Errorf("%w: extended domain has size %d, expected %d",
			ErrExtendedDomainSize, extDomain.Cardinality, 2*n)
	}

	sHat := make([]bls12381.G1Affine, 2*n)
	for i := 0; i < d; i++ {
		sHat[i] = ck.Monomial[d-1-i]
	}
	// The remaining d+2 entries stay at the identity.

	y, err := extDomain.FftG1(sHat)
	if err != nil {
		return nil, err
	}
	return PrecomputedY(y), nil
}

// OpenAll returns the opening proofs q_0..q_{n-1} for the vector
// `evals` (in evaluation form over `domain`) at every domain point, in
// evaluation order: q_i opens at root ω^i.
//
// Each returned proof is curve-point-equal to the one produced by
// kzg.Open at the same point.
func OpenAll(y PrecomputedY, domain, extDomain *kzg.Domain, evals []fr.Element) ([]bls12381.G1Affine, error) {
	n := int(domain.Cardinality)
	d := n - 1

	if len(evals) != n {
		return nil, fmt.Errorf("%w: got %d evaluations, domain has size %d",
			ErrEvaluationsSize, len(evals), n)
	}
	if len(y) != 2*n {
		return nil, fmt.Errorf("%w: precomputed vector has size %d, expected %d",
			ErrPrecomputedYSize, len(y), 2*n)
	}
	if int(extDomain.Cardinality) != 2*n {
		return nil, fmt.Errorf("%w: extended domain has size %d, expected %d",
			ErrExtendedDomainSize, extDomain.Cardinality, 2*n)
	}

	coeffs, err := domain.IfftFr(evals)
	if err != nil {
		return nil, err
	}

	// Arrange the coefficients for the circular convolution with the
	// reversed SRS powers: c_d at positions 0 and d+1, then c_0..c_{d-1}.
	cHat := make([]fr.Element, 2*n)
	cHat[0] = coeffs[d]
	cHat[d+1] = coeffs[d]
	copy(cHat[d+2:], coeffs[:d])

	hHat, err := extDomain.FftFr(cHat)
	if err != nil {
		return nil, err
	}

	u, err := pointwiseMul(y, hHat)
	if err != nil {
		return nil, err
	}

	// The inverse FFT applies the 1/(2n) normalizer for the extended
	// domain. The first d entries are the commitments to the quotient
	// polynomials h_0..h_{d-1}; the rest is convolution spill.
	hComms, err := extDomain.IfftG1(u)
	if err != nil {
		return nil, err
	}

	qs := make([]bls12381.G1Affine, n)
	copy(qs, hComms[:d])
	// q_d is the commitment to the zero polynomial.
	qs[d] = bls12381.G1Affine{}

	return domain.FftG1(qs)
}

// pointwiseMul computes u_j = scalars_j * points_j across a worker
// group. The entries are independent, so the split is by contiguous
// chunks.
func pointwiseMul(points []bls12381.G1Affine, scalars []fr.Element) ([]bls12381.G1Affine, error) {
	if len(points) != len(scalars) {
		return nil, fmt.Errorf("%w: %d points against %d scalars",
			ErrPointwiseMismatch, len(points), len(scalars))
	}

	const chunkSize = 256

	result := make([]bls12381.G1Affine, len(points))
	var errG errgroup.Group
	for start := 0; start < len(points); start += chunkSize {
		start := start
		end := min(start+chunkSize, len(points))
		errG.Go(func() error {
			var bi big.Int
			for j := start; j < end; j++ {
				scalars[j].BigInt(&bi)
				result[j].ScalarMultiplication(&points[j], &bi)
			}
			return nil
		})
	}
	if err := errG.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
