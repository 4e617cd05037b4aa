package kzg

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// OpeningKey holds the elements needed to verify opening proofs and to
// run the sender side of the transfer protocol. It is the minimal
// projection of the SRS: derivable from a CommitKey, but not the other
// way around.
type OpeningKey struct {
	GenG1   bls12381.G1Affine
	GenG2   bls12381.G2Affine
	AlphaG2 bls12381.G2Affine
}

// CommitKey holds the G1 powers of the trusted-setup secret, in both
// monomial and Lagrange basis. The Lagrange basis commits to vectors in
// evaluation form; the monomial basis commits to quotient polynomials
// and feeds the batch-opening precomputation.
type CommitKey struct {
	Monomial []bls12381.G1Affine
	Lagrange []bls12381.G1Affine
}

// SRS are the public parameters for making and verifying
// commitments and opening proofs.
type SRS struct {
	CommitKey  CommitKey
	OpeningKey OpeningKey
}

// NewSRS runs the trusted setup for `domain`, sampling the secret
// scalar from a cryptographically secure source. The secret is not
// retained past this call.
func NewSRS(domain Domain) (*SRS, error) {
	var secret fr.Element
	if _, err := secret.SetRandom(); err != nil {
		return nil, err
	}

	var bAlpha big.Int
	secret.BigInt(&bAlpha)

	srs, err := newSRS(domain, &bAlpha)

	// The secret must not outlive setup.
	secret.SetZero()
	bAlpha.SetInt64(0)

	return srs, err
}

// NewSRSInsecure generates the SRS from a caller-supplied secret.
// Since the secret is known to the caller, this must never be used in
// production. It exists so tests can run against a cheap deterministic
// setup.
func NewSRSInsecure(domain Domain, bAlpha *big.Int) (*SRS, error) {
	return newSRS(domain, bAlpha)
}

func newSRS(domain Domain, bAlpha *big.Int) (*SRS, error) {
	size := domain.Cardinality
	if size < 2 {
		return nil, ErrMinSRSSize
	}

	var commitKey CommitKey
	var openKey OpeningKey
	commitKey.Monomial = make([]bls12381.G1Affine, size)

	var alpha fr.Element
	alpha.SetBigInt(bAlpha)

	_, _, gen1Aff, gen2Aff := bls12381.Generators()
	commitKey.Monomial[0] = gen1Aff
	openKey.GenG1 = gen1Aff
	openKey.GenG2 = gen2Aff
	openKey.AlphaG2.ScalarMultiplication(&gen2Aff, bAlpha)

	alphas := make([]fr.Element, size-1)
	alphas[0] = alpha
	for i := 1; i < len(alphas); i++ {
		alphas[i].Mul(&alphas[i-1], &alpha)
	}
	g1s := bls12381.BatchScalarMultiplicationG1(&gen1Aff, alphas)
	copy(commitKey.Monomial[1:], g1s)

	// Convert the monomial powers into Lagrange form, so that vectors
	// in evaluation form can be committed to directly.
	monomial := make([]bls12381.G1Affine, size)
	copy(monomial, commitKey.Monomial)
	lagrange, err := domain.IfftG1(monomial)
	if err != nil {
		return nil, err
	}
	commitKey.Lagrange = lagrange

	return &SRS{
		CommitKey:  commitKey,
		OpeningKey: openKey,
	}, nil
}
