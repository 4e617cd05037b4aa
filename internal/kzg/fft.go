package kzg

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// In this file we implement a simple version of the fft algorithm
// without any optimizations, for field elements and G1 points.
// See: https://faculty.sites.iastate.edu/jia/files/inline-files/polymultiply.pdf
// for a reference.
//
// Callers pass slices whose length equals the domain's cardinality;
// the length checks on the Domain methods surface mismatches before
// any butterfly runs.

// FftFr computes the evaluations of `values`, interpreted as the
// coefficients of a polynomial, over the domain.
func (d *Domain) FftFr(values []fr.Element) ([]fr.Element, error) {
	if uint64(len(values)) != d.Cardinality {
		return nil, ErrPolynomialMismatchedSizeDomain
	}
	return fftFr(values, d.Generator), nil
}

// IfftFr interpolates `values`, interpreted as evaluations over the
// domain, back into coefficient form.
func (d *Domain) IfftFr(values []fr.Element) ([]fr.Element, error) {
	if uint64(len(values)) != d.Cardinality {
		return nil, ErrPolynomialMismatchedSizeDomain
	}

	inverseFFT := fftFr(values, d.GeneratorInv)

	// scale by the inverse of the domain size
	for i := 0; i < len(inverseFFT); i++ {
		inverseFFT[i].Mul(&inverseFFT[i], &d.CardinalityInv)
	}
	return inverseFFT, nil
}

// FftG1 is FftFr with group elements in place of field elements.
func (d *Domain) FftG1(values []bls12381.G1Affine) ([]bls12381.G1Affine, error) {
	if uint64(len(values)) != d.Cardinality {
		return nil, ErrPolynomialMismatchedSizeDomain
	}
	return fftG1(values, d.Generator), nil
}

// IfftG1 is IfftFr with group elements in place of field elements.
func (d *Domain) IfftG1(values []bls12381.G1Affine) ([]bls12381.G1Affine, error) {
	if uint64(len(values)) != d.Cardinality {
		return nil, ErrPolynomialMismatchedSizeDomain
	}

	var invCardinalityBI big.Int
	d.CardinalityInv.BigInt(&invCardinalityBI)

	inverseFFT := fftG1(values, d.GeneratorInv)

	// scale by the inverse of the domain size
	for i := 0; i < len(inverseFFT); i++ {
		inverseFFT[i].ScalarMultiplication(&inverseFFT[i], &invCardinalityBI)
	}
	return inverseFFT, nil
}

func fftFr(values []fr.Element, nthRootOfUnity fr.Element) []fr.Element {
	n := len(values)
	if n == 1 {
		return values
	}

	var generatorSquared fr.Element
	generatorSquared.Square(&nthRootOfUnity) // generator with order n/2

	even, odd := takeEvenOdd(values)

	fftEven := fftFr(even, generatorSquared)
	fftOdd := fftFr(odd, generatorSquared)

	inputPoint := fr.One()
	evaluations := make([]fr.Element, n)
	for k := 0; k < n/2; k++ {
		var tmp fr.Element
		tmp.Mul(&inputPoint, &fftOdd[k])

		evaluations[k].Add(&fftEven[k], &tmp)
		evaluations[k+n/2].Sub(&fftEven[k], &tmp)

		inputPoint.Mul(&inputPoint, &nthRootOfUnity)
	}
	return evaluations
}

func fftG1(values []bls12381.G1Affine, nthRootOfUnity fr.Element) []bls12381.G1Affine {
	n := len(values)
	if n == 1 {
		return values
	}

	var generatorSquared fr.Element
	generatorSquared.Square(&nthRootOfUnity) // generator with order n/2

	even, odd := takeEvenOdd(values)

	fftEven := fftG1(even, generatorSquared)
	fftOdd := fftG1(odd, generatorSquared)

	inputPoint := fr.One()
	evaluations := make([]bls12381.G1Affine, n)
	for k := 0; k < n/2; k++ {
		var inputPointBI big.Int
		inputPoint.BigInt(&inputPointBI)

		var tmp bls12381.G1Affine
		tmp.ScalarMultiplication(&fftOdd[k], &inputPointBI)

		evaluations[k].Add(&fftEven[k], &tmp)
		evaluations[k+n/2].Sub(&fftEven[k], &tmp)

		inputPoint.Mul(&inputPoint, &nthRootOfUnity)
	}
	return evaluations
}

// Takes a slice and returns two slices
// The first slice contains all of the elements
// at even indices, the second slice contains
// all of the elements at odd indices
//
// We assume that the length of the input is even
// so the returned slices will be the same length.
// This is the case for a radix-2 FFT
func takeEvenOdd[T interface{}](values []T) ([]T, []T) {
	var even []T
	var odd []T
	for i := 0; i < len(values); i++ {
		if i%2 == 0 {
			even = append(even, values[i])
		} else {
			odd = append(odd, values[i])
		}
	}
	return even, odd
}
