package kzg

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

func TestRootsOfUnity(t *testing.T) {
	domain := NewDomain(16)

	if domain.Cardinality != 16 {
		t.Error("domain size should be 16")
	}

	// The generator should have order `n` exactly:
	// gen^n == 1 and gen^(n/2) != 1
	var genPowN fr.Element
	genPowN.Exp(domain.Generator, big.NewInt(int64(domain.Cardinality)))
	one := fr.One()
	if !genPowN.Equal(&one) {
		t.Error("generator raised to the domain size should be one")
	}
	var genPowHalfN fr.Element
	genPowHalfN.Exp(domain.Generator, big.NewInt(int64(domain.Cardinality/2)))
	if genPowHalfN.Equal(&one) {
		t.Error("generator order divides n/2; it is not primitive")
	}

	// Roots should be successive powers of the generator
	for i := 1; i < int(domain.Cardinality); i++ {
		var expected fr.Element
		expected.Mul(&domain.Roots[i-1], &domain.Generator)
		if !expected.Equal(&domain.Roots[i]) {
			t.Error("roots are not successive powers of the generator")
		}
	}
}

func TestExtendedDomainGenerator(t *testing.T) {
	domain := NewDomain(16)
	extDomain := NewExtendedDomain(domain)

	if extDomain.Cardinality != 2*domain.Cardinality {
		t.Error("extended domain should have twice the cardinality")
	}

	// The extended generator must be a square root of the generator,
	// since both are powers of the same 2-adic root of unity
	var squared fr.Element
	squared.Square(&extDomain.Generator)
	if !squared.Equal(&domain.Generator) {
		t.Error("extended domain generator squared should equal the domain generator")
	}
}
