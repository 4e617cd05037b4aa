package kzg

import (
	"fmt"
	"math/big"
	"math/bits"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Domain is the set of n-th roots of unity the bit vector is
// interpolated over. All parties in a deployment share one domain,
// fixed at setup time.
type Domain struct {
	Cardinality    uint64
	CardinalityInv fr.Element
	// Generator for the multiplicative subgroup
	// Not the primitive generator for the field
	Generator    fr.Element
	GeneratorInv fr.Element

	// Roots of unity for the multiplicative subgroup
	Roots []fr.Element
}

// NewDomain returns the evaluation domain of size `NextPowerOfTwo(m)`.
//
// Copied and modified from fft.NewDomain in gnark-crypto.
func NewDomain(m uint64) *Domain {
	domain := &Domain{}
	x := ecc.NextPowerOfTwo(m)
	domain.Cardinality = uint64(x)

	// Generator of the largest 2-adic subgroup
	var rootOfUnity fr.Element
	rootOfUnity.SetString("10238227357739495823651030575849232062558860180284477541189508159991286009131")
	const maxOrderRoot uint64 = 32

	// Find generator for Z/2^(log(m))Z
	logx := uint64(bits.TrailingZeros64(x))
	if logx > maxOrderRoot {
		panic(fmt.Sprintf("m (%d) is too big: the required root of unity does not exist", m))
	}

	expo := uint64(1 << (maxOrderRoot - logx))
	domain.Generator.Exp(rootOfUnity, big.NewInt(int64(expo))) // order x
	domain.GeneratorInv.Inverse(&domain.Generator)
	domain.CardinalityInv.SetUint64(uint64(x)).Inverse(&domain.CardinalityInv)

	domain.Roots = make([]fr.Element, x)
	current := fr.One()
	for i := uint64(0); i < x; i++ {
		domain.Roots[i] = current
		current.Mul(&current, &domain.Generator)
	}

	return domain
}

// NewExtendedDomain returns the domain of twice the cardinality of `d`.
//
// Both generators are powers of the same 2-adic root of unity, so the
// extended generator squares to `d.Generator`. The batch opening
// transform relies on this.
func NewExtendedDomain(d *Domain) *Domain {
	return NewDomain(2 * d.Cardinality)
}
