// Package serialization defines the canonical byte encodings for the
// group elements and scalars that cross the wire: commitments, opening
// proofs, transfer messages and parameter files.
package serialization

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/crate-crypto/go-laconic-ot/internal/utils"
)

// Number of bytes of a compressed G1 group element.
const CompressedG1Size = 48

// Number of bytes of a compressed G2 group element.
const CompressedG2Size = 96

// Number of bytes of a serialized scalar of the G1 group order.
const SerializedScalarSize = 32

type G1Point = [CompressedG1Size]byte
type G2Point = [CompressedG2Size]byte
type Scalar = [SerializedScalarSize]byte

func SerializeG1Point(affine bls12381.G1Affine) G1Point {
	return affine.Bytes()
}

// DeserializeG1Point decodes a compressed G1 point. Off-curve and
// off-subgroup encodings are rejected; the subgroup check is the
// expensive part.
func DeserializeG1Point(serPoint G1Point) (bls12381.G1Affine, error) {
	var point bls12381.G1Affine
	if _, err := point.SetBytes(serPoint[:]); err != nil {
		return bls12381.G1Affine{}, err
	}
	return point, nil
}

func SerializeG2Point(affine bls12381.G2Affine) G2Point {
	return affine.Bytes()
}

// DeserializeG2Point decodes a compressed G2 point, with the same
// curve and subgroup checks as its G1 counterpart.
func DeserializeG2Point(serPoint G2Point) (bls12381.G2Affine, error) {
	var point bls12381.G2Affine
	if _, err := point.SetBytes(serPoint[:]); err != nil {
		return bls12381.G2Affine{}, err
	}
	return point, nil
}

// SerializeScalar encodes a field element in little-endian form.
//
// gnark-crypto uses big-endian, so the bytes are reversed.
func SerializeScalar(element fr.Element) Scalar {
	byts := element.Bytes()
	utils.Reverse(byts[:])
	return byts
}

// DeserializeScalar decodes a little-endian scalar, rejecting
// non-canonical encodings.
func DeserializeScalar(serScalar Scalar) (fr.Element, error) {
	utils.Reverse(serScalar[:])
	scalar, err := utils.ReduceCanonical(serScalar[:])
	if err != nil {
		return fr.Element{}, ErrNonCanonicalScalar
	}
	return scalar, nil
}
