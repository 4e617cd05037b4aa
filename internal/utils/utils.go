package utils

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Reverses the list in-place
func Reverse[K interface{}](list []K) {
	last := len(list) - 1
	for i := 0; i < len(list)/2; i++ {
		list[i], list[last-i] = list[last-i], list[i]
	}
}

// Tries to convert a byte slice to a field element.
// Returns an error if the byte slice was not a canonical representation
// of the field element.
// Canonical meaning that the big integer interpretation was less than
// the field's prime. ie it lies within the range [0, p-1] (inclusive)
func ReduceCanonical(serScalar []byte) (fr.Element, error) {
	var scalar fr.Element
	err := scalar.SetBytesCanonical(serScalar)
	return scalar, err
}
