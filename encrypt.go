package laconicot

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"golang.org/x/crypto/sha3"
)

// maskMessage XORs msg with a keystream expanded from a pairing output
// with SHAKE-256. The pad is a fresh GT element per transfer, so the
// keystream is one-time. Masking is its own inverse.
func maskMessage(pad *bls12381.GT, msg Message) Message {
	padBytes := pad.Bytes()

	shake := sha3.NewShake256()
	shake.Write(padBytes[:])

	var keystream Message
	shake.Read(keystream[:])

	var out Message
	for i := range out {
		out[i] = msg[i] ^ keystream[i]
	}
	return out
}
