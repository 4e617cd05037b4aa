package laconicot

import (
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/crate-crypto/go-laconic-ot/boolproof"
	"github.com/crate-crypto/go-laconic-ot/internal/kzg"
	"github.com/crate-crypto/go-laconic-ot/serialization"
)

// Wire formats are tag-prefixed so that a blob produced under one
// backend cannot be fed to the other by accident; the tag is checked
// when the object is constructed from bytes, not later at use.
const (
	comTagPlain     byte = 0x01
	comTagCertified byte = 0x02
	msgTag          byte = 0x03
)

const (
	comSizePlain = 1 + serialization.CompressedG1Size
	certSize     = 3*serialization.CompressedG1Size + 2*serialization.SerializedScalarSize
	comSizeCert  = comSizePlain + certSize

	msgSize = 1 + 2*serialization.CompressedG2Size + 2*MessageSize
)

// Com is the receiver's first-round message: a commitment to the bit
// vector, plus a well-formedness certificate under the certified
// backend.
type Com struct {
	backend Backend
	point   kzg.Commitment
	cert    *boolproof.Certificate
}

func (c *Com) Backend() Backend { return c.backend }

// Serialize encodes the commitment in its tagged wire form.
func (c *Com) Serialize() []byte {
	out := make([]byte, 0, comSizeCert)
	if c.backend == Certified {
		out = append(out, comTagCertified)
	} else {
		out = append(out, comTagPlain)
	}
	point := serialization.SerializeG1Point(c.point)
	out = append(out, point[:]...)

	if c.backend == Certified {
		q := serialization.SerializeG1Point(c.cert.QuotientComm)
		out = append(out, q[:]...)
		fe := serialization.SerializeScalar(c.cert.FEval)
		out = append(out, fe[:]...)
		qe := serialization.SerializeScalar(c.cert.QEval)
		out = append(out, qe[:]...)
		fp := serialization.SerializeG1Point(c.cert.FProof)
		out = append(out, fp[:]...)
		qp := serialization.SerializeG1Point(c.cert.QProof)
		out = append(out, qp[:]...)
	}
	return out
}

// DeserializeCom parses a tagged commitment for the given backend. A
// tag produced under the other backend is rejected here, before any
// group decoding happens.
func DeserializeCom(backend Backend, data []byte) (*Com, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("%w: empty commitment", ErrMalformedWire)
	}
	var wantTag byte
	var wantSize int
	switch backend {
	case Plain:
		wantTag, wantSize = comTagPlain, comSizePlain
	case Certified:
		wantTag, wantSize = comTagCertified, comSizeCert
	default:
		return nil, ErrUnsupportedBackend
	}
	if data[0] != wantTag {
		return nil, ErrBackendMismatch
	}
	if len(data) != wantSize {
		return nil, fmt.Errorf("%w: commitment has %d bytes, expected %d", ErrMalformedWire, len(data), wantSize)
	}

	point, err := serialization.DeserializeG1Point(serialization.G1Point(data[1 : 1+serialization.CompressedG1Size]))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedWire, err)
	}
	com := &Com{backend: backend, point: point}
	if backend == Plain {
		return com, nil
	}

	rest := data[comSizePlain:]
	cert := &boolproof.Certificate{}
	cert.QuotientComm, err = serialization.DeserializeG1Point(serialization.G1Point(rest[:48]))
	if err != nil {
		return nil, fmt.Errorf("%w: certificate quotient: %s", ErrMalformedWire, err)
	}
	rest = rest[48:]
	cert.FEval, err = serialization.DeserializeScalar(serialization.Scalar(rest[:32]))
	if err != nil {
		return nil, fmt.Errorf("%w: certificate evaluation: %s", ErrMalformedWire, err)
	}
	rest = rest[32:]
	cert.QEval, err = serialization.DeserializeScalar(serialization.Scalar(rest[:32]))
	if err != nil {
		return nil, fmt.Errorf("%w: certificate evaluation: %s", ErrMalformedWire, err)
	}
	rest = rest[32:]
	cert.FProof, err = serialization.DeserializeG1Point(serialization.G1Point(rest[:48]))
	if err != nil {
		return nil, fmt.Errorf("%w: certificate opening: %s", ErrMalformedWire, err)
	}
	rest = rest[48:]
	cert.QProof, err = serialization.DeserializeG1Point(serialization.G1Point(rest[:48]))
	if err != nil {
		return nil, fmt.Errorf("%w: certificate opening: %s", ErrMalformedWire, err)
	}
	com.cert = cert
	return com, nil
}

// Msg is the sender's per-index transfer message: one masked message
// and one unmasking handle per branch.
type Msg struct {
	h0, h1 bls12381.G2Affine
	c0, c1 Message
}

// Serialize encodes the transfer message in its tagged wire form.
func (m *Msg) Serialize() []byte {
	out := make([]byte, 0, msgSize)
	out = append(out, msgTag)
	h0 := serialization.SerializeG2Point(m.h0)
	out = append(out, h0[:]...)
	h1 := serialization.SerializeG2Point(m.h1)
	out = append(out, h1[:]...)
	out = append(out, m.c0[:]...)
	out = append(out, m.c1[:]...)
	return out
}

// DeserializeMsg parses a tagged transfer message.
func DeserializeMsg(data []byte) (*Msg, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("%w: empty transfer message", ErrMalformedWire)
	}
	if data[0] != msgTag {
		return nil, ErrBackendMismatch
	}
	if len(data) != msgSize {
		return nil, fmt.Errorf("%w: transfer message has %d bytes, expected %d", ErrMalformedWire, len(data), msgSize)
	}

	var m Msg
	var err error
	rest := data[1:]
	m.h0, err = serialization.DeserializeG2Point(serialization.G2Point(rest[:96]))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedWire, err)
	}
	rest = rest[96:]
	m.h1, err = serialization.DeserializeG2Point(serialization.G2Point(rest[:96]))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedWire, err)
	}
	rest = rest[96:]
	copy(m.c0[:], rest[:MessageSize])
	copy(m.c1[:], rest[MessageSize:])
	return &m, nil
}
