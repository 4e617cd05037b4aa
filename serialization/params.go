package serialization

import (
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// Parameter files start with a fixed header:
//
//	0..4   magic "lotp"
//	4      format version, currently 1
//	5      form byte, FormFull or FormSender
//	6      backend byte, BackendPlain or BackendCertified
//	7      degree exponent k, the supported vector length is n = 1 << k
//
// A full file carries the n monomial G1 powers followed by g2 and sG2.
// A sender file carries only g1, g2 and sG2: enough to run the sending
// side, far too little to open the commitment anywhere.
var paramsMagic = [4]byte{'l', 'o', 't', 'p'}

const paramsVersion = 1

const paramsHeaderSize = 8

type Form uint8

const (
	FormFull   Form = 0
	FormSender Form = 1
)

type BackendID uint8

const (
	BackendPlain     BackendID = 0
	BackendCertified BackendID = 1
)

// The extended domain has size 2n, so k is bounded one below the
// two-adicity of the scalar field.
const maxDegreeExp = 31

// ParamsFile is the decoded form of a parameter file.
//
// Monomial is populated for FormFull only; its first entry is the G1
// generator. For FormSender only GenG1 is populated on the G1 side.
type ParamsFile struct {
	Form      Form
	Backend   BackendID
	DegreeExp uint8

	Monomial []bls12381.G1Affine
	GenG1    bls12381.G1Affine
	GenG2    bls12381.G2Affine
	AlphaG2  bls12381.G2Affine
}

func (p *ParamsFile) encodedSize() int {
	size := paramsHeaderSize + 2*CompressedG2Size
	if p.Form == FormFull {
		size += (1 << p.DegreeExp) * CompressedG1Size
	} else {
		size += CompressedG1Size
	}
	return size
}

// Encode serializes the parameter file into its wire form.
func (p *ParamsFile) Encode() ([]byte, error) {
	if p.Form != FormFull && p.Form != FormSender {
		return nil, ErrBadForm
	}
	if p.Backend != BackendPlain && p.Backend != BackendCertified {
		return nil, ErrBadBackend
	}
	if p.DegreeExp > maxDegreeExp {
		return nil, ErrUnsupportedDegree
	}

	out := make([]byte, 0, p.encodedSize())
	out = append(out, paramsMagic[:]...)
	out = append(out, paramsVersion, byte(p.Form), byte(p.Backend), p.DegreeExp)

	if p.Form == FormFull {
		n := 1 << p.DegreeExp
		if len(p.Monomial) != n {
			return nil, fmt.Errorf("monomial basis has %d points, expected %d", len(p.Monomial), n)
		}
		for i := range p.Monomial {
			ser := SerializeG1Point(p.Monomial[i])
			out = append(out, ser[:]...)
		}
	} else {
		ser := SerializeG1Point(p.GenG1)
		out = append(out, ser[:]...)
	}

	serG2 := SerializeG2Point(p.GenG2)
	out = append(out, serG2[:]...)
	serAlpha := SerializeG2Point(p.AlphaG2)
	out = append(out, serAlpha[:]...)

	return out, nil
}

// DecodeParamsFile parses and validates a parameter file. Every group
// element is subgroup-checked, so decoding a full file for a large n
// is not cheap.
func DecodeParamsFile(data []byte) (*ParamsFile, error) {
	if len(data) < paramsHeaderSize {
		return nil, fmt.Errorf("%w: header", ErrTruncated)
	}
	if [4]byte(data[:4]) != paramsMagic {
		return nil, ErrBadMagic
	}
	if data[4] != paramsVersion {
		return nil, fmt.Errorf("%w: got %d", ErrBadVersion, data[4])
	}

	p := &ParamsFile{
		Form:      Form(data[5]),
		Backend:   BackendID(data[6]),
		DegreeExp: data[7],
	}
	if p.Form != FormFull && p.Form != FormSender {
		return nil, ErrBadForm
	}
	if p.Backend != BackendPlain && p.Backend != BackendCertified {
		return nil, ErrBadBackend
	}
	if p.DegreeExp > maxDegreeExp {
		return nil, ErrUnsupportedDegree
	}
	if len(data) != p.encodedSize() {
		if len(data) < p.encodedSize() {
			return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrTruncated, len(data), p.encodedSize())
		}
		return nil, ErrTrailingBytes
	}

	rest := data[paramsHeaderSize:]
	if p.Form == FormFull {
		n := 1 << p.DegreeExp
		p.Monomial = make([]bls12381.G1Affine, n)
		for i := 0; i < n; i++ {
			point, err := DeserializeG1Point(G1Point(rest[:CompressedG1Size]))
			if err != nil {
				return nil, fmt.Errorf("monomial point %d: %w", i, err)
			}
			p.Monomial[i] = point
			rest = rest[CompressedG1Size:]
		}
		p.GenG1 = p.Monomial[0]
	} else {
		point, err := DeserializeG1Point(G1Point(rest[:CompressedG1Size]))
		if err != nil {
			return nil, fmt.Errorf("g1 generator: %w", err)
		}
		p.GenG1 = point
		rest = rest[CompressedG1Size:]
	}

	genG2, err := DeserializeG2Point(G2Point(rest[:CompressedG2Size]))
	if err != nil {
		return nil, fmt.Errorf("g2 generator: %w", err)
	}
	p.GenG2 = genG2
	rest = rest[CompressedG2Size:]

	alphaG2, err := DeserializeG2Point(G2Point(rest[:CompressedG2Size]))
	if err != nil {
		return nil, fmt.Errorf("g2 secret power: %w", err)
	}
	p.AlphaG2 = alphaG2

	return p, nil
}
