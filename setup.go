package laconicot

import (
	"math/big"

	"github.com/crate-crypto/go-laconic-ot/internal/fk"
	"github.com/crate-crypto/go-laconic-ot/internal/kzg"
	"github.com/crate-crypto/go-laconic-ot/serialization"
)

// The extended domain used by batch opening has size 2n, so the degree
// exponent is bounded one below the two-adicity of the scalar field.
const maxDegreeExp = 31

// Params holds everything the receiver side needs: the full SRS, the
// evaluation domains, and the precomputed table that drives batch
// opening. Params are immutable after creation and safe for concurrent
// use.
type Params struct {
	backend   Backend
	degreeExp uint8

	domain    *kzg.Domain
	extDomain *kzg.Domain
	srs       *kzg.SRS
	precompY  fk.PrecomputedY
}

// Setup generates parameters for vectors of length up to 1<<degreeExp,
// sampling a fresh SRS secret from crypto/rand. The secret is discarded
// after the powers are computed; for multi-party deployments the SRS
// would instead come from a trusted-setup ceremony via DecodeParams.
func Setup(degreeExp uint8, backend Backend) (*Params, error) {
	if backend != Plain && backend != Certified {
		return nil, ErrUnsupportedBackend
	}
	if degreeExp > maxDegreeExp {
		return nil, ErrDegreeTooLarge
	}

	domain := kzg.NewDomain(1 << degreeExp)
	srs, err := kzg.NewSRS(*domain)
	if err != nil {
		return nil, err
	}
	return newParams(backend, degreeExp, domain, srs)
}

// SetupInsecure is Setup with a caller-chosen SRS secret. Test use
// only.
func SetupInsecure(degreeExp uint8, backend Backend, secret *big.Int) (*Params, error) {
	if backend != Plain && backend != Certified {
		return nil, ErrUnsupportedBackend
	}
	if degreeExp > maxDegreeExp {
		return nil, ErrDegreeTooLarge
	}

	domain := kzg.NewDomain(1 << degreeExp)
	srs, err := kzg.NewSRSInsecure(*domain, secret)
	if err != nil {
		return nil, err
	}
	return newParams(backend, degreeExp, domain, srs)
}

func newParams(backend Backend, degreeExp uint8, domain *kzg.Domain, srs *kzg.SRS) (*Params, error) {
	extDomain := kzg.NewExtendedDomain(domain)
	precompY, err := fk.PrecomputeY(&srs.CommitKey, domain, extDomain)
	if err != nil {
		return nil, err
	}
	return &Params{
		backend:   backend,
		degreeExp: degreeExp,
		domain:    domain,
		extDomain: extDomain,
		srs:       srs,
		precompY:  precompY,
	}, nil
}

func (p *Params) Backend() Backend { return p.backend }

// NumBits returns the maximum vector length the parameters support.
func (p *Params) NumBits() uint64 { return 1 << p.degreeExp }

// SenderParams projects the minimal public material a sender needs:
// three group elements and the domain description. A sender working
// from this projection cannot commit or open, only transfer.
func (p *Params) SenderParams() *SenderParams {
	return &SenderParams{
		backend:   p.backend,
		degreeExp: p.degreeExp,
		domain:    p.domain,
		openKey:   p.srs.OpeningKey,
	}
}

// Encode serializes the full parameters. The evaluation domains,
// Lagrange basis and batch-opening table are recomputed on decode
// rather than shipped.
func (p *Params) Encode() ([]byte, error) {
	file := &serialization.ParamsFile{
		Form:      serialization.FormFull,
		Backend:   wireBackend(p.backend),
		DegreeExp: p.degreeExp,
		Monomial:  p.srs.CommitKey.Monomial,
		GenG1:     p.srs.OpeningKey.GenG1,
		GenG2:     p.srs.OpeningKey.GenG2,
		AlphaG2:   p.srs.OpeningKey.AlphaG2,
	}
	return file.Encode()
}

// DecodeParams parses a full parameter file and rebuilds the derived
// material. Group elements are subgroup-checked during decoding.
func DecodeParams(data []byte) (*Params, error) {
	file, err := serialization.DecodeParamsFile(data)
	if err != nil {
		return nil, err
	}
	if file.Form != serialization.FormFull {
		return nil, ErrMalformedWire
	}

	domain := kzg.NewDomain(1 << file.DegreeExp)
	lagrange, err := domain.IfftG1(file.Monomial)
	if err != nil {
		return nil, err
	}
	srs := &kzg.SRS{
		CommitKey: kzg.CommitKey{
			Monomial: file.Monomial,
			Lagrange: lagrange,
		},
		OpeningKey: kzg.OpeningKey{
			GenG1:   file.GenG1,
			GenG2:   file.GenG2,
			AlphaG2: file.AlphaG2,
		},
	}
	return newParams(hostBackend(file.Backend), file.DegreeExp, domain, srs)
}

// SenderParams is the sender-side projection of Params: enough to run
// transfers and verify certificates, nothing more.
type SenderParams struct {
	backend   Backend
	degreeExp uint8

	domain  *kzg.Domain
	openKey kzg.OpeningKey
}

func (sp *SenderParams) Backend() Backend { return sp.backend }

// NumBits returns the maximum vector length the parameters support.
func (sp *SenderParams) NumBits() uint64 { return 1 << sp.degreeExp }

// Encode serializes the sender-side parameters.
func (sp *SenderParams) Encode() ([]byte, error) {
	file := &serialization.ParamsFile{
		Form:      serialization.FormSender,
		Backend:   wireBackend(sp.backend),
		DegreeExp: sp.degreeExp,
		GenG1:     sp.openKey.GenG1,
		GenG2:     sp.openKey.GenG2,
		AlphaG2:   sp.openKey.AlphaG2,
	}
	return file.Encode()
}

// DecodeSenderParams parses a sender-side parameter file.
func DecodeSenderParams(data []byte) (*SenderParams, error) {
	file, err := serialization.DecodeParamsFile(data)
	if err != nil {
		return nil, err
	}
	if file.Form != serialization.FormSender {
		return nil, ErrMalformedWire
	}
	return &SenderParams{
		backend:   hostBackend(file.Backend),
		degreeExp: file.DegreeExp,
		domain:    kzg.NewDomain(1 << file.DegreeExp),
		openKey: kzg.OpeningKey{
			GenG1:   file.GenG1,
			GenG2:   file.GenG2,
			AlphaG2: file.AlphaG2,
		},
	}, nil
}

func wireBackend(b Backend) serialization.BackendID {
	if b == Certified {
		return serialization.BackendCertified
	}
	return serialization.BackendPlain
}

func hostBackend(b serialization.BackendID) Backend {
	if b == serialization.BackendCertified {
		return Certified
	}
	return Plain
}
