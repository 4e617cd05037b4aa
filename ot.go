package laconicot

// OT bundles parameters and backend choice into one handle, so callers
// that do not need to split the receiver and sender roles across
// processes can drive the whole protocol from a single value.
//
// An OT is immutable and safe for concurrent use.
type OT struct {
	params *Params
}

// NewOT generates fresh parameters for the given backend and vector
// length 1<<degreeExp. Deployments that share parameters between
// parties should instead exchange an encoded Params and use
// NewOTFromParams.
func NewOT(backend Backend, degreeExp uint8) (*OT, error) {
	params, err := Setup(degreeExp, backend)
	if err != nil {
		return nil, err
	}
	return &OT{params: params}, nil
}

// NewOTFromParams wraps existing parameters.
func NewOTFromParams(params *Params) *OT {
	return &OT{params: params}
}

func (o *OT) Params() *Params  { return o.params }
func (o *OT) Backend() Backend { return o.params.backend }
func (o *OT) NumBits() uint64  { return o.params.NumBits() }

// NewReceiver commits to the bit vector under this instance's
// parameters and backend.
func (o *OT) NewReceiver(bits []uint8) (*Receiver, error) {
	return NewReceiver(o.params, bits)
}

// NewSender validates the commitment and prepares transfers under this
// instance's parameters and backend.
func (o *OT) NewSender(com *Com) (*Sender, error) {
	return NewSender(o.params.SenderParams(), com)
}

// DeserializeCom parses a wire commitment, rejecting tags from the
// other backend.
func (o *OT) DeserializeCom(data []byte) (*Com, error) {
	return DeserializeCom(o.params.backend, data)
}
