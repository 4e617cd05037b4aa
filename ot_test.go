package laconicot_test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	laconicot "github.com/crate-crypto/go-laconic-ot"
)

func testParams(t *testing.T, degreeExp uint8, backend laconicot.Backend) *laconicot.Params {
	t.Helper()

	params, err := laconicot.SetupInsecure(degreeExp, backend, big.NewInt(1234))
	require.NoError(t, err)
	return params
}

func randomMessage(t *testing.T) laconicot.Message {
	t.Helper()

	var msg laconicot.Message
	_, err := rand.Read(msg[:])
	require.NoError(t, err)
	return msg
}

func randomBits(t *testing.T, n int) []uint8 {
	t.Helper()

	bits := make([]uint8, n)
	buf := make([]byte, n)
	_, err := rand.Read(buf)
	require.NoError(t, err)
	for i := range bits {
		bits[i] = buf[i] & 1
	}
	return bits
}

// runTransfer pushes every index of the bit vector through a full
// commit, send, receive round trip over the wire formats.
func runTransfer(t *testing.T, backend laconicot.Backend, degreeExp uint8, bits []uint8) {
	t.Helper()

	params := testParams(t, degreeExp, backend)

	receiver, err := laconicot.NewReceiver(params, bits)
	require.NoError(t, err)

	comBytes := receiver.Commitment().Serialize()
	com, err := laconicot.DeserializeCom(backend, comBytes)
	require.NoError(t, err)

	sender, err := laconicot.NewSender(params.SenderParams(), com)
	require.NoError(t, err)

	for i := range bits {
		msg0 := randomMessage(t)
		msg1 := randomMessage(t)

		sent, err := sender.Send(uint64(i), msg0, msg1)
		require.NoError(t, err)

		received, err := laconicot.DeserializeMsg(sent.Serialize())
		require.NoError(t, err)

		got, err := receiver.Recv(uint64(i), received)
		require.NoError(t, err)

		chosen, other := msg0, msg1
		if bits[i] == 1 {
			chosen, other = msg1, msg0
		}
		require.Equal(t, chosen, got, "index %d bit %d", i, bits[i])
		require.NotEqual(t, other, got, "index %d recovered the unchosen message", i)
	}
}

func TestTransferPlain(t *testing.T) {
	runTransfer(t, laconicot.Plain, 3, randomBits(t, 8))
}

func TestTransferCertified(t *testing.T) {
	runTransfer(t, laconicot.Certified, 3, randomBits(t, 8))
}

func TestTransferLarger(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping larger transfer in short mode")
	}
	runTransfer(t, laconicot.Plain, 6, randomBits(t, 64))
}

func TestTransferShortVectorIsPadded(t *testing.T) {
	// Committing 3 bits under 8-bit parameters: padding indices behave
	// as committed zeros.
	params := testParams(t, 3, laconicot.Plain)

	receiver, err := laconicot.NewReceiver(params, []uint8{1, 0, 1})
	require.NoError(t, err)

	sender, err := laconicot.NewSender(params.SenderParams(), receiver.Commitment())
	require.NoError(t, err)

	msg0 := randomMessage(t)
	msg1 := randomMessage(t)
	sent, err := sender.Send(5, msg0, msg1)
	require.NoError(t, err)

	got, err := receiver.Recv(5, sent)
	require.NoError(t, err)
	require.Equal(t, msg0, got)
}

func TestFreshBlindingPerSend(t *testing.T) {
	params := testParams(t, 2, laconicot.Plain)

	receiver, err := laconicot.NewReceiver(params, []uint8{1, 0, 1, 0})
	require.NoError(t, err)
	sender, err := laconicot.NewSender(params.SenderParams(), receiver.Commitment())
	require.NoError(t, err)

	msg0 := randomMessage(t)
	msg1 := randomMessage(t)

	first, err := sender.Send(0, msg0, msg1)
	require.NoError(t, err)
	second, err := sender.Send(0, msg0, msg1)
	require.NoError(t, err)
	require.NotEqual(t, first.Serialize(), second.Serialize())

	// Both decrypt to the same plaintext regardless.
	gotFirst, err := receiver.Recv(0, first)
	require.NoError(t, err)
	gotSecond, err := receiver.Recv(0, second)
	require.NoError(t, err)
	require.Equal(t, msg1, gotFirst)
	require.Equal(t, msg1, gotSecond)
}

func TestSendBatch(t *testing.T) {
	params := testParams(t, 3, laconicot.Plain)
	bits := randomBits(t, 8)

	receiver, err := laconicot.NewReceiver(params, bits)
	require.NoError(t, err)
	sender, err := laconicot.NewSender(params.SenderParams(), receiver.Commitment())
	require.NoError(t, err)

	indices := []uint64{0, 3, 7, 1}
	pairs := make([][2]laconicot.Message, len(indices))
	for i := range pairs {
		pairs[i] = [2]laconicot.Message{randomMessage(t), randomMessage(t)}
	}

	msgs, err := sender.SendBatch(indices, pairs)
	require.NoError(t, err)
	require.Len(t, msgs, len(indices))

	for i, index := range indices {
		got, err := receiver.Recv(index, msgs[i])
		require.NoError(t, err)
		require.Equal(t, pairs[i][bits[index]], got)
	}

	_, err = sender.SendBatch(indices, pairs[:2])
	require.ErrorIs(t, err, laconicot.ErrBatchMismatch)
}

func TestVectorValidation(t *testing.T) {
	params := testParams(t, 2, laconicot.Plain)

	_, err := laconicot.NewReceiver(params, nil)
	require.ErrorIs(t, err, laconicot.ErrVectorEmpty)

	_, err = laconicot.NewReceiver(params, make([]uint8, 5))
	require.ErrorIs(t, err, laconicot.ErrVectorTooLong)

	_, err = laconicot.NewReceiver(params, []uint8{0, 1, 2, 0})
	require.ErrorIs(t, err, laconicot.ErrNonBooleanBit)
}

func TestIndexOutOfRange(t *testing.T) {
	params := testParams(t, 2, laconicot.Plain)

	receiver, err := laconicot.NewReceiver(params, []uint8{0, 1, 1, 0})
	require.NoError(t, err)
	sender, err := laconicot.NewSender(params.SenderParams(), receiver.Commitment())
	require.NoError(t, err)

	_, err = sender.Send(4, laconicot.Message{}, laconicot.Message{})
	require.ErrorIs(t, err, laconicot.ErrIndexOutOfRange)

	msg, err := sender.Send(0, laconicot.Message{}, laconicot.Message{})
	require.NoError(t, err)
	_, err = receiver.Recv(4, msg)
	require.ErrorIs(t, err, laconicot.ErrIndexOutOfRange)

	_, err = receiver.Bit(4)
	require.ErrorIs(t, err, laconicot.ErrIndexOutOfRange)
}

func TestBackendsAgreeOnCommitmentPoint(t *testing.T) {
	bits := []uint8{1, 0, 0, 1}

	plain := testParams(t, 2, laconicot.Plain)
	certified := testParams(t, 2, laconicot.Certified)

	plainReceiver, err := laconicot.NewReceiver(plain, bits)
	require.NoError(t, err)
	certReceiver, err := laconicot.NewReceiver(certified, bits)
	require.NoError(t, err)

	// The commitment point is backend-independent; only the tag and the
	// attached certificate differ on the wire.
	plainBytes := plainReceiver.Commitment().Serialize()
	certBytes := certReceiver.Commitment().Serialize()
	require.Equal(t, plainBytes[1:49], certBytes[1:49])
}

func TestCertifiedRejectsTamperedCertificate(t *testing.T) {
	params := testParams(t, 3, laconicot.Certified)

	receiver, err := laconicot.NewReceiver(params, randomBits(t, 8))
	require.NoError(t, err)

	comBytes := receiver.Commitment().Serialize()
	// Flip the low byte of the certificate's claimed f(z); the scalar
	// stays canonical, so rejection comes from verification.
	comBytes[1+48+48] ^= 0x01

	com, err := laconicot.DeserializeCom(laconicot.Certified, comBytes)
	require.NoError(t, err)

	_, err = laconicot.NewSender(params.SenderParams(), com)
	require.ErrorIs(t, err, laconicot.ErrCommitmentRejected)
}

func TestSetupValidation(t *testing.T) {
	_, err := laconicot.Setup(40, laconicot.Plain)
	require.ErrorIs(t, err, laconicot.ErrDegreeTooLarge)

	_, err = laconicot.Setup(2, laconicot.Backend(9))
	require.ErrorIs(t, err, laconicot.ErrUnsupportedBackend)
}

func TestSetupFreshSecret(t *testing.T) {
	params, err := laconicot.Setup(2, laconicot.Plain)
	require.NoError(t, err)

	runReceiverSenderSmoke(t, params)
}

func runReceiverSenderSmoke(t *testing.T, params *laconicot.Params) {
	t.Helper()

	receiver, err := laconicot.NewReceiver(params, []uint8{1, 1, 0, 0})
	require.NoError(t, err)
	sender, err := laconicot.NewSender(params.SenderParams(), receiver.Commitment())
	require.NoError(t, err)

	msg0 := randomMessage(t)
	msg1 := randomMessage(t)
	sent, err := sender.Send(1, msg0, msg1)
	require.NoError(t, err)
	got, err := receiver.Recv(1, sent)
	require.NoError(t, err)
	require.Equal(t, msg1, got)
}

func TestOTFacade(t *testing.T) {
	ot := laconicot.NewOTFromParams(testParams(t, 2, laconicot.Certified))
	require.Equal(t, laconicot.Certified, ot.Backend())
	require.Equal(t, uint64(4), ot.NumBits())

	receiver, err := ot.NewReceiver([]uint8{0, 1, 1, 0})
	require.NoError(t, err)

	com, err := ot.DeserializeCom(receiver.Commitment().Serialize())
	require.NoError(t, err)

	sender, err := ot.NewSender(com)
	require.NoError(t, err)

	msg0 := randomMessage(t)
	msg1 := randomMessage(t)
	sent, err := sender.Send(2, msg0, msg1)
	require.NoError(t, err)
	got, err := receiver.Recv(2, sent)
	require.NoError(t, err)
	require.Equal(t, msg1, got)
}

func TestParamsRoundTrip(t *testing.T) {
	params := testParams(t, 3, laconicot.Certified)

	blob, err := params.Encode()
	require.NoError(t, err)
	decoded, err := laconicot.DecodeParams(blob)
	require.NoError(t, err)
	require.Equal(t, laconicot.Certified, decoded.Backend())
	require.Equal(t, uint64(8), decoded.NumBits())

	senderBlob, err := params.SenderParams().Encode()
	require.NoError(t, err)
	senderParams, err := laconicot.DecodeSenderParams(senderBlob)
	require.NoError(t, err)

	// Receiver on decoded full params, sender on decoded sender params.
	bits := randomBits(t, 8)
	receiver, err := laconicot.NewReceiver(decoded, bits)
	require.NoError(t, err)
	sender, err := laconicot.NewSender(senderParams, receiver.Commitment())
	require.NoError(t, err)

	msg0 := randomMessage(t)
	msg1 := randomMessage(t)
	sent, err := sender.Send(2, msg0, msg1)
	require.NoError(t, err)
	got, err := receiver.Recv(2, sent)
	require.NoError(t, err)
	want := msg0
	if bits[2] == 1 {
		want = msg1
	}
	require.Equal(t, want, got)

	// Form confusion is caught up front.
	_, err = laconicot.DecodeParams(senderBlob)
	require.ErrorIs(t, err, laconicot.ErrMalformedWire)
	_, err = laconicot.DecodeSenderParams(blob)
	require.ErrorIs(t, err, laconicot.ErrMalformedWire)
}
