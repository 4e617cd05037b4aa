package laconicot_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	laconicot "github.com/crate-crypto/go-laconic-ot"
)

func testCommitment(t *testing.T, backend laconicot.Backend) *laconicot.Com {
	t.Helper()

	params, err := laconicot.SetupInsecure(2, backend, big.NewInt(5678))
	require.NoError(t, err)
	receiver, err := laconicot.NewReceiver(params, []uint8{1, 0, 1, 1})
	require.NoError(t, err)
	return receiver.Commitment()
}

func TestComWireRoundTrip(t *testing.T) {
	for _, backend := range []laconicot.Backend{laconicot.Plain, laconicot.Certified} {
		com := testCommitment(t, backend)
		blob := com.Serialize()

		got, err := laconicot.DeserializeCom(backend, blob)
		require.NoError(t, err)
		require.Equal(t, backend, got.Backend())
		require.Equal(t, blob, got.Serialize())
	}
}

func TestComBackendMismatch(t *testing.T) {
	plainBlob := testCommitment(t, laconicot.Plain).Serialize()
	certBlob := testCommitment(t, laconicot.Certified).Serialize()

	_, err := laconicot.DeserializeCom(laconicot.Certified, plainBlob)
	require.ErrorIs(t, err, laconicot.ErrBackendMismatch)
	_, err = laconicot.DeserializeCom(laconicot.Plain, certBlob)
	require.ErrorIs(t, err, laconicot.ErrBackendMismatch)
}

func TestComDecodeFailures(t *testing.T) {
	blob := testCommitment(t, laconicot.Plain).Serialize()

	_, err := laconicot.DeserializeCom(laconicot.Plain, nil)
	require.ErrorIs(t, err, laconicot.ErrMalformedWire)

	_, err = laconicot.DeserializeCom(laconicot.Plain, blob[:10])
	require.ErrorIs(t, err, laconicot.ErrMalformedWire)

	corrupt := append([]byte{}, blob...)
	corrupt[5] ^= 0xff
	_, err = laconicot.DeserializeCom(laconicot.Plain, corrupt)
	require.ErrorIs(t, err, laconicot.ErrMalformedWire)

	_, err = laconicot.DeserializeCom(laconicot.Backend(9), blob)
	require.ErrorIs(t, err, laconicot.ErrUnsupportedBackend)
}

func TestMsgDecodeFailures(t *testing.T) {
	params, err := laconicot.SetupInsecure(2, laconicot.Plain, big.NewInt(5678))
	require.NoError(t, err)
	receiver, err := laconicot.NewReceiver(params, []uint8{0, 0, 1, 1})
	require.NoError(t, err)
	sender, err := laconicot.NewSender(params.SenderParams(), receiver.Commitment())
	require.NoError(t, err)

	msg, err := sender.Send(0, laconicot.Message{}, laconicot.Message{1})
	require.NoError(t, err)
	blob := msg.Serialize()

	got, err := laconicot.DeserializeMsg(blob)
	require.NoError(t, err)
	require.Equal(t, blob, got.Serialize())

	_, err = laconicot.DeserializeMsg(nil)
	require.ErrorIs(t, err, laconicot.ErrMalformedWire)

	wrongTag := append([]byte{}, blob...)
	wrongTag[0] = 0x01
	_, err = laconicot.DeserializeMsg(wrongTag)
	require.ErrorIs(t, err, laconicot.ErrBackendMismatch)

	_, err = laconicot.DeserializeMsg(blob[:len(blob)-1])
	require.ErrorIs(t, err, laconicot.ErrMalformedWire)

	corrupt := append([]byte{}, blob...)
	corrupt[3] ^= 0xff
	_, err = laconicot.DeserializeMsg(corrupt)
	require.ErrorIs(t, err, laconicot.ErrMalformedWire)
}

func TestSenderRequiresMatchingBackend(t *testing.T) {
	params, err := laconicot.SetupInsecure(2, laconicot.Certified, big.NewInt(5678))
	require.NoError(t, err)

	plainCom := testCommitment(t, laconicot.Plain)
	_, err = laconicot.NewSender(params.SenderParams(), plainCom)
	require.ErrorIs(t, err, laconicot.ErrBackendMismatch)
}
