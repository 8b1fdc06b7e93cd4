package typeddata

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

const testKey = "0x8da4ef21b864d2cc526dbdb2a120bd2874c36c9d0a1fb7f8c63d7f7a8b41de8f"

func TestSignMailboxPayload(t *testing.T) {
	segments, err := Encode(mailboxTypedData())
	require.NoError(t, err)

	sig, err := SignHex(segments, testKey)
	require.NoError(t, err)
	require.Len(t, sig, 132)
	require.True(t, strings.HasPrefix(sig, "0x"))

	raw, err := hexutil.Decode(sig)
	require.NoError(t, err)
	require.Len(t, raw, 65)
	require.Contains(t, []byte{27, 28}, raw[64])
}

func TestSignDeterministic(t *testing.T) {
	segments, err := Encode(mailboxTypedData())
	require.NoError(t, err)

	first, err := SignHex(segments, testKey)
	require.NoError(t, err)
	second, err := SignHex(segments, testKey)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRecoverSigner(t *testing.T) {
	segments, err := Encode(mailboxTypedData())
	require.NoError(t, err)

	prv, err := ParsePrivateKey(testKey)
	require.NoError(t, err)
	sig, err := Sign(segments, prv)
	require.NoError(t, err)

	addr, err := Recover(segments, sig)
	require.NoError(t, err)
	require.Equal(t, crypto.PubkeyToAddress(prv.PublicKey), addr)
}

func TestParsePrivateKey(t *testing.T) {
	withPrefix, err := ParsePrivateKey(testKey)
	require.NoError(t, err)
	withoutPrefix, err := ParsePrivateKey(strings.TrimPrefix(testKey, "0x"))
	require.NoError(t, err)
	require.Equal(t, withPrefix.D, withoutPrefix.D)

	for _, key := range []string{"", "0x", "nothex", "0xabcd", testKey + "00"} {
		_, err := ParsePrivateKey(key)
		require.ErrorIs(t, err, ErrInvalidKey)
	}
}

func TestPrivateKeyFromBytes(t *testing.T) {
	raw, err := hex.DecodeString(strings.TrimPrefix(testKey, "0x"))
	require.NoError(t, err)

	prv, err := PrivateKeyFromBytes(raw)
	require.NoError(t, err)
	parsed, err := ParsePrivateKey(testKey)
	require.NoError(t, err)
	require.Equal(t, parsed.D, prv.D)

	_, err = PrivateKeyFromBytes(raw[:16])
	require.ErrorIs(t, err, ErrInvalidKey)
}
