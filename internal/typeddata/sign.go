package typeddata

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ParsePrivateKey parses a secp256k1 private key from a hex string, with or
// without a 0x prefix. Malformed input wraps ErrInvalidKey.
func ParsePrivateKey(key string) (*ecdsa.PrivateKey, error) {
	key = strings.TrimPrefix(key, "0x")
	prv, err := crypto.HexToECDSA(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return prv, nil
}

// PrivateKeyFromBytes parses a raw 32-byte secp256k1 private key.
func PrivateKeyFromBytes(key []byte) (*ecdsa.PrivateKey, error) {
	prv, err := crypto.ToECDSA(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return prv, nil
}

// Sign hashes the concatenated payload segments and produces a recoverable
// signature formatted as r (32 bytes) || s (32 bytes) || recovery id + 27,
// hex-encoded with a 0x prefix. Signing is deterministic: the same payload
// and key always yield the same signature.
func Sign(segments [][]byte, prv *ecdsa.PrivateKey) (string, error) {
	digest := Digest(segments)
	sig, err := crypto.Sign(digest[:], prv)
	if err != nil {
		return "", err
	}
	sig[64] += 27
	return hexutil.Encode(sig), nil
}

// SignHex is Sign with the key supplied as a hex string.
func SignHex(segments [][]byte, privateKey string) (string, error) {
	prv, err := ParsePrivateKey(privateKey)
	if err != nil {
		return "", err
	}
	return Sign(segments, prv)
}

// Recover returns the address that produced signature over the payload
// segments. Accepts both 0/1 and 27/28 recovery values.
func Recover(segments [][]byte, signature string) (common.Address, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid signature: %w", err)
	}
	if len(sig) != 65 {
		return common.Address{}, fmt.Errorf("invalid signature length: %d", len(sig))
	}
	if sig[64] >= 27 {
		sig = append([]byte{}, sig...)
		sig[64] -= 27
	}
	digest := Digest(segments)
	pub, err := crypto.SigToPub(digest[:], sig)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*pub), nil
}
