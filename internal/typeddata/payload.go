package typeddata

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// \x19 avoids collision with RLP, \x01 is the structured-data version byte.
var payloadPrefix = []byte{0x19, 0x01}

// Encode assembles the signable payload for typed data as ordered segments:
// the two-byte prefix, the domain struct hash, and, unless the primary type
// is the domain type itself, the message struct hash.
func Encode(typed TypedData) ([][]byte, error) {
	domain, err := HashStruct(DomainType, typed.Domain, typed.Types)
	if err != nil {
		return nil, err
	}

	segments := [][]byte{payloadPrefix, domain.Bytes()}
	if typed.PrimaryType != DomainType {
		message, err := HashStruct(typed.PrimaryType, typed.Message, typed.Types)
		if err != nil {
			return nil, err
		}
		segments = append(segments, message.Bytes())
	}
	return segments, nil
}

// Digest is the keccak256 of the concatenated payload segments, i.e. the
// 32-byte value a signature over the payload commits to.
func Digest(segments [][]byte) common.Hash {
	return crypto.Keccak256Hash(segments...)
}
