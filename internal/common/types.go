package common

import (
	"fmt"

	"github.com/holiman/uint256"
)

// DomainParams are the query parameters accepted by the domain-separator
// endpoint, decoded with gorilla/schema.
type DomainParams struct {
	Name              string `schema:"name"`
	Version           string `schema:"version"`
	ChainID           string `schema:"chainId"`
	VerifyingContract string `schema:"verifyingContract"`
}

// ChainIDValue parses the chainId query parameter as a decimal uint256.
// An omitted parameter falls back to Ethereum mainnet.
func (p DomainParams) ChainIDValue() (*uint256.Int, error) {
	if p.ChainID == "" {
		return uint256.NewInt(uint64(EthereumMainnet)), nil
	}
	id, err := uint256.FromDecimal(p.ChainID)
	if err != nil {
		return nil, fmt.Errorf("invalid chainId %q: %w", p.ChainID, err)
	}
	return id, nil
}

// EncodeResponse carries the hex-encoded payload segments and the digest of
// their concatenation.
type EncodeResponse struct {
	Segments []string `json:"segments"`
	Digest   string   `json:"digest"`
}

// TypeStringResponse carries the canonical type signature and its keccak256.
type TypeStringResponse struct {
	TypeString string `json:"typeString"`
	TypeHash   string `json:"typeHash"`
}

// DomainSeparatorResponse carries the struct hash of an EIP712Domain record.
type DomainSeparatorResponse struct {
	DomainSeparator string `json:"domainSeparator"`
}
