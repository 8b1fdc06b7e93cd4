package manager

import (
	"time"

	"github.com/google/uuid"
)

type SignatureEntry struct {
	RequestID   uuid.UUID `json:"requestId"`
	PrimaryType string    `json:"primaryType"`
	Digest      string    `json:"digest"`
	Signature   string    `json:"signature"`
	Signer      string    `json:"signer"`
	CreatedAt   time.Time `json:"createdAt"`
}
