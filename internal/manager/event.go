package manager

import (
	"encoding/json"
)

const (
	// Signature produced event: SIGNED <SIGNATURE_ENTRY_JSON>
	SIGNED_EVENT = "SIGNED"
	// Payload encoded event: ENCODE <DIGEST_HEX>
	ENCODE_EVENT = "ENCODE"
)

func (m *Manager) HandleSignedEvent(entry *SignatureEntry) error {
	op := []byte(SIGNED_EVENT + " ")
	entryBytes, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	entryBytes = append(op, entryBytes...)
	m.Broadcast(entryBytes)
	return nil
}

func (m *Manager) HandleEncodeEvent(digest string) error {
	op := []byte(ENCODE_EVENT + " ")
	m.Broadcast(append(op, []byte(digest)...))
	return nil
}
