package manager

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"typedsigner/internal/common"
	"typedsigner/internal/typeddata"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/imkira/go-ttlmap"
	_ "github.com/joho/godotenv/autoload"
)

// Manager keeps recently produced signatures (keyed by payload digest) and a
// cache of canonical type strings. Both stores are TTL-bound; nothing is
// persisted.
type Manager struct {
	*common.Broadcaster

	signatures  *ttlmap.Map
	typeStrings *ttlmap.Map
	resultTTL   time.Duration
	logger      *log.Logger
}

func NewManager(logger *log.Logger) *Manager {
	options := &ttlmap.Options{
		InitialCapacity: 32,
		OnWillExpire: func(key string, item ttlmap.Item) {
			logger.Printf("expired: [%s]", key)
		},
	}

	resultTTL := ResultTTL
	if secs, err := strconv.Atoi(os.Getenv("RESULT_TTL_SECONDS")); err == nil && secs > 0 {
		resultTTL = time.Second * time.Duration(secs)
	}

	return &Manager{
		Broadcaster: common.NewBroadcaster(logger),
		signatures:  ttlmap.New(options),
		typeStrings: ttlmap.New(options),
		resultTTL:   resultTTL,
		logger:      logger,
	}
}

func (m *Manager) SetSignature(entry *SignatureEntry) error {
	return m.signatures.Set(entry.Digest, ttlmap.NewItem(entry, ttlmap.WithTTL(m.resultTTL)), nil)
}

func (m *Manager) GetSignature(digest string) (*SignatureEntry, error) {
	item, err := m.signatures.Get(digest)
	if err != nil {
		return nil, fmt.Errorf("signature not found: %s", digest)
	}

	entry, ok := (item.Value()).(*SignatureEntry)
	if !ok || entry == nil {
		return nil, fmt.Errorf("invalid signature entry for digest: %s", digest)
	}

	return entry, nil
}

// TypeString returns the canonical type signature for primaryType, consulting
// the cache first. The cache key fingerprints the whole type table, so two
// distinct declaration sets never share an entry.
func (m *Manager) TypeString(primaryType string, types typeddata.Types) (string, error) {
	key, err := typeStringKey(primaryType, types)
	if err != nil {
		return "", err
	}

	if item, err := m.typeStrings.Get(key); err == nil {
		if cached, ok := (item.Value()).(string); ok {
			return cached, nil
		}
	}

	s, err := typeddata.TypeString(primaryType, types)
	if err != nil {
		return "", err
	}

	if err := m.typeStrings.Set(key, ttlmap.NewItem(s, ttlmap.WithTTL(TypeStringTTL)), nil); err != nil {
		return "", err
	}
	return s, nil
}

func typeStringKey(primaryType string, types typeddata.Types) (string, error) {
	// json.Marshal sorts map keys, so the fingerprint is deterministic.
	raw, err := json.Marshal(types)
	if err != nil {
		return "", err
	}
	return primaryType + ":" + hex.EncodeToString(crypto.Keccak256(raw)), nil
}

func (m *Manager) Close() {
	m.signatures.Drain()
	m.typeStrings.Drain()
	m.Broadcaster.Close()
}
