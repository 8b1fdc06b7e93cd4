package common

import (
	"log"
	"sync"
)

// Broadcaster fans event payloads out to every registered receiver channel.
// Delivery is best-effort: a receiver that cannot keep up has messages
// dropped rather than blocking the rest.
type Broadcaster struct {
	mu        sync.Mutex
	nextID    uint64
	receivers map[uint64]chan []byte
	logger    *log.Logger
}

func NewBroadcaster(logger *log.Logger) *Broadcaster {
	return &Broadcaster{
		receivers: make(map[uint64]chan []byte),
		logger:    logger,
	}
}

func (b *Broadcaster) RegisterReceiver(receiver chan []byte) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.receivers[id] = receiver
	b.nextID++

	return id
}

func (b *Broadcaster) UnregisterReceiver(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if receiver, exists := b.receivers[id]; exists {
		close(receiver)
		delete(b.receivers, id)
	}
}

func (b *Broadcaster) Broadcast(message []byte) {
	go func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		for id, receiver := range b.receivers {
			select {
			case receiver <- message:
			default:
				// Receiver channel is full; skip it instead of
				// blocking every other subscriber.
				b.logger.Printf("dropping message for slow receiver %d", id)
			}
		}
	}()
}

func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, receiver := range b.receivers {
		close(receiver)
		delete(b.receivers, id)
	}

	b.nextID = 0
}
