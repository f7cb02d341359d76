package repository

import (
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-matchmaker/internal/entity"
)

// QueueOrder decides which waiting player is paired first.
type QueueOrder string

const (
	// OrderLIFO pairs the most recent arrival first.
	OrderLIFO QueueOrder = "lifo"
	// OrderFIFO pairs the longest waiting player first.
	OrderFIFO QueueOrder = "fifo"
)

// ParseQueueOrder - accepts "lifo" or "fifo", an empty string means lifo.
func ParseQueueOrder(s string) (QueueOrder, error) {
	switch QueueOrder(s) {
	case "", OrderLIFO:
		return OrderLIFO, nil
	case OrderFIFO:
		return OrderFIFO, nil
	default:
		return "", fmt.Errorf("unknown queue order %q", s)
	}
}

// WaitingQueue holds players waiting for an opponent.
type WaitingQueue struct {
	mu      sync.RWMutex
	order   QueueOrder
	entries []entity.WaitingEntry
}

func NewWaitingQueue(order QueueOrder) *WaitingQueue {
	if order == "" {
		order = OrderLIFO
	}

	return &WaitingQueue{order: order}
}

// PopOrPush - runs one pairing decision under the queue lock.
// When somebody waits, their entry is handed to pair and removed once pair
// returns nil; an error from pair leaves the queue unchanged. When nobody
// waits, the entry built by enqueue is appended. The bool reports a pairing.
func (that *WaitingQueue) PopOrPush(
	pair func(other entity.WaitingEntry) error,
	enqueue func() entity.WaitingEntry,
) (entity.WaitingEntry, bool, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.entries) == 0 {
		entry := enqueue()
		that.entries = append(that.entries, entry)

		return entry, false, nil
	}

	idx := that.next()
	other := that.entries[idx]

	if err := pair(other); err != nil {
		return other, false, err
	}

	that.entries = append(that.entries[:idx], that.entries[idx+1:]...)

	return other, true, nil
}

// Contains - reports whether the player is still waiting.
func (that *WaitingQueue) Contains(player entity.PlayerID) bool {
	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, entry := range that.entries {
		if entry.Player == player {
			return true
		}
	}

	return false
}

func (that *WaitingQueue) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.entries)
}

func (that *WaitingQueue) Order() QueueOrder {
	return that.order
}

func (that *WaitingQueue) next() int {
	if that.order == OrderFIFO {
		return 0
	}
	return len(that.entries) - 1
}
