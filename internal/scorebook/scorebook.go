// Package scorebook keeps the best score and a bounded, most-recent-first
// history of final scores on top of a key-value store.
package scorebook

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	KeyBestScore = "best_score"
	KeyHistory   = "previous_scores"
)

// KV is the persistence collaborator. Get reports absent keys with false.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// Book records final scores.
type Book struct {
	mu       sync.Mutex
	kv       KV
	maxSaved int
	logger   *log.Logger
}

// New creates a Book keeping at most maxSaved history entries.
func New(kv KV, maxSaved int, logger *log.Logger) *Book {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if maxSaved < 1 {
		maxSaved = 1
	}
	return &Book{kv: kv, maxSaved: maxSaved, logger: logger}
}

// Record inserts score at the front of the history, drops entries beyond
// the cap and raises the best score if score beats it.
func (b *Book) Record(score int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	history := append([]int{score}, b.history()...)
	if len(history) > b.maxSaved {
		history = history[:b.maxSaved]
	}
	data, err := msgpack.Marshal(history)
	if err != nil {
		return fmt.Errorf("scorebook: encode history: %w", err)
	}
	if err := b.kv.Set(KeyHistory, data); err != nil {
		return fmt.Errorf("scorebook: save history: %w", err)
	}

	if score <= b.best() {
		return nil
	}
	data, err = msgpack.Marshal(score)
	if err != nil {
		return fmt.Errorf("scorebook: encode best: %w", err)
	}
	if err := b.kv.Set(KeyBestScore, data); err != nil {
		return fmt.Errorf("scorebook: save best: %w", err)
	}
	b.logger.Info("new best score", "score", score)
	return nil
}

// History returns saved scores, most recent first. Missing or malformed
// data reads as an empty history.
func (b *Book) History() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history()
}

// Best returns the best score, or 0 when none is saved.
func (b *Book) Best() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.best()
}

// Reset clears the best score and the history.
func (b *Book) Reset() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for key, value := range map[string]any{KeyHistory: []int{}, KeyBestScore: 0} {
		data, err := msgpack.Marshal(value)
		if err != nil {
			return fmt.Errorf("scorebook: encode %s: %w", key, err)
		}
		if err := b.kv.Set(key, data); err != nil {
			return fmt.Errorf("scorebook: reset %s: %w", key, err)
		}
	}
	return nil
}

func (b *Book) history() []int {
	data, ok, err := b.kv.Get(KeyHistory)
	if err != nil {
		b.logger.Warn("cannot read score history", "err", err)
		return nil
	}
	if !ok || len(data) == 0 {
		return nil
	}
	var scores []int
	if err := msgpack.Unmarshal(data, &scores); err != nil {
		b.logger.Warn("discarding malformed score history", "err", err)
		return nil
	}
	if len(scores) > b.maxSaved {
		scores = scores[:b.maxSaved]
	}
	return scores
}

func (b *Book) best() int {
	data, ok, err := b.kv.Get(KeyBestScore)
	if err != nil {
		b.logger.Warn("cannot read best score", "err", err)
		return 0
	}
	if !ok || len(data) == 0 {
		return 0
	}
	var best int
	if err := msgpack.Unmarshal(data, &best); err != nil {
		b.logger.Warn("discarding malformed best score", "err", err)
		return 0
	}
	return best
}

// MemoryKV is an in-process KV, used when no database is available.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}
