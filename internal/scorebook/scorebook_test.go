package scorebook

import (
	"errors"
	"testing"

	"github.com/vovakirdan/lane-rush/internal/storage"
)

type failingKV struct{}

func (failingKV) Get(string) ([]byte, bool, error) { return nil, false, errors.New("io error") }
func (failingKV) Set(string, []byte) error         { return errors.New("io error") }

func TestHistoryBound(t *testing.T) {
	const maxSaved = 10
	book := New(NewMemoryKV(), maxSaved, nil)

	for i := 1; i <= maxSaved+5; i++ {
		if err := book.Record(i * 10); err != nil {
			t.Fatalf("Record(%d): %v", i*10, err)
		}
	}

	history := book.History()
	if len(history) != maxSaved {
		t.Fatalf("history length = %d, expected %d", len(history), maxSaved)
	}
	for i, score := range history {
		if want := (maxSaved + 5 - i) * 10; score != want {
			t.Errorf("history[%d] = %d, expected %d", i, score, want)
		}
	}
}

func TestBestOnlyIncreases(t *testing.T) {
	book := New(NewMemoryKV(), 10, nil)

	tests := []struct {
		score int
		best  int
	}{
		{50, 50},
		{30, 50},
		{50, 50},
		{80, 80},
		{0, 80},
	}
	for _, tc := range tests {
		if err := book.Record(tc.score); err != nil {
			t.Fatal(err)
		}
		if got := book.Best(); got != tc.best {
			t.Errorf("after Record(%d) best = %d, expected %d", tc.score, got, tc.best)
		}
	}
}

func TestMalformedDataReadsEmpty(t *testing.T) {
	kv := NewMemoryKV()
	kv.Set(KeyHistory, []byte{0xc1, 0x00})
	kv.Set(KeyBestScore, []byte{0xc1})
	book := New(kv, 10, nil)

	if h := book.History(); len(h) != 0 {
		t.Errorf("malformed history = %v, expected empty", h)
	}
	if b := book.Best(); b != 0 {
		t.Errorf("malformed best = %d, expected 0", b)
	}

	if err := book.Record(5); err != nil {
		t.Fatal(err)
	}
	if h := book.History(); len(h) != 1 || h[0] != 5 {
		t.Errorf("history after recovery = %v", h)
	}
}

func TestEmptyBook(t *testing.T) {
	book := New(NewMemoryKV(), 10, nil)
	if book.Best() != 0 || len(book.History()) != 0 {
		t.Error("new book should be empty")
	}
}

func TestReset(t *testing.T) {
	book := New(NewMemoryKV(), 10, nil)
	book.Record(100)
	book.Record(40)

	if err := book.Reset(); err != nil {
		t.Fatal(err)
	}
	if book.Best() != 0 || len(book.History()) != 0 {
		t.Errorf("after reset best=%d history=%v", book.Best(), book.History())
	}
	book.Record(10)
	if book.Best() != 10 {
		t.Errorf("best after reset and record = %d", book.Best())
	}
}

func TestStoreFailureIsReported(t *testing.T) {
	book := New(failingKV{}, 10, nil)

	if err := book.Record(10); err == nil {
		t.Error("Record should report a store failure")
	}
	if book.Best() != 0 || book.History() != nil {
		t.Error("reads from a failing store should be empty")
	}
}

func TestBookOverSQLite(t *testing.T) {
	store, err := storage.Open(t.TempDir() + "/scores.db")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	book := New(store, 3, nil)
	for _, s := range []int{5, 25, 15, 10} {
		if err := book.Record(s); err != nil {
			t.Fatal(err)
		}
	}

	reopened := New(store, 3, nil)
	h := reopened.History()
	if len(h) != 3 || h[0] != 10 || h[1] != 15 || h[2] != 25 {
		t.Errorf("history = %v, expected [10 15 25]", h)
	}
	if reopened.Best() != 25 {
		t.Errorf("best = %d, expected 25", reopened.Best())
	}
}
