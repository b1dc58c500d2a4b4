package id

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestGenerate(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	if id1.String() == id2.String() {
		t.Error("Generated IDs should be unique")
	}
	if id2.Compare(id1) <= 0 {
		t.Error("Monotonic IDs should increase")
	}
}

func TestNewRequestID(t *testing.T) {
	id := NewRequestID()

	if !strings.HasPrefix(id.String(), "req_") {
		t.Errorf("ID should start with 'req_', got: %s", id)
	}
	if len(id.String()) != len("req_")+26 {
		t.Errorf("unexpected ID length: %s", id)
	}
	if !IsValid(id.String()) {
		t.Errorf("ID should be valid: %s", id)
	}
}

func TestTimestamp(t *testing.T) {
	before := time.Now().Add(-time.Second)
	id := NewRequestID()

	ts, err := id.Timestamp()
	if err != nil {
		t.Fatalf("Timestamp failed: %v", err)
	}
	if ts.Before(before) || ts.After(time.Now().Add(time.Second)) {
		t.Errorf("timestamp %v out of range", ts)
	}
}

func TestIsValidRejects(t *testing.T) {
	for _, s := range []string{"", "req_", "01ARZ3NDEKTSV4RRFFQ69G5FAV", "sess_01ARZ3NDEKTSV4RRFFQ69G5FAV", "req_not-a-ulid"} {
		if IsValid(s) {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestConcurrentGeneration(t *testing.T) {
	const n = 200
	seen := sync.Map{}
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := NewRequestID()
			if _, dup := seen.LoadOrStore(id, true); dup {
				t.Errorf("duplicate id %s", id)
			}
		}()
	}
	wg.Wait()
}
