// Package id generates the ULID request IDs stamped on outgoing API calls.
//
// ULIDs sort by creation time, so request IDs found in server access logs
// line up with the client's own log records. IDs carry a "req_" prefix.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// RequestID identifies one HTTP attempt against the API
type RequestID string

// RequestPrefix is prepended to every request ID
const RequestPrefix = "req"

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a new ULID generator
func NewGenerator() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewRequestID generates a new request ID
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

func (id RequestID) String() string { return string(id) }

// Timestamp extracts the creation time of a request ID
func (id RequestID) Timestamp() (time.Time, error) {
	raw, ok := strings.CutPrefix(string(id), RequestPrefix+"_")
	if !ok {
		return time.Time{}, fmt.Errorf("request id %q: missing %s_ prefix", id, RequestPrefix)
	}
	parsed, err := ulid.Parse(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("request id %q: %w", id, err)
	}
	return ulid.Time(parsed.Time()), nil
}

// IsValid checks if an ID string is a valid prefixed request ID
func IsValid(id string) bool {
	_, err := RequestID(id).Timestamp()
	return err == nil
}
