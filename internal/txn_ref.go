package internal

import (
	"fmt"
	"github.com/google/uuid"
	"strings"
	"sync/atomic"
	"time"
)

const txnRefPrefix = "ORDER"

// ReferenceGenerator produces gateway transaction references.
type ReferenceGenerator interface {
	Next(now time.Time) string
}

// TimeReference derives the reference from the wall clock (hour, minute,
// second). Two requests within the same second collide.
type TimeReference struct{}

func (TimeReference) Next(now time.Time) string {
	return txnRefPrefix + now.Format("150405")
}

// RandomReference uses a random UUID.
type RandomReference struct{}

func (RandomReference) Next(_ time.Time) string {
	return txnRefPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// SequenceReference combines a node id, the process start time and a
// monotonic counter, unique across nodes with distinct ids.
type SequenceReference struct {
	node    string
	start   string
	counter atomic.Uint64
}

func NewSequenceReference(node string, start time.Time) *SequenceReference {
	return &SequenceReference{
		node:  node,
		start: start.UTC().Format("060102150405"),
	}
}

func (r *SequenceReference) Next(_ time.Time) string {
	return fmt.Sprintf("%s%s%s%06d", txnRefPrefix, r.node, r.start, r.counter.Add(1))
}

// NewReferenceGenerator selects a generator by configuration name.
func NewReferenceGenerator(kind, node string) ReferenceGenerator {
	switch kind {
	case "time":
		return TimeReference{}
	case "sequence":
		return NewSequenceReference(node, time.Now())
	default:
		return RandomReference{}
	}
}
