package model

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// IDGenerator issues field ids. position is the field's index within the
// batch being created, which keeps ids distinct when several fields are
// created within the same clock tick.
type IDGenerator interface {
	NewID(t FieldType, position int) string
}

// IDGeneratorFunc adapts a function into an IDGenerator.
type IDGeneratorFunc func(t FieldType, position int) string

// NewID calls the underlying function.
func (fn IDGeneratorFunc) NewID(t FieldType, position int) string {
	return fn(t, position)
}

// IDOption configures a TimestampIDs generator.
type IDOption func(*TimestampIDs)

// WithClock overrides the time source.
func WithClock(now func() time.Time) IDOption {
	return func(g *TimestampIDs) {
		if now != nil {
			g.now = now
		}
	}
}

// WithEntropy overrides the random segment source.
func WithEntropy(random func() string) IDOption {
	return func(g *TimestampIDs) {
		if random != nil {
			g.random = random
		}
	}
}

// TimestampIDs builds ids of the form <type>-<unix millis>-<random>-<position>.
type TimestampIDs struct {
	now    func() time.Time
	random func() string
}

// NewIDGenerator returns the default id generator.
func NewIDGenerator(options ...IDOption) *TimestampIDs {
	g := &TimestampIDs{
		now:    time.Now,
		random: randomSegment,
	}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// NewID implements IDGenerator.
func (g *TimestampIDs) NewID(t FieldType, position int) string {
	return fmt.Sprintf("%s-%d-%s-%d", t, g.now().UnixMilli(), g.random(), position)
}

// randomSegment takes 48 random bits from a v4 UUID.
func randomSegment() string {
	id := uuid.New()
	return hex.EncodeToString(id[:6])
}
