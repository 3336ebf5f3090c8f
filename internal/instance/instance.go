// Package instance derives timestamped, hashed instances from descriptors.
//
// Two digests are attached to every instance:
//
//	integrity_hash = sha256(Canonical(descriptor))
//	instance_hash  = sha256(temporal_grounding + integrity_hash)
//
// The first depends on descriptor content only and is stable across runs and
// machines. The second changes with every millisecond of the clock.
package instance

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cogcompress/internal/descriptor"
	"cogcompress/internal/logging"
)

// TimestampLayout renders temporal_grounding: UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Instance is a descriptor plus its derived fields. Field order is the output
// order: descriptor fields first, then temporal_grounding, integrity_hash and
// instance_hash.
type Instance struct {
	descriptor.Descriptor
	TemporalGrounding string `json:"temporal_grounding"`
	IntegrityHash     string `json:"integrity_hash"`
	InstanceHash      string `json:"instance_hash"`
}

// Clock supplies the current time. A returned error, or a zero time, is
// treated as an unavailable clock.
type Clock func() (time.Time, error)

// SystemClock reads the wall clock.
func SystemClock() (time.Time, error) { return time.Now(), nil }

// FormatTimestamp renders t as a temporal_grounding value.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Generator assembles instances. The zero value uses SystemClock.
type Generator struct {
	Clock  Clock
	Logger *slog.Logger
}

// NewGenerator returns a Generator reading time from clock.
func NewGenerator(clock Clock) *Generator {
	return &Generator{Clock: clock, Logger: logging.New("instance")}
}

// Generate derives a new Instance from d. It has no side effects; the only
// failure is an unavailable clock.
func (g *Generator) Generate(d *descriptor.Descriptor) (*Instance, error) {
	clock := g.Clock
	if clock == nil {
		clock = SystemClock
	}
	now, err := clock()
	if err == nil && now.IsZero() {
		err = errors.New("zero time")
	}
	if err != nil {
		return nil, descriptor.NewError(descriptor.KindClockError, d.Repository, err)
	}

	ts := FormatTimestamp(now)
	integrity := IntegrityHash(Canonical(d))

	inst := &Instance{
		Descriptor:        *d,
		TemporalGrounding: ts,
		IntegrityHash:     integrity,
		InstanceHash:      InstanceHash(ts, integrity),
	}
	inst.Attractors = append([]string{}, d.Attractors...)

	if g.Logger != nil {
		g.Logger.Debug("instance generated",
			slog.String("repository", d.Repository),
			slog.String("temporal_grounding", ts),
			slog.String("integrity_hash", integrity))
	}
	return inst, nil
}

// Marshal encodes inst as two-space indented JSON followed by a newline.
// This is the encoding shared by standard output and trace files.
func Marshal(inst *Instance) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(inst); err != nil {
		return nil, fmt.Errorf("instance: marshal: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a stored instance. The descriptor part must satisfy the
// descriptor schema and all three derived fields must be present.
func Unmarshal(data []byte) (*Instance, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("instance: decode: %w", err)
	}
	var inst Instance
	if err := json.Unmarshal(data, &inst); err != nil {
		return nil, fmt.Errorf("instance: decode: %w", err)
	}
	d, err := descriptor.Decode(inst.Repository, data)
	if err != nil {
		return nil, fmt.Errorf("instance: %w", err)
	}
	inst.Descriptor = *d

	var missing []string
	for _, key := range []string{"temporal_grounding", "integrity_hash", "instance_hash"} {
		if _, ok := raw[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("instance: missing derived fields %v", missing)
	}
	return &inst, nil
}
