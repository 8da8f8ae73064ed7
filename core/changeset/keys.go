// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package changeset

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"github.com/rs/xid"
)

// MaxRandomKey is the largest numeric suffix RandomKeys hands out.
const MaxRandomKey = 1000

// KeyGenerator produces record keys. exists reports whether a key is already
// in use; the generated key must not be one of them.
type KeyGenerator interface {
	Generate(recordType string, exists func(string) bool) (string, error)
}

// RandomKeys generates keys of the form "<type>-<n>" with n drawn uniformly
// from [1, MaxRandomKey], drawing again on collision. The zero value draws
// from a runtime seeded source.
type RandomKeys struct {
	rand *rand.Rand
}

// NewRandomKeys returns a RandomKeys seeded from the runtime source.
func NewRandomKeys() *RandomKeys {
	return NewSeededRandomKeys(rand.Uint64(), rand.Uint64())
}

// NewSeededRandomKeys returns a RandomKeys with a deterministic sequence.
func NewSeededRandomKeys(seed1, seed2 uint64) *RandomKeys {
	return &RandomKeys{rand: rand.New(rand.NewPCG(seed1, seed2))}
}

// Generate implements KeyGenerator.
func (g *RandomKeys) Generate(recordType string, exists func(string) bool) (string, error) {
	if g.rand == nil {
		g.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	// Drawing is quick while the space is sparse. Past that, scan it once
	// so a full space is reported rather than spun on.
	for attempt := 0; attempt < MaxRandomKey; attempt++ {
		key := randomKey(recordType, g.rand.IntN(MaxRandomKey)+1)
		if !exists(key) {
			return key, nil
		}
	}
	var free []string
	for n := 1; n <= MaxRandomKey; n++ {
		if key := randomKey(recordType, n); !exists(key) {
			free = append(free, key)
		}
	}
	if len(free) == 0 {
		return "", errors.Errorf("no free %q keys left", recordType)
	}
	return free[g.rand.IntN(len(free))], nil
}

func randomKey(recordType string, n int) string {
	return fmt.Sprintf("%s-%d", recordType, n)
}

// SequentialKeys generates keys of the form "<type>-<n>" counting up from 1
// per record type. The zero value is ready to use.
type SequentialKeys struct {
	next map[string]int
}

// NewSequentialKeys returns a SequentialKeys starting at 1 for every type.
func NewSequentialKeys() *SequentialKeys {
	return &SequentialKeys{next: make(map[string]int)}
}

// Generate implements KeyGenerator.
func (g *SequentialKeys) Generate(recordType string, exists func(string) bool) (string, error) {
	if g.next == nil {
		g.next = make(map[string]int)
	}
	for {
		g.next[recordType]++
		key := fmt.Sprintf("%s-%d", recordType, g.next[recordType])
		if !exists(key) {
			return key, nil
		}
	}
}

// UUIDKeys generates keys of the form "<type>-<uuid>".
type UUIDKeys struct{}

// Generate implements KeyGenerator.
func (UUIDKeys) Generate(recordType string, exists func(string) bool) (string, error) {
	for {
		id, err := uuid.NewRandom()
		if err != nil {
			return "", errors.Annotate(err, "generating key")
		}
		if key := recordType + "-" + id.String(); !exists(key) {
			return key, nil
		}
	}
}

// XIDKeys generates keys of the form "<type>-<xid>". The suffixes sort in
// creation order.
type XIDKeys struct{}

// Generate implements KeyGenerator.
func (XIDKeys) Generate(recordType string, exists func(string) bool) (string, error) {
	for {
		if key := recordType + "-" + xid.New().String(); !exists(key) {
			return key, nil
		}
	}
}
