package domain

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"
)

const (
	refMin = 10000
	refMax = 99999
	// MaxRefAttempts bounds the uniqueness retries before accepting a possibly colliding code.
	MaxRefAttempts = 10
)

// RefExistsFunc reports whether a ref code is already taken.
type RefExistsFunc func(ctx context.Context, ref string) (bool, error)

// RefGenerator assigns 5-digit reference codes at job creation.
// 一意性チェックと書き込みの間には競合の余地がある (トランザクションは使わない)。
type RefGenerator struct {
	mu     sync.Mutex
	rng    *rand.Rand
	exists RefExistsFunc
}

// NewRefGenerator builds a generator. A nil src seeds from the clock.
func NewRefGenerator(exists RefExistsFunc, src rand.Source) *RefGenerator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &RefGenerator{rng: rand.New(src), exists: exists}
}

func (g *RefGenerator) candidate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return strconv.Itoa(refMin + g.rng.Intn(refMax-refMin+1))
}

// Next returns a code not reported as taken, retrying up to MaxRefAttempts times.
// After that the last candidate is returned even if it collides.
func (g *RefGenerator) Next(ctx context.Context) (string, error) {
	var ref string
	for attempt := 0; attempt < MaxRefAttempts; attempt++ {
		ref = g.candidate()
		if g.exists == nil {
			return ref, nil
		}
		taken, err := g.exists(ctx, ref)
		if err != nil {
			return "", fmt.Errorf("ref uniqueness check: %w", err)
		}
		if !taken {
			return ref, nil
		}
	}
	return ref, nil
}
