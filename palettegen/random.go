package palettegen

import (
	"context"
	"math/rand"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/piart"
)

// Random generates harmonious palettes with evenly spaced hues. The theme
// is ignored; two generators with the same seed produce the same sequence
// of palettes.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom creates a Random generator seeded with seed.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// Generate implements Generator.
func (r *Random) Generate(ctx context.Context, req Request) (piart.Palette, error) {
	if err := ctx.Err(); err != nil {
		return piart.Palette{}, newError(ProviderRandom, req, KindTransport, err)
	}

	r.mu.Lock()
	colors := colorful.FastHappyPaletteWithRand(10, r.rng)
	r.mu.Unlock()

	var p piart.Palette
	for d, c := range colors {
		p[d] = piart.FromColorful(c)
	}
	return p, nil
}
