package voyage

// DefaultPool is the challenge pool used on tiles without a location.
const DefaultPool = "default"

// ChallengePool draws challenges without repetition until it runs dry,
// then starts over from the full set.
type ChallengePool struct {
	all       []Challenge
	remaining []Challenge
}

// NewChallengePool creates a pool over a copy of challenges.
func NewChallengePool(challenges []Challenge) *ChallengePool {
	p := &ChallengePool{all: make([]Challenge, len(challenges))}
	copy(p.all, challenges)
	p.refill()
	return p
}

func (p *ChallengePool) refill() {
	p.remaining = make([]Challenge, len(p.all))
	copy(p.remaining, p.all)
}

// Draw removes and returns a random challenge, or nil for an empty pool.
func (p *ChallengePool) Draw(rng Rand) Challenge {
	if len(p.all) == 0 {
		return nil
	}
	if len(p.remaining) == 0 {
		p.refill()
	}
	i := rng.IntN(len(p.remaining))
	c := p.remaining[i]
	p.remaining = append(p.remaining[:i], p.remaining[i+1:]...)
	return c
}

// Size returns the number of distinct challenges.
func (p *ChallengePool) Size() int { return len(p.all) }

// Remaining returns how many challenges are left before the pool cycles.
func (p *ChallengePool) Remaining() int { return len(p.remaining) }

// ChallengeBook holds the pools of one session, keyed by location name.
type ChallengeBook struct {
	pools map[string]*ChallengePool
}

// NewChallengeBook creates fresh pools from the given definitions.
func NewChallengeBook(defs map[string][]Challenge) *ChallengeBook {
	b := &ChallengeBook{pools: make(map[string]*ChallengePool, len(defs))}
	for name, cs := range defs {
		b.pools[name] = NewChallengePool(cs)
	}
	return b
}

// Draw returns a challenge from the named pool, or nil if there is none.
func (b *ChallengeBook) Draw(name string, rng Rand) Challenge {
	p, ok := b.pools[name]
	if !ok {
		return nil
	}
	return p.Draw(rng)
}

// Pool returns the named pool.
func (b *ChallengeBook) Pool(name string) (*ChallengePool, bool) {
	p, ok := b.pools[name]
	return p, ok
}
