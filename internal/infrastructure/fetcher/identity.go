package fetcher

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"ReviewScanner/internal/config"
)

// Identity is the client-identifying header set sent with a request.
type Identity struct {
	UserAgent string
}

// IdentityFunc returns the identity for the next request. Implementations must be safe for concurrent use.
type IdentityFunc func() Identity

// StaticIdentity always returns the same user agent.
func StaticIdentity(userAgent string) IdentityFunc {
	return func() Identity { return Identity{UserAgent: userAgent} }
}

// RoundRobinIdentities cycles through the pool in order.
func RoundRobinIdentities(pool []string) IdentityFunc {
	pool = append([]string(nil), pool...)
	var next atomic.Uint64
	return func() Identity {
		if len(pool) == 0 {
			return Identity{}
		}
		i := next.Add(1) - 1
		return Identity{UserAgent: pool[i%uint64(len(pool))]}
	}
}

// RandomIdentities picks a pool entry uniformly at random. A nil src uses the global generator.
func RandomIdentities(pool []string, src rand.Source) IdentityFunc {
	pool = append([]string(nil), pool...)
	var (
		mu  sync.Mutex
		rng *rand.Rand
	)
	if src != nil {
		rng = rand.New(src)
	}
	return func() Identity {
		if len(pool) == 0 {
			return Identity{}
		}
		if rng == nil {
			return Identity{UserAgent: pool[rand.IntN(len(pool))]}
		}
		mu.Lock()
		defer mu.Unlock()
		return Identity{UserAgent: pool[rng.IntN(len(pool))]}
	}
}

// IdentitiesFromConfig builds the rotation strategy named in the fetcher config.
func IdentitiesFromConfig(cfg config.FetcherConfig) IdentityFunc {
	if cfg.Rotation == config.RotationRoundRobin {
		return RoundRobinIdentities(cfg.UserAgents)
	}
	return RandomIdentities(cfg.UserAgents, nil)
}
