package network

import (
	"errors"
	"net/url"
	"sync"
	"time"
)

var ErrNoProxies = errors.New("no proxies available")

// Rotator hands out proxies round-robin and temporarily bans any proxy
// that an upstream answers with 403 or 429.
type Rotator struct {
	proxies     []string
	banDuration time.Duration
	bannedUntil map[string]time.Time
	index       int
	mu          sync.Mutex
}

func NewRotator(raw []string, banDuration time.Duration) (*Rotator, error) {
	rotator := &Rotator{
		banDuration: banDuration,
		bannedUntil: map[string]time.Time{},
	}

	for _, proxy := range raw {
		if _, err := url.Parse(proxy); err != nil {
			return nil, err
		}
		rotator.proxies = append(rotator.proxies, proxy)
	}

	return rotator, nil
}

func (r *Rotator) Next() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.proxies) == 0 {
		return "", ErrNoProxies
	}

	start := r.index
	for {
		proxy := r.proxies[r.index]
		r.index = (r.index + 1) % len(r.proxies)

		if !r.isBanned(proxy) {
			return proxy, nil
		}

		if r.index == start {
			return "", ErrNoProxies
		}
	}
}

func (r *Rotator) Report(proxy string, status int) {
	if proxy == "" {
		return
	}
	if status != 403 && status != 429 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.bannedUntil[proxy] = time.Now().Add(r.banDuration)
}

func (r *Rotator) isBanned(proxy string) bool {
	until, ok := r.bannedUntil[proxy]
	if !ok {
		return false
	}
	if time.Now().After(until) {
		delete(r.bannedUntil, proxy)
		return false
	}
	return true
}
