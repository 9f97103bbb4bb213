package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type attempt struct {
	lim  *rate.Limiter
	seen time.Time
}

// attemptLimiter throttles register/login per email so a runaway caller
// cannot hammer the credential scan.
type attemptLimiter struct {
	mu      sync.Mutex
	byEmail map[string]*attempt
	r       rate.Limit
	burst   int
}

func newAttemptLimiter(rps float64, burst int) *attemptLimiter {
	al := &attemptLimiter{
		byEmail: make(map[string]*attempt),
		r:       rate.Limit(rps),
		burst:   burst,
	}
	// cleanup stale entries every minute
	go func() {
		for {
			time.Sleep(time.Minute)
			al.mu.Lock()
			for email, a := range al.byEmail {
				if time.Since(a.seen) > 3*time.Minute {
					delete(al.byEmail, email)
				}
			}
			al.mu.Unlock()
		}
	}()
	return al
}

func (al *attemptLimiter) allow(email string) bool {
	al.mu.Lock()
	defer al.mu.Unlock()
	a, ok := al.byEmail[email]
	if !ok {
		a = &attempt{lim: rate.NewLimiter(al.r, al.burst)}
		al.byEmail[email] = a
	}
	a.seen = time.Now()
	return a.lim.Allow()
}
