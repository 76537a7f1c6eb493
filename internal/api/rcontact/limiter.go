package rcontact

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/the-dev-tools/folio/pkg/cachettl"
)

// limiterIdle is how long a client's bucket is kept after its last submission.
const limiterIdle = 30 * time.Minute

// clientLimiter hands every client IP its own token bucket.
type clientLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	buckets *cachettl.Cache[string, *rate.Limiter]
}

// newClientLimiter allows perMinute submissions per client. A non positive
// rate disables limiting.
func newClientLimiter(perMinute float64, burst int) *clientLimiter {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Limit(perMinute / 60)
	}
	return &clientLimiter{
		limit:   limit,
		burst:   burst,
		buckets: cachettl.New[string, *rate.Limiter](limiterIdle, limiterIdle),
	}
}

func (l *clientLimiter) allow(ip string, now time.Time) bool {
	if l.limit == rate.Inf {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets.Get(ip)
	if !ok {
		b = rate.NewLimiter(l.limit, l.burst)
		l.buckets.Set(ip, b)
	} else {
		l.buckets.Touch(ip)
	}
	return b.AllowN(now, 1)
}

func (l *clientLimiter) close() {
	l.buckets.Close()
}

// clientIP keys a submission. Forwarding headers are only honoured when the
// peer is a trusted proxy, anyone else could pick a fresh address per request.
// The X-Forwarded-For chain is walked from the right and the first hop that is
// not itself a trusted proxy wins.
func clientIP(header http.Header, peerAddr string, trusted []netip.Prefix) string {
	peer := peerAddr
	if host, _, err := net.SplitHostPort(peerAddr); err == nil {
		peer = host
	}
	if !isTrusted(peer, trusted) {
		return peer
	}
	if fwd := header.Get("X-Forwarded-For"); fwd != "" {
		hops := strings.Split(fwd, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if _, err := netip.ParseAddr(hop); err != nil {
				break
			}
			if i == 0 || !isTrusted(hop, trusted) {
				return hop
			}
		}
		return peer
	}
	if ip := strings.TrimSpace(header.Get("X-Real-Ip")); ip != "" {
		if _, err := netip.ParseAddr(ip); err == nil {
			return ip
		}
	}
	return peer
}

func isTrusted(ip string, trusted []netip.Prefix) bool {
	if len(trusted) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
