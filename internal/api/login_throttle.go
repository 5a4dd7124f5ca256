package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	loginAttemptsLimit  = 8
	loginAttemptsWindow = 15 * time.Minute

	// Expired windows are swept once this many clients are tracked.
	loginThrottleSweepSize = 1024
)

type failureWindow struct {
	started  time.Time
	failures int
}

// loginThrottle counts failed sign-ins per client in fixed windows. State is
// process local and lost on restart.
type loginThrottle struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string]failureWindow
}

func newLoginThrottle(limit int, window time.Duration) *loginThrottle {
	return &loginThrottle{
		limit:   limit,
		window:  window,
		clients: make(map[string]failureWindow),
	}
}

func (throttle *loginThrottle) blocked(client string, now time.Time) bool {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	current, ok := throttle.activeLocked(client, now)
	return ok && current.failures >= throttle.limit
}

func (throttle *loginThrottle) fail(client string, now time.Time) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	current, ok := throttle.activeLocked(client, now)
	if !ok {
		if len(throttle.clients) >= loginThrottleSweepSize {
			throttle.sweepLocked(now)
		}
		current = failureWindow{started: now}
	}
	current.failures++
	throttle.clients[client] = current
}

func (throttle *loginThrottle) clear(client string) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()
	delete(throttle.clients, client)
}

func (throttle *loginThrottle) activeLocked(client string, now time.Time) (failureWindow, bool) {
	current, ok := throttle.clients[client]
	if !ok {
		return failureWindow{}, false
	}
	if now.Sub(current.started) >= throttle.window {
		delete(throttle.clients, client)
		return failureWindow{}, false
	}
	return current, true
}

func (throttle *loginThrottle) sweepLocked(now time.Time) {
	for client, current := range throttle.clients {
		if now.Sub(current.started) >= throttle.window {
			delete(throttle.clients, client)
		}
	}
}

func loginClientKey(c *fiber.Ctx) string {
	if ip := strings.TrimSpace(c.IP()); ip != "" {
		return ip
	}
	return "unknown"
}
