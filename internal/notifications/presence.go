package notifications

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	presenceOnlineSetKey  = "presence:online"
	presenceLastSeenKeyNS = "presence:last_seen:"
	presenceLastSeenTTL   = 90 * time.Second
	presenceOfflineGrace  = 5 * time.Second
	presenceReapInterval  = 60 * time.Second
)

// PresenceTracker counts local websocket connections per user and mirrors
// liveness into Redis so every instance sees the same picture. Offline
// transitions are delayed by a short grace window, which keeps page
// reloads from flapping offline-then-online.
type PresenceTracker struct {
	rdb *redis.Client

	mu              sync.RWMutex
	conns           map[uint]int
	offlineTimers   map[uint]*time.Timer
	offlineNotified map[uint]bool
	offlineGrace    time.Duration

	onOnline  func(userID uint)
	onOffline func(userID uint)

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewPresenceTracker creates a tracker. When Redis is available it also
// starts a reaper that clears entries left behind by instances that died
// without unregistering their connections.
func NewPresenceTracker(rdb *redis.Client) *PresenceTracker {
	p := &PresenceTracker{
		rdb:             rdb,
		conns:           make(map[uint]int),
		offlineTimers:   make(map[uint]*time.Timer),
		offlineNotified: make(map[uint]bool),
		offlineGrace:    presenceOfflineGrace,
		stopCh:          make(chan struct{}),
	}
	if p.rdb != nil {
		go p.reaperLoop()
	}
	return p
}

func (p *PresenceTracker) SetCallbacks(onOnline, onOffline func(userID uint)) {
	p.mu.Lock()
	p.onOnline = onOnline
	p.onOffline = onOffline
	p.mu.Unlock()
}

func (p *PresenceTracker) SetOfflineGracePeriod(d time.Duration) {
	if d <= 0 {
		return
	}
	p.mu.Lock()
	p.offlineGrace = d
	p.mu.Unlock()
}

func (p *PresenceTracker) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopCh)
		p.mu.Lock()
		for userID, timer := range p.offlineTimers {
			if timer != nil {
				timer.Stop()
			}
			delete(p.offlineTimers, userID)
		}
		p.mu.Unlock()
	})
}

// Register records one more connection for the user and emits an online
// transition if this is their first.
func (p *PresenceTracker) Register(ctx context.Context, userID uint) {
	wasOnline := p.IsOnline(ctx, userID)

	p.mu.Lock()
	if t, ok := p.offlineTimers[userID]; ok {
		t.Stop()
		delete(p.offlineTimers, userID)
	}
	p.conns[userID]++
	p.offlineNotified[userID] = false
	p.mu.Unlock()

	p.Touch(ctx, userID)
	if !wasOnline {
		p.emitOnline(userID)
	}
}

// Touch refreshes the user's Redis liveness. Called on register and on
// websocket activity so idle-but-connected users stay visible.
func (p *PresenceTracker) Touch(ctx context.Context, userID uint) {
	if p.rdb == nil {
		return
	}
	uid := strconv.FormatUint(uint64(userID), 10)
	if err := p.rdb.SAdd(ctx, presenceOnlineSetKey, uid).Err(); err != nil {
		log.Printf("presence touch SADD failed for user %d: %v", userID, err)
	}
	if err := p.rdb.SetEx(ctx, p.lastSeenKey(userID), strconv.FormatInt(time.Now().Unix(), 10), presenceLastSeenTTL).Err(); err != nil {
		log.Printf("presence touch SETEX failed for user %d: %v", userID, err)
	}
}

// Unregister drops one connection. When the last one goes, the offline
// transition is deferred by the grace window; a reconnect within it
// cancels the transition.
func (p *PresenceTracker) Unregister(ctx context.Context, userID uint) {
	p.mu.Lock()
	if n, ok := p.conns[userID]; ok {
		n--
		if n > 0 {
			p.conns[userID] = n
			p.mu.Unlock()
			return
		}
		delete(p.conns, userID)
	}

	if t, ok := p.offlineTimers[userID]; ok {
		t.Stop()
	}
	p.offlineTimers[userID] = time.AfterFunc(p.offlineGrace, func() {
		p.finalizeOffline(context.Background(), userID)
	})
	p.mu.Unlock()
}

// IsOnline checks local connections first, then the Redis liveness key,
// so users connected to another instance still count.
func (p *PresenceTracker) IsOnline(ctx context.Context, userID uint) bool {
	p.mu.RLock()
	if p.conns[userID] > 0 {
		p.mu.RUnlock()
		return true
	}
	p.mu.RUnlock()

	if p.rdb == nil {
		return false
	}

	exists, err := p.rdb.Exists(ctx, p.lastSeenKey(userID)).Result()
	if err != nil {
		return false
	}
	return exists > 0
}

// reapOnce performs one cleanup pass: online-set members whose liveness
// key has expired are removed and, absent a local connection, reported
// offline.
func (p *PresenceTracker) reapOnce(ctx context.Context) {
	if p.rdb == nil {
		return
	}

	members, err := p.rdb.SMembers(ctx, presenceOnlineSetKey).Result()
	if err != nil {
		return
	}

	for _, raw := range members {
		id64, parseErr := strconv.ParseUint(raw, 10, 32)
		if parseErr != nil {
			continue
		}
		userID := uint(id64)
		exists, existsErr := p.rdb.Exists(ctx, p.lastSeenKey(userID)).Result()
		if existsErr != nil {
			continue
		}
		if exists > 0 {
			continue
		}

		_ = p.rdb.SRem(ctx, presenceOnlineSetKey, raw).Err()

		p.mu.RLock()
		hasLocal := p.conns[userID] > 0
		p.mu.RUnlock()
		if !hasLocal {
			p.emitOffline(userID)
		}
	}
}

func (p *PresenceTracker) reaperLoop() {
	ctx := context.Background()
	ticker := time.NewTicker(presenceReapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.reapOnce(ctx)
		}
	}
}

func (p *PresenceTracker) finalizeOffline(ctx context.Context, userID uint) {
	p.mu.Lock()
	if p.conns[userID] > 0 {
		delete(p.offlineTimers, userID)
		p.mu.Unlock()
		return
	}
	delete(p.offlineTimers, userID)
	p.mu.Unlock()

	if p.rdb != nil {
		exists, err := p.rdb.Exists(ctx, p.lastSeenKey(userID)).Result()
		if err == nil && exists > 0 {
			// Another instance refreshed liveness. Keep the user online.
			return
		}
		_ = p.rdb.SRem(ctx, presenceOnlineSetKey, strconv.FormatUint(uint64(userID), 10)).Err()
	}

	p.emitOffline(userID)
}

func (p *PresenceTracker) emitOnline(userID uint) {
	p.mu.Lock()
	p.offlineNotified[userID] = false
	cb := p.onOnline
	p.mu.Unlock()
	if cb != nil {
		cb(userID)
	}
}

func (p *PresenceTracker) emitOffline(userID uint) {
	p.mu.Lock()
	if p.offlineNotified[userID] {
		p.mu.Unlock()
		return
	}
	p.offlineNotified[userID] = true
	cb := p.onOffline
	p.mu.Unlock()
	if cb != nil {
		cb(userID)
	}
}

func (p *PresenceTracker) lastSeenKey(userID uint) string {
	return presenceLastSeenKeyNS + strconv.FormatUint(uint64(userID), 10)
}
