package recipes

import (
	"context"
	"sync"

	"recipe-backend/internal/shared/telemetry"
)

// WatchHub fans out recipe list snapshots to per-user subscribers. Each
// subscriber holds a buffered channel of size one; a slow consumer only
// ever sees the most recent snapshot, older ones are dropped.
type WatchHub struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]chan []Recipe // userId -> subscriber id -> channel
}

// NewWatchHub constructs an empty hub.
func NewWatchHub() *WatchHub {
	return &WatchHub{
		subs: make(map[string]map[int]chan []Recipe),
	}
}

// Subscribe registers a listener for a user's recipe list. The returned
// cancel function must be called on teardown; it closes the channel.
func (h *WatchHub) Subscribe(userId string) (<-chan []Recipe, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	ch := make(chan []Recipe, 1)

	if h.subs[userId] == nil {
		h.subs[userId] = make(map[int]chan []Recipe)
	}
	h.subs[userId][id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		userSubs := h.subs[userId]
		if userSubs == nil {
			return
		}
		if sub, ok := userSubs[id]; ok {
			delete(userSubs, id)
			close(sub)
		}
		if len(userSubs) == 0 {
			delete(h.subs, userId)
		}
	}
	return ch, cancel
}

// Publish delivers a snapshot to every subscriber of the user. When a
// subscriber's buffer is full the stale snapshot is replaced by the new one.
func (h *WatchHub) Publish(userId string, snapshot []Recipe) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[userId] {
		select {
		case ch <- snapshot:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}

// HasSubscribers reports whether anyone is watching the user's list.
func (h *WatchHub) HasSubscribers(userId string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[userId]) > 0
}

// notifyWatchers pushes a fresh snapshot to the user's subscribers after a
// mutation. Skipped entirely when nobody is watching.
func (s *Service) notifyWatchers(ctx context.Context, userId string) {
	if s.Hub == nil || !s.Hub.HasSubscribers(userId) {
		return
	}
	snapshot, err := s.Repo.ListByUser(ctx, userId)
	if err != nil {
		telemetry.Warn("recipes.watch.snapshot_failed", map[string]any{
			"user_id": userId,
			"err":     err.Error(),
		})
		return
	}
	s.Hub.Publish(userId, snapshot)
}
