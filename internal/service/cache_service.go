package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/event"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
)

const (
	DefaultStatsTTL      = time.Minute
	cacheCleanupInterval = 5 * time.Minute
)

// CacheService - кэш в памяти с TTL и инвалидацией по событиям.
// Для статистики профиля хранится поколение: каждая инвалидация его
// увеличивает, и запись, прочитанная до инвалидации, в кэш уже не попадёт.
type CacheService struct {
	mu          sync.RWMutex
	cache       map[string]*cacheEntry
	generations map[uuid.UUID]uint64
	statsTTL    time.Duration
	now         func() time.Time
}

type cacheEntry struct {
	data      interface{}
	expiresAt time.Time
}

var _ event.Handler = (*CacheService)(nil)

// NewCacheService создаёт кэш. Очистка просроченных записей идёт до отмены ctx.
func NewCacheService(ctx context.Context, statsTTL time.Duration) *CacheService {
	if statsTTL <= 0 {
		statsTTL = DefaultStatsTTL
	}
	cs := &CacheService{
		cache:       make(map[string]*cacheEntry),
		generations: make(map[uuid.UUID]uint64),
		statsTTL:    statsTTL,
		now:         time.Now,
	}

	go cs.cleanup(ctx)

	return cs
}

func statsCacheKey(userID uuid.UUID) string {
	return "stats:" + userID.String()
}

// GetStats возвращает копию закэшированной статистики профиля и текущее
// поколение. Поколение нужно передать в SetStats после чтения из хранилища.
func (cs *CacheService) GetStats(userID uuid.UUID) (*entity.ProfileStats, uint64, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	gen := cs.generations[userID]
	entry, exists := cs.cache[statsCacheKey(userID)]
	if !exists || cs.now().After(entry.expiresAt) {
		return nil, gen, false
	}
	stats, ok := entry.data.(entity.ProfileStats)
	if !ok {
		return nil, gen, false
	}
	return &stats, gen, true
}

// SetStats кладёт статистику в кэш, только если с момента чтения поколения
// не было инвалидации.
func (cs *CacheService) SetStats(stats *entity.ProfileStats, gen uint64) bool {
	if stats == nil {
		return false
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.generations[stats.UserID] != gen {
		return false
	}
	cs.cache[statsCacheKey(stats.UserID)] = &cacheEntry{
		data:      *stats,
		expiresAt: cs.now().Add(cs.statsTTL),
	}
	return true
}

// InvalidateUserCache удаляет статистику пользователей и сдвигает их поколения.
func (cs *CacheService) InvalidateUserCache(userIDs ...uuid.UUID) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	for _, id := range userIDs {
		delete(cs.cache, statsCacheKey(id))
		cs.generations[id]++
	}
}

func (cs *CacheService) Name() string { return "stats-cache" }

func (cs *CacheService) CanHandle(eventType string) bool {
	switch eventType {
	case event.TypeRequestChanged, event.TypeRatingSubmitted, event.TypeDisputeResolved:
		return true
	}
	return false
}

// Handle сбрасывает статистику участников, чьи агрегаты могли измениться.
func (cs *CacheService) Handle(_ context.Context, e event.Event) error {
	switch ev := e.(type) {
	case event.RequestChange:
		if ev.Record != nil && ev.Record.Status == valueobject.RequestStatusCompleted && ev.StatusChanged() {
			cs.InvalidateUserCache(ev.Record.BuyerID, ev.Record.SellerID)
		}
	case event.RatingSubmitted:
		if ev.Rating != nil {
			cs.InvalidateUserCache(ev.Rating.RateeID)
		}
	case event.DisputeResolved:
		if ev.Request != nil {
			cs.InvalidateUserCache(ev.Request.BuyerID, ev.Request.SellerID)
		}
	}
	return nil
}

func (cs *CacheService) cleanup(ctx context.Context) {
	ticker := time.NewTicker(cacheCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cs.mu.Lock()
			now := cs.now()
			for key, entry := range cs.cache {
				if now.After(entry.expiresAt) {
					delete(cs.cache, key)
				}
			}
			cs.mu.Unlock()
		}
	}
}
