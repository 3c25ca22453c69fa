package service

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	"farm-advisory/internal/model"
	"farm-advisory/internal/storage"
)

// Storage keys, one per collection or singleton document
const (
	KeyCropRecommendations = "cropRecommendations"
	KeyWaterUsageHistory   = "waterUsageHistory"
	KeyCommunityPosts      = "communityPosts"
	KeyWeatherHistory      = "weatherHistory"
	KeyFarmSettings        = "farmSettings"
	KeyNotifications       = "notifications"
)

var allKeys = []string{
	KeyCropRecommendations,
	KeyWaterUsageHistory,
	KeyCommunityPosts,
	KeyWeatherHistory,
	KeyFarmSettings,
	KeyNotifications,
}

// RecordManager owns the six persisted collections of the application.
// One mutex serializes the whole surface: each operation reads the stored
// document, changes it and writes it back before the next one starts.
type RecordManager struct {
	mu    sync.Mutex
	store *storage.Store
	log   *slog.Logger
	now   func() time.Time
	ids   idGenerator

	CropRecommendations *CropRecommendationCollection
	WaterUsage          *WaterUsageCollection
	CommunityPosts      *CommunityPostCollection
	WeatherHistory      *WeatherHistoryLog
	FarmSettings        *FarmSettingsDocument
	Notifications       *NotificationCollection
}

// Option configures a RecordManager
type Option func(*RecordManager)

// WithClock replaces the wall clock used for ids and timestamps
func WithClock(now func() time.Time) Option {
	return func(m *RecordManager) {
		m.now = now
	}
}

// NewRecordManager creates a RecordManager persisting through store
func NewRecordManager(store *storage.Store, log *slog.Logger, opts ...Option) *RecordManager {
	m := &RecordManager{
		store: store,
		log:   log.With("service", "records"),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.CropRecommendations = &CropRecommendationCollection{newCollection[model.CropRecommendation](m, KeyCropRecommendations)}
	m.WaterUsage = &WaterUsageCollection{newCollection[model.WaterUsageRecord](m, KeyWaterUsageHistory)}
	posts := newCollection[model.CommunityPost](m, KeyCommunityPosts)
	posts.order = sortNewestFirst
	m.CommunityPosts = &CommunityPostCollection{posts}
	m.WeatherHistory = &WeatherHistoryLog{m: m}
	m.FarmSettings = &FarmSettingsDocument{m: m}
	m.Notifications = &NotificationCollection{newCollection[model.Notification](m, KeyNotifications)}
	return m
}

// timestamp returns the current wall-clock time in UTC
func (m *RecordManager) timestamp() time.Time {
	return m.now().UTC()
}

// nextID returns a fresh id that is not in existing and, when the ids of
// existing are numeric, larger than all of them.
func (m *RecordManager) nextID(existing []string) string {
	taken := make(map[string]bool, len(existing))
	for _, id := range existing {
		taken[id] = true
		m.ids.observe(id)
	}
	for {
		id := m.ids.next(m.now())
		if !taken[id] {
			return id
		}
	}
}

// idGenerator produces millisecond-timestamp ids. When called more than once
// in the same millisecond, when the clock steps back, or when stored ids are
// ahead of the clock, it continues from the last seen value so ids stay
// unique and increasing.
type idGenerator struct {
	last int64
}

// observe raises the floor to a numeric id already in use
func (g *idGenerator) observe(id string) {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil && n > g.last {
		g.last = n
	}
}

func (g *idGenerator) next(now time.Time) string {
	ms := now.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}
