package service

import (
	"bytes"
	"errors"
	"fmt"

	"farm-advisory/internal/model"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrMalformedDocument is returned by ImportAll when the document, or one of
// its fields, cannot be decoded.
var ErrMalformedDocument = errors.New("malformed import document")

// ExportAll returns a snapshot of every collection and the settings
func (m *RecordManager) ExportAll() model.ExportDocument {
	m.mu.Lock()
	defer m.mu.Unlock()

	return model.ExportDocument{
		CropRecommendations: m.CropRecommendations.load(),
		WaterUsage:          m.WaterUsage.load(),
		CommunityPosts:      m.CommunityPosts.load(),
		WeatherHistory:      m.WeatherHistory.recent(),
		FarmSettings:        m.FarmSettings.load(),
		Notifications:       m.Notifications.load(),
		ExportedAt:          m.timestamp(),
	}
}

// importStep replaces one stored document from its field in an import
type importStep struct {
	field string
	apply func(raw []byte) error
}

// ImportAll replaces each collection present in data with the imported
// contents. Fields that are absent or null leave the stored data alone.
//
// Fields are applied one at a time in export order and there is no rollback:
// if a field fails to decode or persist, the fields before it stay imported
// and the error is returned.
func (m *RecordManager) ImportAll(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var doc map[string]jsoniter.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		m.log.Error("error importing data", "error", err.Error())
		return fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if doc == nil {
		m.log.Error("error importing data", "error", "document is null")
		return fmt.Errorf("%w: document is null", ErrMalformedDocument)
	}

	steps := []importStep{
		{"cropRecommendations", importInto(m, KeyCropRecommendations, []model.CropRecommendation{})},
		{"waterUsage", importInto(m, KeyWaterUsageHistory, []model.WaterUsageRecord{})},
		{"communityPosts", importInto(m, KeyCommunityPosts, []model.CommunityPost{})},
		{"weatherHistory", importInto(m, KeyWeatherHistory, []model.WeatherEntry{})},
		{"farmSettings", importInto(m, KeyFarmSettings, model.DefaultFarmSettings())},
		{"notifications", importInto(m, KeyNotifications, []model.Notification{})},
	}

	imported := 0
	for _, step := range steps {
		raw, ok := doc[step.field]
		if !ok || isNull(raw) {
			continue
		}
		if err := step.apply(raw); err != nil {
			m.log.Error("error importing data",
				"field", step.field,
				"fields_applied", imported,
				"error", err.Error(),
			)
			return fmt.Errorf("import %s: %w", step.field, err)
		}
		imported++
	}

	m.log.Info("data imported", "fields_applied", imported)
	return nil
}

// importInto decodes a field on top of a copy of def and stores the result
func importInto[T any](m *RecordManager, key string, def T) func([]byte) error {
	return func(raw []byte) error {
		v := def
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedDocument, err)
		}
		return m.store.Set(key, v)
	}
}

func isNull(raw []byte) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// GetStatistics counts the records currently stored in each collection
func (m *RecordManager) GetStatistics() model.Statistics {
	m.mu.Lock()
	defer m.mu.Unlock()

	notifications := m.Notifications.load()
	return model.Statistics{
		TotalCropRecommendations: len(m.CropRecommendations.load()),
		TotalWaterRecords:        len(m.WaterUsage.load()),
		TotalCommunityPosts:      len(m.CommunityPosts.load()),
		TotalWeatherRecords:      len(m.WeatherHistory.recent()),
		TotalNotifications:       len(notifications),
		UnreadNotifications:      len(unread(notifications)),
	}
}

// DeleteAllData removes every collection and resets the settings
func (m *RecordManager) DeleteAllData() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range allKeys {
		_ = m.store.Remove(key)
	}
	m.log.Info("all data deleted")
}
