package service

import (
	"farm-advisory/internal/model"
	"farm-advisory/internal/storage"
)

// WeatherHistoryLimit is the number of snapshots kept in the weather history
const WeatherHistoryLimit = 100

// WeatherHistoryLog is a bounded log of weather snapshots. Entries carry no
// id; once the log is full the oldest entry is dropped for each new one.
type WeatherHistoryLog struct {
	m *RecordManager
}

func (w *WeatherHistoryLog) load() []model.WeatherEntry {
	history := storage.Get(w.m.store, KeyWeatherHistory, []model.WeatherEntry{})
	if history == nil {
		history = []model.WeatherEntry{}
	}
	return history
}

// recent returns the newest WeatherHistoryLimit entries, oldest first
func (w *WeatherHistoryLog) recent() []model.WeatherEntry {
	history := w.load()
	if len(history) > WeatherHistoryLimit {
		history = history[len(history)-WeatherHistoryLimit:]
	}
	return history
}

// Add stamps entry with the current time and appends it, keeping only the
// newest WeatherHistoryLimit entries.
func (w *WeatherHistoryLog) Add(entry model.WeatherEntry) model.WeatherEntry {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()

	history := w.load()
	if keep := WeatherHistoryLimit - 1; len(history) > keep {
		history = history[len(history)-keep:]
	}
	if entry.Snapshot == nil {
		entry.Snapshot = map[string]any{}
	}
	entry.Timestamp = model.NewTimestamp(w.m.timestamp())
	history = append(history, entry)
	_ = w.m.store.Set(KeyWeatherHistory, history)
	return entry
}

// GetAll returns the retained snapshots, oldest first
func (w *WeatherHistoryLog) GetAll() []model.WeatherEntry {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	return w.recent()
}

// GetByCity returns the snapshots whose name matches city, ignoring case
func (w *WeatherHistoryLog) GetByCity(city string) []model.WeatherEntry {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()

	out := []model.WeatherEntry{}
	for _, entry := range w.recent() {
		if entry.CityMatches(city) {
			out = append(out, entry)
		}
	}
	return out
}

// DeleteAll removes the weather history document
func (w *WeatherHistoryLog) DeleteAll() {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	_ = w.m.store.Remove(KeyWeatherHistory)
}
