package service

import (
	"farm-advisory/internal/model"
	"farm-advisory/internal/storage"
)

// FarmSettingsDocument is the settings singleton. Reads always return the
// full default shape with any stored values laid over it.
type FarmSettingsDocument struct {
	m *RecordManager
}

func (s *FarmSettingsDocument) load() model.FarmSettings {
	return storage.Get(s.m.store, KeyFarmSettings, model.DefaultFarmSettings())
}

// Get returns the current settings
func (s *FarmSettingsDocument) Get() model.FarmSettings {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.load()
}

// Update merges patch into the current settings, stores and returns them
func (s *FarmSettingsDocument) Update(patch model.FarmSettingsPatch) model.FarmSettings {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	settings := s.load()
	patch.Apply(&settings)
	_ = s.m.store.Set(KeyFarmSettings, settings)
	return settings
}

// Reset deletes the stored settings so reads fall back to the defaults
func (s *FarmSettingsDocument) Reset() {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	_ = s.m.store.Remove(KeyFarmSettings)
}
