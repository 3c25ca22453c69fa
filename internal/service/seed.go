package service

import (
	"fmt"

	"farm-advisory/internal/model"
	"farm-advisory/internal/rules"
)

// Seeder fills an empty store with demo records
type Seeder struct {
	records *RecordManager
	crops   *rules.CropRules
	water   *rules.WaterRules
}

// NewSeeder creates a new seeder
func NewSeeder(records *RecordManager, crops *rules.CropRules, water *rules.WaterRules) *Seeder {
	return &Seeder{records: records, crops: crops, water: water}
}

// Seed replaces all stored data with a small demo dataset and returns the
// resulting counts. Every record goes through the normal add paths.
func (s *Seeder) Seed() (model.Statistics, error) {
	s.records.DeleteAllData()

	if err := s.seedCropRecommendations(); err != nil {
		return model.Statistics{}, fmt.Errorf("failed to seed crop recommendations: %w", err)
	}
	if err := s.seedWaterUsage(); err != nil {
		return model.Statistics{}, fmt.Errorf("failed to seed water usage: %w", err)
	}
	s.seedCommunityPosts()
	s.seedWeatherHistory()
	s.seedNotifications()

	s.records.FarmSettings.Update(model.FarmSettingsPatch{
		FarmName: strPtr("Green Valley Farm"),
		Location: strPtr("Nagpur"),
		Area:     strPtr("12"),
		SoilType: strPtr("black"),
	})

	stats := s.records.GetStatistics()
	s.records.log.Info("seeded demo data",
		"crop_recommendations", stats.TotalCropRecommendations,
		"water_records", stats.TotalWaterRecords,
		"community_posts", stats.TotalCommunityPosts,
		"weather_records", stats.TotalWeatherRecords,
		"notifications", stats.TotalNotifications,
	)
	return stats, nil
}

func (s *Seeder) seedCropRecommendations() error {
	queries := []struct {
		farmer, soil, location, water string
	}{
		{"Ramesh", "clay", "east", "high"},
		{"Sunita", "black", "central", "medium"},
		{"Anonymous", "sandy", "south", "low"},
	}
	for _, q := range queries {
		suggested := s.crops.Suggest(q.soil, q.location, q.water)
		if len(suggested) == 0 {
			return fmt.Errorf("no crop suggested for %s/%s/%s", q.soil, q.location, q.water)
		}
		crop := suggested[0]
		s.records.CropRecommendations.Add(model.CropRecommendation{
			Crop:        crop.Name,
			SoilType:    q.soil,
			Location:    q.location,
			WaterLevel:  q.water,
			FarmerName:  q.farmer,
			Description: crop.Description,
		})
	}
	return nil
}

func (s *Seeder) seedWaterUsage() error {
	plots := []struct {
		crop string
		area float64
	}{
		{"Rice", 2},
		{"Cotton", 1.5},
		{"Wheat", 4},
	}
	for _, p := range plots {
		rec, err := s.water.Estimate(p.crop, p.area)
		if err != nil {
			return err
		}
		s.records.WaterUsage.Add(rec)
	}
	return nil
}

func (s *Seeder) seedCommunityPosts() {
	post := s.records.CommunityPosts.Add(model.CommunityPost{
		Name:    "Sunita",
		Title:   "Drip lines clogging after two weeks",
		Content: "Our well water is hard. Does anyone flush their drip lines with acid, and how often?",
	})
	s.records.CommunityPosts.AddReply(post.RecordID(), model.Reply{
		Name:    "Ramesh",
		Content: "We flush with diluted phosphoric acid once a month and clean the filters weekly.",
	})
	s.records.CommunityPosts.Add(model.CommunityPost{
		Name:    "Anonymous",
		Title:   "Best time to sow chickpea after soybean?",
		Content: "Planning rabi sowing on black soil. Is mid-October too early?",
	})
}

func (s *Seeder) seedWeatherHistory() {
	snapshots := []map[string]any{
		{
			"name": "Nagpur",
			"sys":  map[string]any{"country": "IN"},
			"main": map[string]any{"temp": 28.0, "temp_max": 31.0, "temp_min": 25.0, "feels_like": 29.0, "humidity": 52.0, "pressure": 1014.0},
			"wind": map[string]any{"speed": 4.5},
		},
		{
			"name": "Pune",
			"sys":  map[string]any{"country": "IN"},
			"main": map[string]any{"temp": 27.0, "temp_max": 30.0, "temp_min": 23.0, "feels_like": 28.0, "humidity": 60.0, "pressure": 1013.0},
			"wind": map[string]any{"speed": 4.8},
		},
	}
	for _, snapshot := range snapshots {
		s.records.WeatherHistory.Add(model.WeatherEntry{Snapshot: snapshot})
	}
}

func (s *Seeder) seedNotifications() {
	s.records.Notifications.Add(model.Notification{
		Title:   "Heat advisory",
		Message: "Temperatures above 35°C expected this week. Irrigate early in the morning.",
		Type:    "warning",
	})
	welcome := s.records.Notifications.Add(model.Notification{
		Title:   "Welcome",
		Message: "Your farm records are stored on this device.",
		Type:    "info",
	})
	s.records.Notifications.MarkAsRead(welcome.RecordID())
}

func strPtr(s string) *string {
	return &s
}
