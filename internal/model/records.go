package model

import (
	"fmt"
	"strings"
	"time"
)

// CropRecommendation is a saved result of the crop suggestion form
type CropRecommendation struct {
	Meta
	Crop        string `json:"crop"`
	SoilType    string `json:"soilType"`
	Location    string `json:"location"`
	WaterLevel  string `json:"waterLevel"`
	FarmerName  string `json:"farmerName"`
	Description string `json:"description"`
}

// CropRecommendationPatch is a partial update of a CropRecommendation
type CropRecommendationPatch struct {
	Crop        *string `json:"crop,omitempty"`
	SoilType    *string `json:"soilType,omitempty"`
	Location    *string `json:"location,omitempty"`
	WaterLevel  *string `json:"waterLevel,omitempty"`
	FarmerName  *string `json:"farmerName,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Apply merges the present fields into rec
func (p CropRecommendationPatch) Apply(rec *CropRecommendation) {
	setString(&rec.Crop, p.Crop)
	setString(&rec.SoilType, p.SoilType)
	setString(&rec.Location, p.Location)
	setString(&rec.WaterLevel, p.WaterLevel)
	setString(&rec.FarmerName, p.FarmerName)
	setString(&rec.Description, p.Description)
}

// WaterUsageRecord is one irrigation-water estimate. TotalWater and
// WaterPerHectare are computed once, when the estimate is made.
type WaterUsageRecord struct {
	Meta
	Crop             string `json:"crop"`
	Area             Number `json:"area"`
	WaterRequirement Number `json:"waterRequirement"`
	IrrigationMethod string `json:"irrigationMethod"`
	Efficiency       Number `json:"efficiency"` // percent
	TotalWater       Number `json:"totalWater"` // litres
	WaterPerHectare  Number `json:"waterPerHectare"`
}

// WaterUsagePatch is a partial update of a WaterUsageRecord
type WaterUsagePatch struct {
	Crop             *string `json:"crop,omitempty"`
	Area             *Number `json:"area,omitempty"`
	WaterRequirement *Number `json:"waterRequirement,omitempty"`
	IrrigationMethod *string `json:"irrigationMethod,omitempty"`
	Efficiency       *Number `json:"efficiency,omitempty"`
	TotalWater       *Number `json:"totalWater,omitempty"`
	WaterPerHectare  *Number `json:"waterPerHectare,omitempty"`
}

// Apply merges the present fields into rec
func (p WaterUsagePatch) Apply(rec *WaterUsageRecord) {
	setString(&rec.Crop, p.Crop)
	setNumber(&rec.Area, p.Area)
	setNumber(&rec.WaterRequirement, p.WaterRequirement)
	setString(&rec.IrrigationMethod, p.IrrigationMethod)
	setNumber(&rec.Efficiency, p.Efficiency)
	setNumber(&rec.TotalWater, p.TotalWater)
	setNumber(&rec.WaterPerHectare, p.WaterPerHectare)
}

// CommunityPost is a forum post. Replies only ever grow.
type CommunityPost struct {
	Meta
	Name    string  `json:"name"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Likes   int     `json:"likes"`
	Replies []Reply `json:"replies"`
}

// Init assigns the generated fields and starts the post with no likes or replies
func (p *CommunityPost) Init(id string, at time.Time) {
	p.Meta.Init(id, at)
	p.Likes = 0
	p.Replies = []Reply{}
}

// Reply is an answer appended to a CommunityPost
type Reply struct {
	ID        ID        `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"createdAt"`
}

// CommunityPostPatch is a partial update of a CommunityPost.
// Likes and replies have their own operations.
type CommunityPostPatch struct {
	Name    *string `json:"name,omitempty"`
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// Apply merges the present fields into post
func (p CommunityPostPatch) Apply(post *CommunityPost) {
	setString(&post.Name, p.Name)
	setString(&post.Title, p.Title)
	setString(&post.Content, p.Content)
}

// Notification is an in-app alert
type Notification struct {
	Meta
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
	Read    bool   `json:"read"`
}

// Init assigns the generated fields and marks the notification unread
func (n *Notification) Init(id string, at time.Time) {
	n.Meta.Init(id, at)
	n.Read = false
}

// NotificationPatch is a partial update of a Notification
type NotificationPatch struct {
	Title   *string `json:"title,omitempty"`
	Message *string `json:"message,omitempty"`
	Type    *string `json:"type,omitempty"`
	Read    *bool   `json:"read,omitempty"`
}

// Apply merges the present fields into n
func (p NotificationPatch) Apply(n *Notification) {
	setString(&n.Title, p.Title)
	setString(&n.Message, p.Message)
	setString(&n.Type, p.Type)
	if p.Read != nil {
		n.Read = *p.Read
	}
}

// WeatherEntry is a weather snapshot as returned by the weather provider,
// stamped with the time it was recorded. Snapshot fields are kept verbatim
// and serialized at the top level next to "timestamp".
type WeatherEntry struct {
	Snapshot  map[string]any
	Timestamp Timestamp
}

// City returns the snapshot's "name" field
func (w WeatherEntry) City() string {
	name, _ := w.Snapshot["name"].(string)
	return name
}

// MarshalJSON flattens the snapshot and adds the timestamp
func (w WeatherEntry) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(w.Snapshot)+1)
	for k, v := range w.Snapshot {
		doc[k] = v
	}
	doc["timestamp"] = w.Timestamp
	return json.Marshal(doc)
}

// UnmarshalJSON splits the timestamp out of the flattened document
func (w *WeatherEntry) UnmarshalJSON(b []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("model: weather entry must be an object")
	}
	w.Timestamp = Timestamp{}
	if raw, ok := doc["timestamp"]; ok {
		switch v := raw.(type) {
		case string:
			w.Timestamp = ParseTimestamp(v)
		case float64:
			w.Timestamp = NewTimestamp(time.UnixMilli(int64(v)).UTC())
		case nil:
		default:
			w.Timestamp = Timestamp{raw: fmt.Sprint(v)}
		}
		delete(doc, "timestamp")
	}
	w.Snapshot = doc
	return nil
}

// FarmSettings is the singleton settings document
type FarmSettings struct {
	FarmName      string         `json:"farmName"`
	Location      string         `json:"location"`
	Area          string         `json:"area"`
	SoilType      string         `json:"soilType"`
	Language      string         `json:"language"`
	Theme         string         `json:"theme"`
	Notifications bool           `json:"notifications"`
	AutoSync      bool           `json:"autoSync"`
	FarmerProfile map[string]any `json:"farmerProfile,omitempty"`
}

// DefaultFarmSettings returns the settings used before anything is stored
func DefaultFarmSettings() FarmSettings {
	return FarmSettings{
		Language:      "en",
		Theme:         "light",
		Notifications: true,
		AutoSync:      false,
	}
}

// FarmSettingsPatch is a shallow partial update of FarmSettings.
// A non-nil FarmerProfile replaces the stored profile as a whole.
type FarmSettingsPatch struct {
	FarmName      *string        `json:"farmName,omitempty"`
	Location      *string        `json:"location,omitempty"`
	Area          *string        `json:"area,omitempty"`
	SoilType      *string        `json:"soilType,omitempty"`
	Language      *string        `json:"language,omitempty"`
	Theme         *string        `json:"theme,omitempty"`
	Notifications *bool          `json:"notifications,omitempty"`
	AutoSync      *bool          `json:"autoSync,omitempty"`
	FarmerProfile map[string]any `json:"farmerProfile,omitempty"`
}

// Apply merges the present fields into s
func (p FarmSettingsPatch) Apply(s *FarmSettings) {
	setString(&s.FarmName, p.FarmName)
	setString(&s.Location, p.Location)
	setString(&s.Area, p.Area)
	setString(&s.SoilType, p.SoilType)
	setString(&s.Language, p.Language)
	setString(&s.Theme, p.Theme)
	if p.Notifications != nil {
		s.Notifications = *p.Notifications
	}
	if p.AutoSync != nil {
		s.AutoSync = *p.AutoSync
	}
	if p.FarmerProfile != nil {
		s.FarmerProfile = p.FarmerProfile
	}
}

// ExportDocument is the whole-store backup format
type ExportDocument struct {
	CropRecommendations []CropRecommendation `json:"cropRecommendations"`
	WaterUsage          []WaterUsageRecord   `json:"waterUsage"`
	CommunityPosts      []CommunityPost      `json:"communityPosts"`
	WeatherHistory      []WeatherEntry       `json:"weatherHistory"`
	FarmSettings        FarmSettings         `json:"farmSettings"`
	Notifications       []Notification       `json:"notifications"`
	ExportedAt          time.Time            `json:"exportedAt"`
}

// Statistics holds record counts across the store
type Statistics struct {
	TotalCropRecommendations int `json:"totalCropRecommendations"`
	TotalWaterRecords        int `json:"totalWaterRecords"`
	TotalCommunityPosts      int `json:"totalCommunityPosts"`
	TotalWeatherRecords      int `json:"totalWeatherRecords"`
	TotalNotifications       int `json:"totalNotifications"`
	UnreadNotifications      int `json:"unreadNotifications"`
}

// CityMatches reports whether the entry was recorded for city, ignoring case
func (w WeatherEntry) CityMatches(city string) bool {
	return strings.EqualFold(w.City(), city)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setNumber(dst *Number, v *Number) {
	if v != nil {
		*dst = *v
	}
}
