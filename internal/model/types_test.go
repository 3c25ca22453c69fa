package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantRaw string
	}{
		{"rfc3339", `"2024-06-01T08:00:00Z"`, time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), ""},
		{"rfc3339 with millis", `"2023-11-14T22:13:20.000Z"`, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), ""},
		{"display format", `"6/1/2024, 8:00:00 AM"`, time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), ""},
		{"display format afternoon", `"12/31/2024, 11:59:59 PM"`, time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), ""},
		{"narrow space before meridiem", `"6/1/2024, 8:00:00\u202fAM"`, time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), ""},
		{"epoch millis", `1717228800000`, time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), ""},
		{"null", `null`, time.Time{}, ""},
		{"unknown text", `"last tuesday"`, time.Time{}, "last tuesday"},
		{"boolean", `true`, time.Time{}, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.input), &ts))
			assert.True(t, tt.want.Equal(ts.Time), "got %v", ts.Time)
			assert.Equal(t, tt.wantRaw, ts.Raw())
		})
	}
}

func TestTimestamp_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(NewTimestamp(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-01T08:00:00Z"`, string(b))

	b, err = json.Marshal(ParseTimestamp("last tuesday"))
	require.NoError(t, err)
	assert.Equal(t, `"last tuesday"`, string(b))
}

func TestWeatherEntry_TolerantTimestamp(t *testing.T) {
	var w WeatherEntry
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Pune","timestamp":1717228800000}`), &w))
	assert.Equal(t, "Pune", w.City())
	assert.True(t, w.Timestamp.Equal(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)))
	assert.NotContains(t, w.Snapshot, "timestamp")

	require.NoError(t, json.Unmarshal([]byte(`{"name":"Pune","timestamp":"soon"}`), &w))
	assert.Equal(t, "soon", w.Timestamp.Raw())
}
