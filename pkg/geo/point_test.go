package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoint(t *testing.T) {
	tests := []struct {
		name      string
		latitude  string
		longitude string
		want      Point
		wantErr   bool
	}{
		{
			name:      "valid coordinates",
			latitude:  "37.4979",
			longitude: "127.0276",
			want:      Point{Latitude: 37.4979, Longitude: 127.0276},
		},
		{
			name:      "negative coordinates",
			latitude:  "-33.8688",
			longitude: "-70.6693",
			want:      Point{Latitude: -33.8688, Longitude: -70.6693},
		},
		{
			name:      "malformed latitude",
			latitude:  "not-a-number",
			longitude: "127.0276",
			wantErr:   true,
		},
		{
			name:      "malformed longitude",
			latitude:  "37.4979",
			longitude: "",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPoint(tt.latitude, tt.longitude)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
