package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/seismic-analysis-service/internal/seismic"
)

func TestSerializeAlert(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	analysis := &seismic.Analysis{
		Region:      seismic.Region{Latitude: 34.05, Longitude: -118.25, RadiusKm: 100, WindowDays: 7},
		RegionName:  "california",
		GeneratedAt: now,
		EventCount:  42,
		RiskLevel:   seismic.RiskHigh,
	}

	msg, err := serializeAlert(analysis)
	require.NoError(t, err)

	assert.Equal(t, []byte("california"), msg.Key)
	assert.Contains(t, string(msg.Value), `"risk_level":"high"`)
	assert.Contains(t, string(msg.Value), `"event_count":42`)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "region", msg.Headers[0].Key)
	assert.Equal(t, []byte("california"), msg.Headers[0].Value)
	assert.Equal(t, "risk_level", msg.Headers[1].Key)
	assert.Equal(t, []byte("high"), msg.Headers[1].Value)
	assert.Equal(t, "generated_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[2].Value)
}
