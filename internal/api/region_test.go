package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServer(t *testing.T) {
	tests := []struct {
		input    string
		platform PlatformRoute
		regional RegionalRoute
		account  RegionalRoute
	}{
		{"EUW", "EUW1", Europe, Europe},
		{"euw", "EUW1", Europe, Europe},
		{"NA", "NA1", Americas, Americas},
		{"KR", "KR", Asia, Asia},
		{"OCE", "OC1", SEA, Asia},
		{"MENA", "ME1", Europe, Europe},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseServer(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.platform, got)
			assert.Equal(t, tt.regional, got.Regional())
			assert.Equal(t, tt.account, got.AccountRegion())
		})
	}
}

func TestParseServerInvalid(t *testing.T) {
	_, err := ParseServer("MOON")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EUW")
}

func TestRouteHosts(t *testing.T) {
	assert.Equal(t, "euw1", PlatformRoute("EUW1").Host())
	assert.Equal(t, "europe", Europe.Host())
	assert.Len(t, ServerNames(), 18)
}
