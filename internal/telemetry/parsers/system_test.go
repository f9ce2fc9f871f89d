package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLoadAverage(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{
			name: "typical loadavg",
			raw:  "1.23 0.45 0.67 2/531 12345\n",
			want: 1.23,
		},
		{
			name: "no trailing newline",
			raw:  "0.08 0.12 0.09 1/210 999",
			want: 0.08,
		},
		{
			name: "only first line is read",
			raw:  "2.50 2.00 1.50\ngarbage second line",
			want: 2.50,
		},
		{
			name:    "empty output",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "non-numeric first token",
			raw:     "load: high",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLoadAverage(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestParseMemInfo(t *testing.T) {
	raw := `MemTotal:        3882924 kB
MemFree:          170296 kB
MemAvailable:    1296224 kB
Buffers:            8240 kB
Cached:          1234104 kB
SwapCached:        14320 kB
`
	info, err := ParseMemInfo(raw)

	require.NoError(t, err)
	assert.Equal(t, int64(3882924), info.TotalKB)
	assert.Equal(t, int64(170296), info.FreeKB)
	assert.Equal(t, int64(1296224), info.AvailableKB)
	assert.Equal(t, int64(8240), info.BuffersKB)
	assert.Equal(t, int64(1234104), info.CachedKB)
}

func TestMemInfoUsagePercent(t *testing.T) {
	info, err := ParseMemInfo("MemTotal: 1000 kB\nMemAvailable: 400 kB\n")

	require.NoError(t, err)
	assert.InDelta(t, 60.0, info.UsagePercent(), 0.0001)
}

func TestMemInfoUsagePercent_ZeroTotal(t *testing.T) {
	var info MemInfo
	assert.Equal(t, 0.0, info.UsagePercent())
}

func TestParseMemInfo_MissingRequiredKeys(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"no available", "MemTotal: 1000 kB\nMemFree: 500 kB\n"},
		{"no total", "MemAvailable: 400 kB\n"},
		{"garbage values", "MemTotal: lots kB\nMemAvailable: some kB\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMemInfo(tt.raw)
			assert.Error(t, err)
		})
	}
}

func TestParseThermalZone(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{"typical reading", "42500\n", 42.5, false},
		{"whitespace padded", "  36000  ", 36.0, false},
		{"zero", "0", 0, false},
		{"empty", "", 0, true},
		{"not a number", "cool", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseThermalZone(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}
