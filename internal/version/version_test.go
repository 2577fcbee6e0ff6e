package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromBuildInfo(t *testing.T) {
	tests := []struct {
		name     string
		info     debug.BuildInfo
		expected string
	}{
		{
			name:     "tagged module",
			info:     debug.BuildInfo{Main: debug.Module{Version: "v1.2.3"}},
			expected: "v1.2.3",
		},
		{
			name: "vcs stamps",
			info: debug.BuildInfo{
				Main: debug.Module{Version: "(devel)"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "0123456789abcdef0123"},
					{Key: "vcs.time", Value: "2024-05-06T07:08:09Z"},
				},
			},
			expected: "v0.0.0-20240506070809-0123456789ab",
		},
		{
			name: "modified tree",
			info: debug.BuildInfo{
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "abc"},
					{Key: "vcs.time", Value: "2024-05-06T07:08:09Z"},
					{Key: "vcs.modified", Value: "true"},
				},
			},
			expected: "v0.0.0-20240506070809-abc+dirty",
		},
		{
			name:     "nothing known",
			info:     debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			expected: "v0.0.0-unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fromBuildInfo(&tt.info))
		})
	}
}

func TestCurrentPrefersBuildVersion(t *testing.T) {
	old := buildVersion
	t.Cleanup(func() { buildVersion = old })

	buildVersion = " v9.9.9 "
	assert.Equal(t, "v9.9.9", Current())
}
