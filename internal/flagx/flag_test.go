package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-a", "localhost"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "flag with equals",
			args:         []string{"-config=alt.json", "-a", "localhost"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=alt.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept",
			args:         []string{"-d"},
			allowedFlags: []string{"-d"},
			want:         []string{"-d"},
		},
		{
			name:         "flag followed by another flag",
			args:         []string{"-d", "-s", "secret"},
			allowedFlags: []string{"-d", "-s"},
			want:         []string{"-d", "-s", "secret"},
		},
		{
			name:         "cobra style subcommand args are skipped",
			args:         []string{"user", "add", "--username", "alice", "-d", "postgres://x"},
			allowedFlags: []string{"-d"},
			want:         []string{"-d", "postgres://x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"bin", "-a", ":8080", "-c", "cfg.json"}
	assert.Equal(t, "cfg.json", ConfigFileFlag())

	os.Args = []string{"bin", "-config=other.json"}
	assert.Equal(t, "other.json", ConfigFileFlag())

	os.Args = []string{"bin", "-a", ":8080"}
	assert.Equal(t, "", ConfigFileFlag())
}
