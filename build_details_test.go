package oaslimbs

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	v := Version()
	assert.True(t, v == "dev" || strings.HasPrefix(v, "v"), "unexpected version %q", v)
}

func TestBuildMetadataDefaults(t *testing.T) {
	// Unset ldflags leave the placeholders in place.
	if commit == "unknown" {
		assert.Equal(t, "unknown", Commit())
	} else {
		assert.GreaterOrEqual(t, len(Commit()), 7)
	}
	assert.NotEmpty(t, BuildTime())
	assert.Equal(t, runtime.Version(), GoVersion())
}

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	assert.Equal(t, "oaslimbs/"+Version(), ua)
	assert.NotContains(t, ua, " ", "User-Agent product token must not contain spaces")
}

func TestBuildInfo(t *testing.T) {
	info := BuildInfo()
	lines := strings.Split(info, "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "Version: "+Version(), lines[0])
	assert.Equal(t, "Commit: "+Commit(), lines[1])
	assert.Equal(t, "Build Time: "+BuildTime(), lines[2])
	assert.Equal(t, "Go Version: "+GoVersion(), lines[3])
}
