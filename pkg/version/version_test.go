package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	origVersion, origCommit, origBuildTime := Version, GitCommit, BuildTime
	defer func() {
		Version, GitCommit, BuildTime = origVersion, origCommit, origBuildTime
	}()

	Version = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"

	result := String()
	assert.Contains(t, result, "Sarthi")
	assert.Contains(t, result, "dev")
	assert.Contains(t, result, runtime.Version())

	Version = "1.2.3"
	GitCommit = "abc123def"
	BuildTime = "2026-01-15T10:30:00Z"

	result = String()
	assert.Contains(t, result, "1.2.3")
	assert.Contains(t, result, "abc123def")
}

func TestInfo(t *testing.T) {
	info := Info()

	assert.Equal(t, Version, info["version"])
	assert.Equal(t, GitCommit, info["commit"])
	assert.Equal(t, runtime.Version(), info["goVersion"])
	assert.Contains(t, info["platform"], runtime.GOOS)
}
