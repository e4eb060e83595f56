package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFullVersion_OmitsUninjectedFields(t *testing.T) {
	// Arrange
	oldCommit, oldTime := Commit, BuildTime
	t.Cleanup(func() { Commit, BuildTime = oldCommit, oldTime })
	Commit, BuildTime = "unknown", "unknown"

	// Act
	full := GetFullVersion()

	// Assert
	assert.True(t, strings.HasPrefix(full, "champ "+Version))
	assert.NotContains(t, full, "提交")
	assert.Contains(t, full, runtime.Version())
}

func TestGetFullVersion_IncludesInjectedCommit(t *testing.T) {
	oldCommit := Commit
	t.Cleanup(func() { Commit = oldCommit })
	Commit = "abc1234"

	assert.Contains(t, GetFullVersion(), "提交: abc1234")
	assert.Equal(t, "abc1234", GetBuildInfo().Commit)
}
