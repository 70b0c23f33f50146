package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoString(t *testing.T) {
	info := Info{CommitHash: "abcdef123", BuildTime: "now", Version: "dev"}
	assert.Equal(t, "lcapgen dev (commit abcdef123, built now)", info.String())
	assert.Equal(t, "abcdef1", info.Short())

	info.Version = "1.2.0"
	assert.Equal(t, "lcapgen 1.2.0 (commit abcdef123, built now)", info.String())
}

func TestSemver(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "dev"
	v, err := Semver()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0-dev", v.String())

	Version = "v1.4.2"
	v, err = Semver()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v.Major())
	assert.Equal(t, uint64(4), v.Minor())

	Version = "not-a-version"
	_, err = Semver()
	assert.Error(t, err)
}
