package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertSymlink checks that link is a symlink whose target is exactly target.
func AssertSymlink(t *testing.T, link, target string, msgAndArgs ...interface{}) bool {
	t.Helper()
	got, err := os.Readlink(link)
	if !assert.NoError(t, err, msgAndArgs...) {
		return false
	}
	return assert.Equal(t, target, got, msgAndArgs...)
}

// AssertRegularFile checks that path is a regular file, not a symlink,
// holding content.
func AssertRegularFile(t *testing.T, path, content string, msgAndArgs ...interface{}) bool {
	t.Helper()
	info, err := os.Lstat(path)
	if !assert.NoError(t, err, msgAndArgs...) {
		return false
	}
	if !assert.True(t, info.Mode().IsRegular(), msgAndArgs...) {
		return false
	}
	data, err := os.ReadFile(path)
	if !assert.NoError(t, err, msgAndArgs...) {
		return false
	}
	return assert.Equal(t, content, string(data), msgAndArgs...)
}

// AssertAbsent checks that nothing, not even a dangling symlink, is at path.
func AssertAbsent(t *testing.T, path string, msgAndArgs ...interface{}) bool {
	t.Helper()
	_, err := os.Lstat(path)
	return assert.True(t, os.IsNotExist(err), msgAndArgs...)
}
