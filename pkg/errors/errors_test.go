// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and code classification

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/dotyhq/doty/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "collision",
			code:    errors.ErrCollision,
			message: "file already exists",
			wantStr: "[COLLISION] file already exists",
		},
		{
			name:    "duplicate_name",
			code:    errors.ErrDuplicateName,
			message: "entry .bashrc declared twice",
			wantStr: "[DUPLICATE_NAME] entry .bashrc declared twice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrOutOfBounds, "File %s - %s is not in the dotfiles directory", ".vimrc", "/etc/vimrc")
	assert.Equal(t, "File .vimrc - /etc/vimrc is not in the dotfiles directory", err.Message)
}

func TestWrap(t *testing.T) {
	t.Run("nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrVCS, "ignored"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrVCS, "ignored %d", 1))
	})

	t.Run("wraps_and_unwraps", func(t *testing.T) {
		base := stderrors.New("disk on fire")
		err := errors.Wrap(base, errors.ErrTransientIO, "move failed")

		require.NotNil(t, err)
		assert.Equal(t, "[TRANSIENT_IO] move failed: disk on fire", err.Error())
		assert.True(t, stderrors.Is(err, base))
		assert.Same(t, base, stderrors.Unwrap(err))
	})
}

func TestIsByCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", errors.New(errors.ErrDirtyRepository, "uncommitted changes"))

	assert.True(t, stderrors.Is(err, errors.New(errors.ErrDirtyRepository, "")))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrVCS, "")))
	assert.True(t, errors.IsErrorCode(err, errors.ErrDirtyRepository))
	assert.Equal(t, errors.ErrDirtyRepository, errors.GetErrorCode(err))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrCollision, "exists").WithDetail("path", "/tmp/x")
	assert.Equal(t, "/tmp/x", err.Details["path"])

	bare := &errors.DotyError{Code: errors.ErrCollision}
	bare.WithDetail("k", 1)
	assert.Equal(t, 1, bare.Details["k"])
}

func TestFatal(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{errors.New(errors.ErrBrokenEntry, ""), false},
		{errors.New(errors.ErrCollision, ""), false},
		{errors.New(errors.ErrOutOfBounds, ""), false},
		{errors.New(errors.ErrTransientIO, ""), false},
		{errors.New(errors.ErrManifestParse, ""), true},
		{errors.New(errors.ErrDuplicateName, ""), true},
		{errors.New(errors.ErrDirtyRepository, ""), true},
		{stderrors.New("plain"), true},
		{nil, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, errors.Fatal(tt.err), "%v", tt.err)
	}
}
