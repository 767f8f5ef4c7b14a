package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrConfig, "Config file already exists", "Use --force to overwrite.")

	assert.Equal(t, ErrConfig, err.Code)
	assert.Contains(t, err.Error(), "x Config file already exists")
	assert.Contains(t, err.Error(), "Use --force to overwrite.")
	assert.Nil(t, err.Cause)
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("exit status 1")
	err := Wrap(cause, "systemctl failed")

	assert.Equal(t, ErrRuntime, err.Code)
	assert.Contains(t, err.Error(), "x systemctl failed")
	assert.Contains(t, err.Error(), "exit status 1")
	assert.Same(t, cause, err.Unwrap())
}

func TestWrapWithCode(t *testing.T) {
	cause := stderrors.New("no such file")
	err := WrapWithCode(cause, ErrRoster, "Cannot list units", "Install systemd.")

	assert.Equal(t, ErrRoster, err.Code)
	assert.Contains(t, err.Error(), "no such file")
	assert.Contains(t, err.Error(), "Install systemd.")
}

func TestErrorRendering(t *testing.T) {
	err := WrapWithCode(stderrors.New("connection refused"), ErrCollect,
		"Cannot inspect conduit-relay1", "Check the docker daemon.")

	want := "x Cannot inspect conduit-relay1\n" +
		"\n  connection refused\n" +
		"\n  Check the docker daemon.\n"
	assert.Equal(t, want, err.Error())
}

func TestIsCode(t *testing.T) {
	err := New(ErrRoster, "Cannot list containers", "")

	assert.True(t, IsCode(err, ErrRoster))
	assert.False(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(nil, ErrRoster))
	assert.False(t, IsCode(stderrors.New("plain"), ErrRoster))
}

func TestIsCodeThroughWrapping(t *testing.T) {
	inner := New(ErrCollect, "Cannot tail log", "")
	outer := fmt.Errorf("cycle failed: %w", inner)

	assert.True(t, IsCode(outer, ErrCollect))
}

func TestErrorsAsChain(t *testing.T) {
	root := stderrors.New("permission denied")
	err := WrapWithCode(root, ErrConfig, "Cannot write config", "")

	require.True(t, stderrors.Is(err, root))
}
