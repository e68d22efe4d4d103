package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelsSurviveWrapping(t *testing.T) {
	assert := assert.New(t)

	err := Wrapf(ErrNotFound, "sheet %d", 7)
	assert.True(IsNotFound(err))
	assert.False(IsInvalid(err))
	assert.Contains(err.Error(), "sheet 7")

	err = Wrap(WithHint(ErrInvalidRequest, "title is required"), "create sheet")
	assert.True(IsInvalid(err))
	assert.False(IsNotFound(nil))
}

func TestWrapKeepsStack(t *testing.T) {
	err := Wrap(New("boom"), "outer")
	assert.Contains(t, fmt.Sprintf("%+v", err), "errors_test.go")
}
