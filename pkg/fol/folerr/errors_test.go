package folerr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gitrdm/gokanlogic/pkg/fol/folerr"
)

func TestIsKindMatchesTheOriginatingKind(t *testing.T) {
	err := folerr.New("some.Op", folerr.InvalidState, "bad state: %s", "running")
	assert.True(t, folerr.IsKind(err, folerr.InvalidState))
	assert.False(t, folerr.IsKind(err, folerr.InvalidArgument))
}

func TestIsKindSurvivesWrap(t *testing.T) {
	err := folerr.New("some.Op", folerr.Cancelled, "context done")
	wrapped := folerr.Wrap(err, "caller.Op")
	assert.True(t, folerr.IsKind(wrapped, folerr.Cancelled))
	assert.Contains(t, wrapped.Error(), "caller.Op")
}

func TestWrapOfNilIsNil(t *testing.T) {
	assert.NoError(t, folerr.Wrap(nil, "caller.Op"))
}

func TestIsKindFalseForUnrelatedError(t *testing.T) {
	assert.False(t, folerr.IsKind(assert.AnError, folerr.InvalidArgument))
}
