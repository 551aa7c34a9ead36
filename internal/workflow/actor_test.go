package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserActorCarriesUserID(t *testing.T) {
	a := UserActor(42)
	require.NotNil(t, a.UserID())
	assert.Equal(t, uint(42), *a.UserID())
	assert.False(t, a.IsSystem())
}

func TestSystemActorHasNoUserID(t *testing.T) {
	a := SystemActor()
	assert.Nil(t, a.UserID())
	assert.True(t, a.IsSystem())
}

func TestUnknownActorHasNoUserID(t *testing.T) {
	a := UnknownActor()
	assert.Nil(t, a.UserID())
	assert.False(t, a.IsSystem())
}
