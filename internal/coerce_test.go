package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseInt(t *testing.T) {
	n, err := parseInt(float64(7))
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = parseInt(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = parseInt("many")
	assert.Error(t, err)

	_, err = parseInt(nil)
	assert.Error(t, err)

	_, err = parseInt(true)
	assert.Error(t, err)
}

func TestAsIntFallsBackToZero(t *testing.T) {
	assert.Equal(t, 9, asInt(float64(9)))
	assert.Equal(t, 9, asInt("9"))
	assert.Zero(t, asInt("garbage"))
	assert.Zero(t, asInt(nil))
}

func TestObjectID(t *testing.T) {
	want := primitive.NewObjectID()

	got, err := objectID(want.Hex())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = objectID("not-hex")
	assert.Error(t, err)

	_, err = objectID(nil)
	assert.Error(t, err)
}

func TestOptionalObjectID(t *testing.T) {
	id, err := optionalObjectID(nil)
	require.NoError(t, err)
	assert.Nil(t, id)

	id, err = optionalObjectID("")
	require.NoError(t, err)
	assert.Nil(t, id)

	want := primitive.NewObjectID()
	id, err = optionalObjectID(want.Hex())
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, want, *id)

	_, err = optionalObjectID("not-hex")
	assert.Error(t, err)

	_, err = optionalObjectID(12.5)
	assert.Error(t, err)
}
