package service

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImageStore struct {
	lastExt  string
	lastData []byte
}

func (f *fakeImageStore) Upload(_ context.Context, data []byte, ext string) (string, error) {
	f.lastExt = ext
	f.lastData = data
	return "http://images.local/" + ext, nil
}

func TestParseDataURI(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("png-bytes"))

	decoded, isDataURI, err := ParseDataURI("data:image/png;base64," + payload)
	require.NoError(t, err)
	require.True(t, isDataURI)
	assert.Equal(t, "png", decoded.Ext)
	assert.Equal(t, []byte("png-bytes"), decoded.Data)
}

func TestParseDataURIOpaqueReference(t *testing.T) {
	decoded, isDataURI, err := ParseDataURI("http://example.com/soup.png")
	require.NoError(t, err)
	assert.False(t, isDataURI)
	assert.Nil(t, decoded)
}

func TestParseDataURIMalformed(t *testing.T) {
	_, isDataURI, err := ParseDataURI("data:image/png,no-base64-marker")
	assert.True(t, isDataURI)
	assert.Error(t, err)

	_, isDataURI, err = ParseDataURI("data:image/png;base64,!!!not-base64!!!")
	assert.True(t, isDataURI)
	assert.Error(t, err)
}

func TestResolveImageUploadsDataURI(t *testing.T) {
	store := &fakeImageStore{}
	payload := base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))

	url, err := ResolveImage(context.Background(), store, "data:image/jpeg;base64,"+payload)
	require.NoError(t, err)
	assert.Equal(t, "http://images.local/jpeg", url)
	assert.Equal(t, "jpeg", store.lastExt)
	assert.Equal(t, []byte("jpeg-bytes"), store.lastData)
}

func TestResolveImagePassthrough(t *testing.T) {
	store := &fakeImageStore{}

	// Opaque references are never uploaded.
	url, err := ResolveImage(context.Background(), store, "http://example.com/soup.png")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/soup.png", url)
	assert.Empty(t, store.lastExt)

	// Without a store even a data URI is kept verbatim.
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("x"))
	url, err = ResolveImage(context.Background(), nil, payload)
	require.NoError(t, err)
	assert.Equal(t, payload, url)
}
