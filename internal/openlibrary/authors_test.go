// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openlibrary

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleAuthorJSON = `{
  "key": "/authors/OL26320A",
  "name": "J.R.R. Tolkien",
  "personal_name": "John Ronald Reuel Tolkien",
  "alternate_names": ["John Ronald Reuel Tolkien", "J. R. R. Tolkien"],
  "birth_date": "3 January 1892",
  "death_date": "2 September 1973",
  "type": {"key": "/type/author"},
  "revision": 43
}`

func TestNormalizeAuthorKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"OL26320A", "OL26320A"},
		{"/authors/OL26320A", "OL26320A"},
		{"authors/OL26320A", "OL26320A"},
		{" /authors/OL26320A ", "OL26320A"},
		{"/OL26320A", "OL26320A"},
		{"", ""},
		{"/authors/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAuthorKey(tt.in))
		})
	}
}

func TestGetAuthor(t *testing.T) {
	ts := newRecordingServer(t, http.StatusOK, sampleAuthorJSON)
	c := testClient(ts.URL)

	a, err := c.GetAuthor(context.Background(), "/authors/OL26320A")
	require.NoError(t, err)

	req := ts.lastRequest()
	assert.Equal(t, "/authors/OL26320A.json", req.URL.Path)
	assert.Equal(t, "bestreads/test", req.Header.Get("User-Agent"))

	assert.Equal(t, "/authors/OL26320A", a.Key)
	require.NotNil(t, a.Name)
	assert.Equal(t, "J.R.R. Tolkien", *a.Name)
	require.NotNil(t, a.PersonalName)
	assert.Equal(t, "John Ronald Reuel Tolkien", *a.PersonalName)
	assert.Len(t, a.AlternateNames, 2)
	require.NotNil(t, a.BirthDate)
	assert.Equal(t, "3 January 1892", *a.BirthDate)
}

func TestGetAuthor_OnlyKey(t *testing.T) {
	ts := newRecordingServer(t, http.StatusOK, `{"key": "/authors/OL1A"}`)
	c := testClient(ts.URL)

	a, err := c.GetAuthor(context.Background(), "OL1A")
	require.NoError(t, err)
	assert.Equal(t, "/authors/OL1A.json", ts.lastRequest().URL.Path)
	assert.Nil(t, a.Name)
	assert.Nil(t, a.PersonalName)

	_, ok := a.DisplayName()
	assert.False(t, ok)
}

func TestGetAuthor_UpstreamError(t *testing.T) {
	ts := newRecordingServer(t, http.StatusNotFound, `{"error": "notfound"}`)
	c := testClient(ts.URL)

	_, err := c.GetAuthor(context.Background(), "OL404A")
	var ue *UpstreamError
	require.True(t, errors.As(err, &ue), "want *UpstreamError, got %v", err)
	assert.Equal(t, http.StatusNotFound, ue.StatusCode)
	assert.Equal(t, "authors", ue.Endpoint)
}

func TestGetAuthor_SchemaValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing key", `{"name": "Anon"}`},
		{"name not string", `{"key": "/authors/OL1A", "name": 42}`},
		{"array body", `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newRecordingServer(t, http.StatusOK, tt.body)
			c := testClient(ts.URL)

			_, err := c.GetAuthor(context.Background(), "OL1A")
			var sve *SchemaValidationError
			require.True(t, errors.As(err, &sve), "want *SchemaValidationError, got %v", err)
			assert.Equal(t, "authors", sve.Endpoint)
		})
	}
}

func TestGetAuthor_EmptyKey(t *testing.T) {
	ts := newRecordingServer(t, http.StatusOK, sampleAuthorJSON)
	c := testClient(ts.URL)

	_, err := c.GetAuthor(context.Background(), "/authors/")
	assert.Error(t, err)
	assert.Equal(t, 0, ts.hitCount())
}
