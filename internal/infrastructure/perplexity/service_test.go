package perplexity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLinkPayloadStripsFences(t *testing.T) {
	raw := "```json\n{\"urls\":[{\"title\":\"A\",\"url\":\"http://x\",\"description\":\"d\"}]}\n```"

	links, err := ParseLinkPayload(raw)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, Link{Title: "A", URL: "http://x", Description: "d"}, links[0])
}

func TestParseLinkPayloadRawJSON(t *testing.T) {
	raw := `{"urls":[{"title":"Reed","url":"https://reed.co.uk","description":"UK job board"},{"title":"Indeed","url":"https://indeed.co.uk","description":"Listings"}]}`

	links, err := ParseLinkPayload(raw)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "Reed", links[0].Title)
	assert.Equal(t, "https://indeed.co.uk", links[1].URL)
}

func TestParseLinkPayloadEmptyList(t *testing.T) {
	links, err := ParseLinkPayload(`{"urls":[]}`)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestParseLinkPayloadMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"prose instead of JSON", "Here are some great links for you!"},
		{"wrong shape", `{"links":[{"title":"A"}]}`},
		{"truncated", `{"urls":[{"title":"A"`},
		{"empty", ""},
		{"fence with prose", "```json\nnot json\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLinkPayload(tt.raw)
			assert.ErrorIs(t, err, ErrMalformedPayload)
		})
	}
}
