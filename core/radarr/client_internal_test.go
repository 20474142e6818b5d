package radarr

import (
	"strings"
	"testing"

	"radarr-sync/core/instance"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		want string
	}{
		{"Plain", "http://radarr:7878", "http://radarr:7878/api/v3/movie?apikey=k%2By"},
		{"TrailingSlash", "http://radarr:7878/", "http://radarr:7878/api/v3/movie?apikey=k%2By"},
		{"URLBase", "https://example.com/radarr", "https://example.com/radarr/api/v3/movie?apikey=k%2By"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := movieURL(instance.Endpoint{Name: "x", URL: tt.base, APIKey: "k+y"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemoteError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *RemoteError
		want string
	}{
		{
			name: "Status with body",
			err:  &RemoteError{Op: opCreateMovie, Instance: "uhd", StatusCode: 400, Body: "  bad request\n"},
			want: "radarr create movie [uhd]: unexpected status 400: bad request",
		},
		{
			name: "Status without body",
			err:  &RemoteError{Op: opFetchCatalog, Instance: "main", StatusCode: 502},
			want: "radarr fetch catalog [main]: unexpected status 502",
		},
		{
			name: "Transport",
			err:  &RemoteError{Op: opFetchCatalog, Instance: "main", Err: assert.AnError},
			want: "radarr fetch catalog [main]: " + assert.AnError.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestReadBodyForError_Truncates(t *testing.T) {
	body := readBodyForError(strings.NewReader(strings.Repeat("a", maxErrorBodySize+10)))
	assert.True(t, strings.HasSuffix(body, "(truncated)"))
	assert.Equal(t, maxErrorBodySize+len("\n... (truncated)"), len(body))
}
