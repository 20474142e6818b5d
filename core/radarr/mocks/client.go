package mocks

import (
	"context"

	"radarr-sync/core/instance"
	"radarr-sync/core/radarr"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of radarr.Client
type Client struct {
	mock.Mock
}

var _ radarr.Client = (*Client)(nil)

func (m *Client) FetchCatalog(ctx context.Context, ep instance.Endpoint) ([]radarr.Movie, error) {
	args := m.Called(ctx, ep)
	if movies, ok := args.Get(0).([]radarr.Movie); ok {
		return movies, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) CreateEntry(ctx context.Context, ep instance.Endpoint, req radarr.AddMovieRequest) error {
	args := m.Called(ctx, ep, req)
	return args.Error(0)
}
