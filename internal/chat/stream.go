package chat

import (
	"context"
	"fmt"
	"time"

	stream "github.com/GetStream/stream-chat-go/v6"
)

// StreamClient wraps the Stream Chat SDK behind the small surface the
// services need: mirroring users and minting chat tokens.
type StreamClient struct {
	client *stream.Client
}

// NewStreamClient builds a client from the Stream API credentials.
func NewStreamClient(apiKey, apiSecret string) (*StreamClient, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("stream API key or secret is not set")
	}

	client, err := stream.NewClient(apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream client: %v", err)
	}

	return &StreamClient{client: client}, nil
}

// UpsertUser mirrors a user's identity into Stream so chat and calls
// recognize them.
func (c *StreamClient) UpsertUser(ctx context.Context, id, name, image string) error {
	_, err := c.client.UpsertUser(ctx, &stream.User{
		ID:    id,
		Name:  name,
		Image: image,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert stream user: %v", err)
	}
	return nil
}

// CreateToken mints a Stream chat token for the given user. A zero expiry
// produces a non-expiring token, matching Stream's default.
func (c *StreamClient) CreateToken(userID string) (string, error) {
	token, err := c.client.CreateToken(userID, time.Time{})
	if err != nil {
		return "", fmt.Errorf("failed to generate stream token: %v", err)
	}
	return token, nil
}
