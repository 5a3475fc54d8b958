package remote

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/expense-tracker/core/internal/application/adapter"
)

// imageClient implements the adapter.RemoteImageClient interface.
type imageClient struct {
	client *Client
}

// NewImageClient creates a new remote image client.
func NewImageClient(client *Client) adapter.RemoteImageClient {
	return &imageClient{
		client: client,
	}
}

type imagePayload struct {
	ImageName   string `json:"imageName"`
	ImageData   string `json:"imageData"` // base64
	ContentType string `json:"contentType"`
}

type imageRequest struct {
	UserID         string       `json:"userId"`
	RequestedImage imagePayload `json:"requestedImage"`
}

type imageResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Upload stores a fresh attachment and returns the hosted URL.
func (c *imageClient) Upload(ctx context.Context, userID string, image adapter.RequestedImage) (string, error) {
	return c.send(ctx, http.MethodPost, "/api/transactions/upload-image", userID, image)
}

// Update replaces an existing attachment and returns the hosted URL.
func (c *imageClient) Update(ctx context.Context, userID string, image adapter.RequestedImage) (string, error) {
	return c.send(ctx, http.MethodPut, "/api/transactions/update-image", userID, image)
}

func (c *imageClient) send(ctx context.Context, method, path, userID string, image adapter.RequestedImage) (string, error) {
	body := imageRequest{
		UserID: userID,
		RequestedImage: imagePayload{
			ImageName:   image.ImageName,
			ImageData:   base64.StdEncoding.EncodeToString(image.ImageData),
			ContentType: image.ContentType,
		},
	}

	var resp imageResponse
	if err := c.client.doJSON(ctx, method, path, body, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		if resp.Error == "" {
			return "", fmt.Errorf("image upload rejected")
		}
		return "", fmt.Errorf("image upload rejected: %s", resp.Error)
	}
	return resp.ImageURL, nil
}
