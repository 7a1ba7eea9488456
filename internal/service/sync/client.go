package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/alexdoe/folio/internal/constants"
	"github.com/alexdoe/folio/internal/domain"
	"github.com/alexdoe/folio/internal/util"
	"github.com/alexdoe/folio/pkg/errors"
	"go.uber.org/zap"
)

// BlobClient talks to a jsonblob-style JSON store: POST creates a blob and
// returns its location, PUT updates it, GET fetches it. Identifiers are
// opaque, extracted from the final path segment of the create response's
// Location header.
type BlobClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewBlobClient(baseURL string, logger *zap.Logger) *BlobClient {
	return &BlobClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: constants.HTTPConfig.ClientTimeout,
		},
		logger: logger,
	}
}

// Create stores a new blob and returns its assigned identifier.
func (c *BlobClient) Create(ctx context.Context, content *domain.Content) (string, error) {
	resp, err := c.send(ctx, http.MethodPost, c.baseURL, content)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	location := resp.Header.Get("Location")
	id := lastPathSegment(location)
	if id == "" {
		c.logger.Error("Blob create response had no usable Location header",
			zap.String("location", location),
		)
		return "", errors.NewAPIError("blob store did not return a resource location", 502, map[string]any{
			"location": location,
		})
	}

	return id, nil
}

// Update overwrites the blob at id with the given content.
func (c *BlobClient) Update(ctx context.Context, id string, content *domain.Content) error {
	resp, err := c.send(ctx, http.MethodPut, c.baseURL+"/"+id, content)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return nil
}

// Fetch retrieves and decodes the blob at id.
func (c *BlobClient) Fetch(ctx context.Context, id string) (*domain.Content, error) {
	resp, err := c.send(ctx, http.MethodGet, c.baseURL+"/"+id, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewAPIError("failed to read blob response", 502, map[string]any{
			"id": id,
		}).WithCause(err)
	}

	return domain.DecodeContent(body)
}

func (c *BlobClient) send(ctx context.Context, method, url string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, errors.NewAPIError("failed to marshal request", 400, map[string]any{
				"url": url,
			}).WithCause(err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, errors.NewAPIError("failed to create request", 500, map[string]any{
			"url": url,
		}).WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Blob store request failed",
			zap.String("method", method),
			zap.String("url", url),
			zap.Error(err),
		)
		return nil, errors.NewAPIError("blob store unreachable", 502, map[string]any{
			"url": url,
		}).WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, errors.NewAPIError(
			fmt.Sprintf("blob store error: %s", resp.Status),
			resp.StatusCode,
			map[string]any{
				"url":  url,
				"body": util.TruncateString(string(bodyBytes), constants.StringLimits.LogPayload),
			},
		)
	}

	return resp, nil
}

func lastPathSegment(location string) string {
	location = strings.TrimRight(location, "/")
	if location == "" {
		return ""
	}
	if idx := strings.LastIndex(location, "/"); idx >= 0 {
		return location[idx+1:]
	}
	return location
}
