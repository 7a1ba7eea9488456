package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/alexdoe/folio/internal/constants"
	"github.com/alexdoe/folio/pkg/errors"
	"go.uber.org/zap"
)

// Uploader pushes image files to an imgbb-style hosting endpoint and returns
// the hosted public URL. Uploads to different image slots are independent;
// nothing is shared between calls.
type Uploader struct {
	uploadURL  string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

type uploadResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
	Success bool `json:"success"`
}

func NewUploader(uploadURL, apiKey string, logger *zap.Logger) *Uploader {
	return &Uploader{
		uploadURL: uploadURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: constants.HTTPConfig.UploadTimeout,
		},
		logger: logger,
	}
}

// Upload sends the file as a multipart form and extracts the hosted URL from
// the response. On any failure the caller keeps its previously stored URL;
// no partial overwrite is possible because a URL is only returned on success.
func (u *Uploader) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", errors.NewAPIError("failed to build upload form", 500, nil).WithCause(err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", errors.NewAPIError("failed to read image file", 400, map[string]any{
			"filename": filename,
		}).WithCause(err)
	}
	if err := writer.Close(); err != nil {
		return "", errors.NewAPIError("failed to finalize upload form", 500, nil).WithCause(err)
	}

	reqURL := u.uploadURL
	if u.apiKey != "" {
		reqURL += "?key=" + url.QueryEscape(u.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, &body)
	if err != nil {
		return "", errors.NewAPIError("failed to create upload request", 500, nil).WithCause(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		u.logger.Error("Image upload request failed", zap.String("filename", filename), zap.Error(err))
		return "", errors.NewAPIError("image host unreachable", 502, map[string]any{
			"filename": filename,
		}).WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", errors.NewAPIError(
			fmt.Sprintf("image upload failed: %s", resp.Status),
			resp.StatusCode,
			map[string]any{
				"filename": filename,
				"body":     string(bodyBytes),
			},
		)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", errors.NewAPIError("failed to decode upload response", 502, nil).WithCause(err)
	}

	if parsed.Data.URL == "" {
		return "", errors.NewAPIError("image URL not found in upload response", 502, map[string]any{
			"filename": filename,
		})
	}

	u.logger.Info("Image uploaded",
		zap.String("filename", filename),
		zap.String("url", parsed.Data.URL),
	)

	return parsed.Data.URL, nil
}
