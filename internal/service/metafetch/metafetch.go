package metafetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/alexdoe/folio/internal/constants"
	"github.com/alexdoe/folio/internal/util"
	"github.com/alexdoe/folio/pkg/errors"
	"go.uber.org/zap"
)

const maxDescriptionRunes = 300

// ProjectDraft pre-fills the add-project form from a pasted live URL.
type ProjectDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	LiveURL     string   `json:"liveUrl"`
}

// Fetcher scrapes Open Graph metadata from a project's live page.
type Fetcher struct {
	httpClient *http.Client
	logger     *zap.Logger
}

func NewFetcher(logger *zap.Logger) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: constants.HTTPConfig.ClientTimeout,
		},
		logger: logger,
	}
}

// Fetch pulls og:title, og:description and og:image from pageURL, falling
// back to the document title. Failure is non-fatal for the caller; the
// owner just fills the form by hand.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*ProjectDraft, error) {
	if !strings.HasPrefix(pageURL, "http://") && !strings.HasPrefix(pageURL, "https://") {
		return nil, errors.NewValidationError("page URL must be absolute", "url", pageURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, errors.NewAPIError("failed to create metadata request", 500, map[string]any{
			"url": pageURL,
		}).WithCause(err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.Warn("Metadata fetch failed", zap.String("url", pageURL), zap.Error(err))
		return nil, errors.NewAPIError("project page unreachable", 502, map[string]any{
			"url": pageURL,
		}).WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewAPIError(
			fmt.Sprintf("project page returned %s", resp.Status),
			resp.StatusCode,
			map[string]any{"url": pageURL},
		)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.NewParseError("project page is not parseable HTML", pageURL, err)
	}

	draft := &ProjectDraft{
		Title:       metaProperty(doc, "og:title"),
		Description: metaProperty(doc, "og:description"),
		LiveURL:     pageURL,
	}

	if draft.Title == "" {
		draft.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if draft.Description == "" {
		if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
			draft.Description = strings.TrimSpace(desc)
		}
	}
	draft.Description = util.TruncateString(draft.Description, maxDescriptionRunes)

	if image := metaProperty(doc, "og:image"); image != "" {
		draft.Images = []string{image}
	}

	f.logger.Info("Project metadata fetched",
		zap.String("url", pageURL),
		zap.String("title", draft.Title),
	)

	return draft, nil
}

func metaProperty(doc *goquery.Document, property string) string {
	content, _ := doc.Find(fmt.Sprintf(`meta[property=%q]`, property)).Attr("content")
	return strings.TrimSpace(content)
}
