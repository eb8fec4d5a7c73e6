package jobs

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	defaultUserAgent = "job-tracker/feed-client"
	contentEncoding  = "gzip"
	// Upper bound on pages followed for a single fetch.
	maxPages = 50
)

// RemoteSource fetches jobs from an HTTP JSON feed that pages its results as
//
//	{"items": [...], "page": 0, "pages": 3}
type RemoteSource struct {
	URL        string
	Token      string
	UserAgent  string
	HTTPClient *http.Client
	logger     *zap.Logger
}

type itemResponse struct {
	Items []map[string]any `json:"items"`
	Page  int              `json:"page"`
	Pages int              `json:"pages"`
}

func NewRemoteSource(feedURL, token string, logger *zap.Logger) *RemoteSource {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RemoteSource{
		URL:       strings.TrimSpace(feedURL),
		Token:     strings.TrimSpace(token),
		UserAgent: defaultUserAgent,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

func (s *RemoteSource) Fetch(ctx context.Context) ([]Job, error) {
	items, err := s.getItems(ctx)
	if err != nil {
		return nil, err
	}

	var jobs []Job
	cfg := &mapstructure.DecoderConfig{
		Result:           &jobs,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339),
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decoding feed items: %w", err)
	}

	return jobs, nil
}

// getItems requests the first page and follows the remaining ones.
func (s *RemoteSource) getItems(ctx context.Context) ([]map[string]any, error) {
	if s.URL == "" {
		return nil, fmt.Errorf("job feed url is not configured")
	}

	base, err := url.Parse(s.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing job feed url: %w", err)
	}

	var items []map[string]any
	for page := 0; page < maxPages; page++ {
		response, err := s.getPage(ctx, base, page)
		if err != nil {
			return nil, err
		}

		items = append(items, response.Items...)

		if response.Page >= response.Pages-1 {
			break
		}

		s.logger.Debug("additional request needed", zap.String("reason", fmt.Sprintf(
			"current page (%d) < all page count (%d)", response.Page+1, response.Pages),
		))
	}

	return items, nil
}

func (s *RemoteSource) getPage(ctx context.Context, base *url.URL, page int) (*itemResponse, error) {
	u := *base
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	s.setHeaders(req)

	s.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var body io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == contentEncoding {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		body = gz
	}

	var response itemResponse
	if err := json.NewDecoder(body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decoding feed page %d: %w", page, err)
	}

	return &response, nil
}

func (s *RemoteSource) setHeaders(req *http.Request) {
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}
	req.Header.Set("User-Agent", s.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", contentEncoding)
}
