package dao

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pagegrid/pagegrid/internal/model1"
	"github.com/tidwall/gjson"
)

const maxPayload = 32 << 20

// HTTPSource fetches pages from a json api. The page, sort and filter
// are passed as query parameters so the api does the work.
type HTTPSource struct {
	client *http.Client
	spec   SourceSpec
	base   *url.URL
}

// NewHTTPSource returns a source for an http(s) endpoint.
func NewHTTPSource(spec SourceSpec, client *http.Client) (*HTTPSource, error) {
	u, err := url.Parse(spec.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", spec.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q is not an http url", ErrUnknownSource, spec.URL)
	}
	if client == nil {
		client = &http.Client{Timeout: spec.Timeout}
	}

	return &HTTPSource{client: client, spec: spec, base: u}, nil
}

// Name returns the source name.
func (s *HTTPSource) Name() string {
	return s.base.Host + s.base.Path
}

// URLFor returns the endpoint url for a page request.
func (s *HTTPSource) URLFor(req Request) (string, error) {
	u := *s.base
	q := u.Query()
	q.Set("offset", strconv.Itoa(req.Offset))
	q.Set("limit", strconv.Itoa(req.Limit))
	if !req.Sort.IsBlank() {
		f, err := s.spec.SortField(req.Sort.Key())
		if err != nil {
			return "", fmt.Errorf("%w: %q", err, req.Sort.Key())
		}
		q.Set("sort", f+"-"+req.Sort.Direction().String())
	}
	if !req.Filter.IsBlank() {
		q.Set("q", req.Filter.Query)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Fetch calls the endpoint and decodes the returned rows.
func (s *HTTPSource) Fetch(ctx context.Context, req Request) (model1.Rows, error) {
	target, err := s.URLFor(req)
	if err != nil {
		return nil, err
	}
	hreq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	hreq.Header.Set("Accept", "application/json")

	slog.Debug("Page request", slog.String("url", target))
	resp, err := s.client.Do(hreq)
	if err != nil {
		return nil, fmt.Errorf("request %s failed: %w", s.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("request %s failed: %s", s.Name(), resp.Status)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: invalid json", ErrBadPayload)
	}
	res := gjson.ParseBytes(raw)
	if s.spec.Path != "" {
		res = res.Get(s.spec.Path)
	}
	rows, err := jsonRows(res, s.spec.IDField)
	if err != nil {
		return nil, err
	}
	if s.spec.IDField == "" {
		for i := range rows {
			rows[i].ID = strconv.Itoa(req.Offset + i)
		}
	}

	return rows, nil
}
