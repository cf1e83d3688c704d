package resolver

import (
	"context"
	"io"
	"net/http"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/mihaelamj/stitcher"
	"github.com/mihaelamj/stitcher/internal/httputil"
	"github.com/mihaelamj/stitcher/stitcherrors"
)

// DefaultMaxFileSize is the maximum size (in bytes) allowed for a fetched
// document. This prevents resource exhaustion from arbitrarily large files
// or responses. 10MB is sufficient for even very large API descriptions.
const DefaultMaxFileSize = 10 * 1024 * 1024

// ContentSource retrieves the raw text of a document at a location.
//
// Implementations fail with *stitcherrors.FetchError when the location is
// unreachable or retrieval does not succeed, and with
// *stitcherrors.EncodingError when the payload is not valid UTF-8 text.
type ContentSource interface {
	Fetch(ctx context.Context, loc Location) ([]byte, error)
}

// Source is the default ContentSource. It reads files from the local
// filesystem and fetches HTTP(S) URLs with a timeout-bounded client.
type Source struct {
	// HTTPClient is used for URL fetches. If nil, a default client with
	// a 30-second timeout is created on first use.
	HTTPClient *http.Client
	// UserAgent is sent on URL fetches. Defaults to the stitcher agent.
	UserAgent string
	// MaxFileSize caps fetched document size in bytes.
	// Zero means DefaultMaxFileSize.
	MaxFileSize int64
}

// NewSource creates a Source with default settings.
func NewSource() *Source {
	return &Source{}
}

// Fetch implements ContentSource.
func (s *Source) Fetch(ctx context.Context, loc Location) ([]byte, error) {
	var data []byte
	var err error
	if loc.IsURL() {
		data, err = s.fetchURL(ctx, loc)
	} else {
		data, err = s.readFile(loc)
	}
	if err != nil {
		return nil, err
	}

	limit := s.MaxFileSize
	if limit <= 0 {
		limit = DefaultMaxFileSize
	}
	if int64(len(data)) > limit {
		return nil, &stitcherrors.ResourceLimitError{
			ResourceType: "document_size",
			Limit:        limit,
			Actual:       int64(len(data)),
			Message:      loc.String(),
		}
	}

	return decodeText(data, loc)
}

func (s *Source) readFile(loc Location) ([]byte, error) {
	data, err := os.ReadFile(loc.String())
	if err != nil {
		return nil, &stitcherrors.FetchError{
			Location: loc.String(),
			Message:  "cannot read file",
			Cause:    err,
		}
	}
	return data, nil
}

func (s *Source) fetchURL(ctx context.Context, loc Location) ([]byte, error) {
	client := s.HTTPClient
	if client == nil {
		client = httputil.NewClient(false)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc.String(), nil)
	if err != nil {
		return nil, &stitcherrors.FetchError{
			Location: loc.String(),
			Message:  "cannot build request",
			Cause:    err,
		}
	}

	userAgent := s.UserAgent
	if userAgent == "" {
		userAgent = stitcher.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &stitcherrors.FetchError{
			Location: loc.String(),
			Cause:    err,
		}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &stitcherrors.FetchError{
			Location:   loc.String(),
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &stitcherrors.FetchError{
			Location: loc.String(),
			Message:  "cannot read response body",
			Cause:    err,
		}
	}
	return data, nil
}

// decodeText normalizes fetched bytes to UTF-8. A UTF-8 BOM is stripped and
// UTF-16 payloads with a BOM are transcoded; anything that is not valid
// UTF-8 after that fails with an EncodingError. The BOM-less fallback is a
// validator rather than a decoder, so invalid bytes are rejected instead of
// being silently replaced.
func decodeText(data []byte, loc Location) ([]byte, error) {
	decoder := unicode.BOMOverride(encoding.UTF8Validator)
	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return nil, &stitcherrors.EncodingError{
			Location: loc.String(),
			Message:  "cannot decode document text",
			Cause:    err,
		}
	}
	if !utf8.Valid(decoded) {
		return nil, &stitcherrors.EncodingError{
			Location: loc.String(),
			Message:  "document is not valid UTF-8",
		}
	}
	return decoded, nil
}
