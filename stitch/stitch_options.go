package stitch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/mihaelamj/stitcher/internal/options"
	"github.com/mihaelamj/stitcher/resolver"
	"github.com/mihaelamj/stitcher/stitcherrors"
)

// Option is a function that configures a stitch operation.
type Option func(*stitchConfig) error

// stitchConfig holds configuration for one StitchWithOptions call.
type stitchConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	urlStr   *string
	raw      []byte
	reader   io.Reader

	// Configuration options
	ctx                context.Context
	baseLocation       string
	outputFormat       OutputFormat
	logger             resolver.Logger
	httpClient         *http.Client
	insecureSkipVerify bool
	userAgent          string
	maxDepth           int
	maxFileSize        int64
	source             resolver.ContentSource
}

// StitchWithOptions resolves a document using functional options, creating
// a fresh Stitcher (and thus a fresh cache) for the call. For cache reuse
// across calls, create a Stitcher directly.
//
// Example:
//
//	result, err := stitch.StitchWithOptions(
//	    stitch.WithFilePath("openapi.yaml"),
//	    stitch.WithOutputFormat(stitch.FormatJSON),
//	)
func StitchWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("stitch: invalid options: %w", err)
	}

	s := &Stitcher{
		OutputFormat:       cfg.outputFormat,
		Logger:             cfg.logger,
		MaxDepth:           cfg.maxDepth,
		MaxFileSize:        cfg.maxFileSize,
		UserAgent:          cfg.userAgent,
		HTTPClient:         cfg.httpClient,
		InsecureSkipVerify: cfg.insecureSkipVerify,
		Source:             cfg.source,
	}

	ctx := cfg.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	switch {
	case cfg.filePath != nil:
		return s.StitchContext(ctx, *cfg.filePath)
	case cfg.urlStr != nil:
		return s.StitchContext(ctx, *cfg.urlStr)
	case cfg.raw != nil:
		return s.StitchBytesContext(ctx, cfg.raw, cfg.baseLocation)
	case cfg.reader != nil:
		data, err := io.ReadAll(cfg.reader)
		if err != nil {
			return nil, fmt.Errorf("stitch: failed to read input: %w", err)
		}
		return s.StitchBytesContext(ctx, data, cfg.baseLocation)
	default:
		// Should never reach here due to validation in applyOptions
		return nil, fmt.Errorf("stitch: no input source specified")
	}
}

// applyOptions runs all options and validates the resulting configuration.
func applyOptions(opts ...Option) (*stitchConfig, error) {
	cfg := &stitchConfig{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	err := options.ValidateSingleInputSource(
		"an input source is required: use WithFilePath, WithURL, WithBytes, or WithReader",
		"only one input source may be set",
		cfg.filePath != nil, cfg.urlStr != nil, cfg.raw != nil, cfg.reader != nil,
	)
	if err != nil {
		return nil, err
	}

	if err := options.ValidateNonNegative("max depth", int64(cfg.maxDepth)); err != nil {
		return nil, &stitcherrors.ConfigError{Option: "WithMaxDepth", Value: cfg.maxDepth, Cause: err}
	}
	if err := options.ValidateNonNegative("max file size", cfg.maxFileSize); err != nil {
		return nil, &stitcherrors.ConfigError{Option: "WithMaxFileSize", Value: cfg.maxFileSize, Cause: err}
	}

	return cfg, nil
}

// WithFilePath sets a file path as the input source.
func WithFilePath(path string) Option {
	return func(cfg *stitchConfig) error {
		if path == "" {
			return &stitcherrors.ConfigError{Option: "WithFilePath", Message: "path must not be empty"}
		}
		cfg.filePath = &path
		return nil
	}
}

// WithURL sets an HTTP(S) URL as the input source.
func WithURL(url string) Option {
	return func(cfg *stitchConfig) error {
		if !resolver.IsURLString(url) {
			return &stitcherrors.ConfigError{Option: "WithURL", Value: url, Message: "must be an http:// or https:// URL"}
		}
		cfg.urlStr = &url
		return nil
	}
}

// WithBytes sets raw document text as the input source.
func WithBytes(raw []byte) Option {
	return func(cfg *stitchConfig) error {
		if raw == nil {
			return &stitcherrors.ConfigError{Option: "WithBytes", Message: "raw must not be nil"}
		}
		cfg.raw = raw
		return nil
	}
}

// WithReader sets an io.Reader as the input source.
func WithReader(r io.Reader) Option {
	return func(cfg *stitchConfig) error {
		if r == nil {
			return &stitcherrors.ConfigError{Option: "WithReader", Message: "reader must not be nil"}
		}
		cfg.reader = r
		return nil
	}
}

// WithContext sets the context governing fetches for this call.
func WithContext(ctx context.Context) Option {
	return func(cfg *stitchConfig) error {
		cfg.ctx = ctx
		return nil
	}
}

// WithBaseLocation sets the location the raw input should be treated as
// residing at; relative references resolve against its directory. It only
// applies with WithBytes or WithReader. Defaults to the current working
// directory.
func WithBaseLocation(location string) Option {
	return func(cfg *stitchConfig) error {
		cfg.baseLocation = location
		return nil
	}
}

// WithOutputFormat selects yaml or json output. Default: match the input.
func WithOutputFormat(format OutputFormat) Option {
	return func(cfg *stitchConfig) error {
		switch format {
		case FormatYAML, FormatJSON:
			cfg.outputFormat = format
			return nil
		default:
			return &stitcherrors.ConfigError{Option: "WithOutputFormat", Value: string(format), Message: "must be yaml or json"}
		}
	}
}

// WithLogger sets the structured logger for debug output.
func WithLogger(logger resolver.Logger) Option {
	return func(cfg *stitchConfig) error {
		cfg.logger = logger
		return nil
	}
}

// WithHTTPClient sets the HTTP client used for URL fetches.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *stitchConfig) error {
		cfg.httpClient = client
		return nil
	}
}

// WithInsecureSkipVerify disables TLS certificate verification for URL
// fetches. Ignored when WithHTTPClient is set.
func WithInsecureSkipVerify(insecure bool) Option {
	return func(cfg *stitchConfig) error {
		cfg.insecureSkipVerify = insecure
		return nil
	}
}

// WithUserAgent sets the User-Agent header for URL fetches.
func WithUserAgent(userAgent string) Option {
	return func(cfg *stitchConfig) error {
		cfg.userAgent = userAgent
		return nil
	}
}

// WithMaxDepth caps $ref recursion depth. Zero means the default.
func WithMaxDepth(depth int) Option {
	return func(cfg *stitchConfig) error {
		cfg.maxDepth = depth
		return nil
	}
}

// WithMaxFileSize caps fetched document size in bytes. Zero means the
// default.
func WithMaxFileSize(size int64) Option {
	return func(cfg *stitchConfig) error {
		cfg.maxFileSize = size
		return nil
	}
}

// WithContentSource overrides the content source entirely. Useful for
// virtual filesystems and test doubles.
func WithContentSource(source resolver.ContentSource) Option {
	return func(cfg *stitchConfig) error {
		cfg.source = source
		return nil
	}
}
