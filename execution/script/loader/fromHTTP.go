package loader

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultHTTPTimeout = 30 * time.Second

// HTTPOptions contains configuration options for the HTTP loader.
type HTTPOptions struct {
	// Timeout specifies a time limit for requests made by the client.
	Timeout time.Duration

	// Username and Password enable HTTP basic authentication when both are set.
	Username string
	Password string

	// Headers are added to every request, e.g. a bearer token.
	Headers map[string]string
}

// DefaultHTTPOptions returns HTTPOptions with sensible defaults.
func DefaultHTTPOptions() *HTTPOptions {
	return &HTTPOptions{
		Timeout: defaultHTTPTimeout,
		Headers: make(map[string]string),
	}
}

// FromHTTP implements the Loader interface for scripts fetched from an HTTP
// endpoint. The content is fetched once, on the first GetReader call, and
// cached for subsequent calls.
type FromHTTP struct {
	sourceURL *url.URL
	options   *HTTPOptions
	client    *http.Client
	content   []byte
}

func NewFromHTTP(rawURL string, options *HTTPOptions) (*FromHTTP, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("%w: url is empty", ErrScriptNotAvailable)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %s", ErrSchemeUnsupported, u.Scheme)
	}

	if options == nil {
		options = DefaultHTTPOptions()
	}
	if options.Timeout <= 0 {
		options.Timeout = defaultHTTPTimeout
	}

	return &FromHTTP{
		sourceURL: u,
		options:   options,
		client:    &http.Client{Timeout: options.Timeout},
	}, nil
}

func (l *FromHTTP) String() string {
	return fmt.Sprintf("loader.FromHTTP{URL: %s}", l.sourceURL.String())
}

// GetReader fetches the script content and returns a reader for it.
func (l *FromHTTP) GetReader() (io.ReadCloser, error) {
	if l.content != nil {
		return io.NopCloser(bytes.NewReader(l.content)), nil
	}

	req, err := http.NewRequest(http.MethodGet, l.sourceURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if l.options.Username != "" && l.options.Password != "" {
		req.SetBasicAuth(l.options.Username, l.options.Password)
	}
	for k, v := range l.options.Headers {
		req.Header.Set(k, v)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScriptNotAvailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrScriptNotAvailable, resp.StatusCode)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if len(content) == 0 {
		return nil, fmt.Errorf("%w: response body is empty", ErrInputEmpty)
	}

	l.content = content
	return io.NopCloser(bytes.NewReader(l.content)), nil
}

// GetSourceURL returns the source URL of the script.
func (l *FromHTTP) GetSourceURL() *url.URL {
	return l.sourceURL
}
