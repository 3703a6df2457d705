package ingestion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/apache/arrow/go/v14/parquet/file"

	"taxi-trip-lab/internal/domain"
)

// DefaultFetchTimeout bounds the one-shot dataset download.
const DefaultFetchTimeout = 5 * time.Minute

// HTTPSource downloads the trip parquet file from a remote URL. The fetch
// is a single blocking call: any failure fails the whole load, there is no
// retry and no fallback to an empty dataset. The body is spooled to a
// temporary file because parquet reading needs random access.
type HTTPSource struct {
	url    string
	client *http.Client
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithFetchTimeout sets the HTTP client timeout.
func WithFetchTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		s.client.Timeout = d
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		s.client = client
	}
}

// NewHTTPSource creates a remote trip source for url.
func NewHTTPSource(url string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: DefaultFetchTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name identifies the source in error messages.
func (s *HTTPSource) Name() string {
	return "http:" + s.url
}

// Load downloads the file and parses it like a local parquet source.
func (s *HTTPSource) Load(ctx context.Context) (*domain.TripTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteFetch, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d from %s", ErrRemoteFetch, resp.StatusCode, s.url)
	}

	tmp, err := os.CreateTemp("", "trips-*.parquet")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteFetch, err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteFetch, err)
	}

	pf, err := file.OpenParquetFile(tmp.Name(), false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteFetch, err)
	}
	defer pf.Close()

	return readTripFile(ctx, pf)
}
