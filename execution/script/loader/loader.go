// Package loader provides implementations of the Loader interface for various
// script source types.
package loader

import (
	"io"
	"net/url"
)

// Loader provides script content to a compiler. Implementations retrieve the
// content from a string, a file on disk, an io.Reader, or an HTTP endpoint.
type Loader interface {
	GetReader() (io.ReadCloser, error)
	GetSourceURL() *url.URL
}
