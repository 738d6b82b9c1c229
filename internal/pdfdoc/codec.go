package pdfdoc

import (
	"context"
	"errors"
	"image"
)

// ErrUnavailable is returned by a Codec operation the current build cannot
// perform, e.g. rendering in a build without the PDFium runtime.
var ErrUnavailable = errors.New("pdfdoc: operation unavailable in this build")

// Codec reads and restructures existing paginated documents. Page indexes are
// zero-based. Implementations must be safe for concurrent use.
type Codec interface {
	// PageCount returns the number of pages in data.
	PageCount(ctx context.Context, data []byte) (int, error)
	// ExtractText returns the plain text of every page, in order.
	ExtractText(ctx context.Context, data []byte) ([]string, error)
	// RenderPage rasterizes one page at scale times its natural size
	// (scale 1 is 72 dpi).
	RenderPage(ctx context.Context, data []byte, index int, scale float64) (image.Image, error)
	// Merge concatenates the pages of every input, preserving order.
	Merge(ctx context.Context, docs [][]byte) ([]byte, error)
	// SplitPages returns one single-page document per page of data.
	SplitPages(ctx context.Context, data []byte) ([][]byte, error)
}
