package convertflow

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/nicholasgasior/convertflow-go/internal/pdfdoc"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for dispatch failures and routing
// decisions (default: disabled).
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithCodec replaces the document-container codec used for PDF inputs.
func WithCodec(c pdfdoc.Codec) Option {
	return func(e *Engine) {
		e.codec = c
	}
}

// WithJPEGQuality sets the quality (1-100) used when a conversion targets
// a lossy codec (default: 92).
func WithJPEGQuality(q int) Option {
	return func(e *Engine) {
		if q > 0 && q <= 100 {
			e.jpegQuality = q
		}
	}
}

// WithCompressQuality sets the quality used by RecompressImage (default: 60).
func WithCompressQuality(q int) Option {
	return func(e *Engine) {
		if q > 0 && q <= 100 {
			e.compressQuality = q
		}
	}
}

// WithFallbackTickDelay sets the pause between progress ticks emitted by
// the fallback (default: none).
func WithFallbackTickDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.fallbackDelay = d
		}
	}
}
