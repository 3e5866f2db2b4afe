package resource

import (
	"context"
	"io"
)

// RateLimitedWriter wraps an io.Writer with the controller's dump rate limit.
type RateLimitedWriter struct {
	w   io.Writer
	rc  *Controller
	ctx context.Context
}

// NewRateLimitedWriter creates a new RateLimitedWriter.
func NewRateLimitedWriter(ctx context.Context, w io.Writer, rc *Controller) *RateLimitedWriter {
	return &RateLimitedWriter{
		w:   w,
		rc:  rc,
		ctx: ctx,
	}
}

func (w *RateLimitedWriter) Write(p []byte) (n int, err error) {
	if err := w.rc.AcquireDump(w.ctx, len(p)); err != nil {
		return 0, err
	}
	return w.w.Write(p)
}
