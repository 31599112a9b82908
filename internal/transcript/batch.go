package transcript

import (
	"context"
	"errors"

	"ytcaptions/internal/logging"
	"ytcaptions/internal/services"
)

// BatchOptions controls GetBatch.
type BatchOptions struct {
	// ContinueOnError records failed videos and moves on instead of
	// aborting. Cancellation always aborts.
	ContinueOnError bool
}

// Failure pairs a video with the error that stopped its lookup.
type Failure struct {
	VideoID string
	Err     error
}

// BatchResult holds the transcripts fetched by GetBatch in input order.
type BatchResult struct {
	Results       []Result
	Unretrievable []Failure
}

// GetBatch runs Get for each id in order. Without ContinueOnError the first
// failure is returned alongside the results gathered so far.
func (c *Client) GetBatch(ctx context.Context, videoIDs []string, q Query, opts BatchOptions) (BatchResult, error) {
	var out BatchResult
	for _, id := range videoIDs {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		result, err := c.Get(ctx, id, q)
		if err == nil {
			out.Results = append(out.Results, result)
			continue
		}
		if !opts.ContinueOnError || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return out, err
		}
		out.Unretrievable = append(out.Unretrievable, Failure{VideoID: id, Err: err})
		logging.WithContext(services.WithVideoID(ctx, id), c.logger).Warn("transcript unavailable, continuing",
			logging.String(logging.FieldErrorKind, KindOf(err).String()),
			logging.Error(err),
		)
	}
	return out, nil
}

// FailedIDs lists the ids of the failed lookups.
func (r BatchResult) FailedIDs() []string {
	ids := make([]string, 0, len(r.Unretrievable))
	for _, f := range r.Unretrievable {
		ids = append(ids, f.VideoID)
	}
	return ids
}
