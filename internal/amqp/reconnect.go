package amqp

import (
	"context"
	"log/slog"
	"time"
)

// ConsumeWithReconnect runs the report-request consume loop and redials
// with exponential backoff whenever the broker connection drops. bind is
// called once per connection so the handler can publish results over the
// same client. Returns only on context cancellation or a non-connection
// setup failure.
func ConsumeWithReconnect(ctx context.Context, url, exchange, requestQueue, resultQueue string,
	bind func(*Client) func(*ReportRequestMessage) error) error {

	attempt := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		client, err := NewClient(url, exchange, requestQueue, resultQueue)
		if err != nil {
			if !isConnectionError(err) {
				return err
			}
			wait := exponentialBackoff(attempt)
			slog.WarnContext(ctx, "AMQP connect failed, retrying",
				"error", err, "attempt", attempt, "backoff", wait)
			attempt++
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			continue
		}
		attempt = 0

		err = client.ConsumeReportRequests(ctx, bind(client))
		client.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}

		// consume only returns here when the delivery channel closed
		wait := exponentialBackoff(attempt)
		slog.WarnContext(ctx, "AMQP consume interrupted, reconnecting",
			"error", err, "backoff", wait)
		attempt++
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}
