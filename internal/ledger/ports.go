package ledger

import (
	"context"

	"doacoes/internal/core"
)

// Ports for the ledger sources. Rows travel in source form; coercion
// happens once, inside core.NormalizeLedger.
type (
	// Reader returns every raw donation row of a source, in source order.
	Reader interface {
		ReadRows(ctx context.Context) ([]core.RawRow, error)
	}

	// Writer appends a raw donation row to a source.
	Writer interface {
		Append(ctx context.Context, row core.RawRow) (rowRef string, err error)
	}
)
