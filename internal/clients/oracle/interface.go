package oracle

import (
	"context"

	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

// Oracle produces the (price, isValid) pair consumed once per advance.
// An error means the oracle could not be reached at all, which is different
// from a reading that is merely invalid.
type Oracle interface {
	Capture(ctx context.Context) (types.Decimal, bool, error)
}
