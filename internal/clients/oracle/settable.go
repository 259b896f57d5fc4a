package oracle

import (
	"context"
	"sync"

	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

// SettableOracle returns whatever price was last set on it.
type SettableOracle struct {
	mu    sync.Mutex
	price types.Decimal
	valid bool
}

func NewSettableOracle(price types.Decimal, valid bool) *SettableOracle {
	return &SettableOracle{price: price, valid: valid}
}

func (o *SettableOracle) Set(price types.Decimal, valid bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.price = price
	o.valid = valid
}

func (o *SettableOracle) Capture(ctx context.Context) (types.Decimal, bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.price, o.valid, nil
}
