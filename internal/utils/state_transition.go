package utils

import (
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

// QualifiedStatusesToTransfer returns the account statuses allowed to move
// funds across the pool boundary: deposit, withdraw, claim and provide.
func QualifiedStatusesToTransfer() []types.AccountStatus {
	return []types.AccountStatus{types.StatusFrozen}
}

// QualifiedStatusesToBond returns the account statuses allowed to bond or
// unbond. A Fluid account may keep rebalancing while its exit lockup runs.
func QualifiedStatusesToBond() []types.AccountStatus {
	return []types.AccountStatus{types.StatusFrozen, types.StatusFluid}
}
