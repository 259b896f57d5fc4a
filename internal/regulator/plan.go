package regulator

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pegkeeper/dollar-protocol-service/internal/clients/token"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

type mint struct {
	asset  types.AssetID
	to     types.AccountID
	amount types.Amount
}

// plan is a fully computed rebase. Nothing is touched until apply has checked
// every precondition.
type plan struct {
	mints []mint

	daoBonded     types.Amount
	lessDebt      types.Amount
	newRedeemable types.Amount
	newDebt       types.Amount

	event *types.Event
}

func (pl *plan) mint(asset types.AssetID, to types.AccountID, amount types.Amount) {
	if amount.IsZero() {
		return
	}
	pl.mints = append(pl.mints, mint{asset: asset, to: to, amount: amount})
}

func (pl *plan) apply(ctx context.Context, p *Protocol) error {
	ledgers := map[types.AssetID]token.Token{}
	for _, m := range pl.mints {
		if _, ok := ledgers[m.asset]; ok {
			continue
		}
		tk, err := p.Tokens.Token(m.asset)
		if err != nil {
			return err
		}
		if !tk.IsMinter(p.DAO) {
			return types.NewErrorWithMsg(
				http.StatusInternalServerError,
				types.NotMinter,
				fmt.Sprintf("regulator is not a minter of %s", m.asset),
			)
		}
		ledgers[m.asset] = tk
	}

	st := p.State
	daoPool, ok := st.Pool(types.PoolDAO)
	if !ok && !pl.daoBonded.IsZero() {
		return fmt.Errorf("dao pool is not registered")
	}

	for _, m := range pl.mints {
		if err := ledgers[m.asset].Mint(ctx, p.DAO, m.to, m.amount); err != nil {
			return err
		}
	}

	st.Debt = st.Debt.Sub(pl.lessDebt).Add(pl.newDebt)
	st.Redeemable = st.Redeemable.Add(pl.newRedeemable)
	if ok {
		daoPool.TotalBonded = daoPool.TotalBonded.Add(pl.daoBonded)
	}
	return nil
}
