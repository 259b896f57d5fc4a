package handlers

import (
	"net/http"

	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

// GetPool godoc
// @Summary Get pool totals
// @Description Retrieves staged, bonded and reward totals of a pool.
// @Produce json
// @Param pool path string true "Pool id" Enums(dao, bonding, lp, gov)
// @Success 200 {object} PublicResponse[pool.PoolView] "Pool totals"
// @Failure 404 {object} types.Error "Pool not found"
// @Router /v1/pools/{pool} [get]
func (h *Handler) GetPool(request *http.Request) (*Result, *types.Error) {
	poolID, err := parsePoolParam(request)
	if err != nil {
		return nil, err
	}
	view, err := h.services.Pool(request.Context(), poolID)
	if err != nil {
		return nil, err
	}
	return NewResult(view), nil
}

// GetPoolAccount godoc
// @Summary Get an account in a pool
// @Description Retrieves the balances, rewards and status of an account in a pool.
// @Produce json
// @Param pool path string true "Pool id" Enums(dao, bonding, lp, gov)
// @Param account path string true "Account id"
// @Success 200 {object} PublicResponse[pool.AccountView] "Account in pool"
// @Failure 400 {object} types.Error "Invalid account"
// @Failure 404 {object} types.Error "Pool not found"
// @Router /v1/pools/{pool}/accounts/{account} [get]
func (h *Handler) GetPoolAccount(request *http.Request) (*Result, *types.Error) {
	poolID, err := parsePoolParam(request)
	if err != nil {
		return nil, err
	}
	account, err := parseAccountParam(request, "account")
	if err != nil {
		return nil, err
	}
	view, err := h.services.PoolAccount(request.Context(), poolID, account)
	if err != nil {
		return nil, err
	}
	return NewResult(view), nil
}

// GetAccountBalances godoc
// @Summary Get token balances of an account
// @Produce json
// @Param account path string true "Account id"
// @Success 200 {object} PublicResponse[map[string]string] "Balance per asset"
// @Failure 400 {object} types.Error "Invalid account"
// @Router /v1/accounts/{account}/balances [get]
func (h *Handler) GetAccountBalances(request *http.Request) (*Result, *types.Error) {
	account, err := parseAccountParam(request, "account")
	if err != nil {
		return nil, err
	}
	return NewResult(h.services.Balances(account)), nil
}
