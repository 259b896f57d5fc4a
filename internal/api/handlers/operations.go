package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/pegkeeper/dollar-protocol-service/internal/types"
	"github.com/pegkeeper/dollar-protocol-service/internal/utils"
)

// The service does not authenticate callers. Every mutation names its caller
// in the payload and the protocol permission checks run against that account.

type CallerRequestPayload struct {
	Caller string `json:"caller"`
}

type AmountRequestPayload struct {
	Caller string `json:"caller"`
	Amount string `json:"amount"`
}

// UnbondRequestPayload releases either an amount of the staking asset or an
// exact number of shares. Exactly one of the two must be set.
type UnbondRequestPayload struct {
	Caller string `json:"caller"`
	Amount string `json:"amount,omitempty"`
	Shares string `json:"shares,omitempty"`
}

type ClaimRequestPayload struct {
	Caller string `json:"caller"`
	Asset  string `json:"asset"`
	Amount string `json:"amount"`
}

type ProvideRequestPayload struct {
	Caller   string `json:"caller"`
	Amount   string `json:"amount"`
	OneSided bool   `json:"one_sided,omitempty"`
}

type ApproveRequestPayload struct {
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
	Asset   string `json:"asset"`
	Amount  string `json:"amount"`
}

type VoteRequestPayload struct {
	Caller string `json:"caller"`
	Choice string `json:"choice"`
}

type CommitRequestPayload struct {
	Caller    string `json:"caller"`
	Emergency bool   `json:"emergency,omitempty"`
}

func decodePayload(request *http.Request, payload any) *types.Error {
	if err := json.NewDecoder(request.Body).Decode(payload); err != nil {
		return types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid request payload")
	}
	return nil
}

func parseAccount(raw, name string) (types.AccountID, *types.Error) {
	if !utils.IsValidAccountID(raw) {
		return "", types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid "+name)
	}
	return types.AccountID(raw), nil
}

func parseAmount(raw, name string) (types.Amount, *types.Error) {
	amount, err := types.AmountFromString(raw)
	if err != nil {
		return types.ZeroAmount(), types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid "+name)
	}
	return amount, nil
}

func parseCandidateParam(request *http.Request) (string, *types.Error) {
	candidate := chi.URLParam(request, "candidate")
	if !utils.IsValidCandidateID(candidate) {
		return "", types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid candidate")
	}
	return candidate, nil
}

// parseAmountOperation reads the pool, caller and amount shared by deposit,
// withdraw and bond.
func parseAmountOperation(request *http.Request) (types.PoolID, types.AccountID, types.Amount, *types.Error) {
	poolID, err := parsePoolParam(request)
	if err != nil {
		return "", "", types.ZeroAmount(), err
	}
	payload := &AmountRequestPayload{}
	if err := decodePayload(request, payload); err != nil {
		return "", "", types.ZeroAmount(), err
	}
	caller, err := parseAccount(payload.Caller, "caller")
	if err != nil {
		return "", "", types.ZeroAmount(), err
	}
	amount, err := parseAmount(payload.Amount, "amount")
	if err != nil {
		return "", "", types.ZeroAmount(), err
	}
	return poolID, caller, amount, nil
}

// Deposit godoc
// @Summary Deposit into a pool
// @Description Stages amount of the pool's staking asset. The caller must have approved the pool address first.
// @Accept json
// @Produce json
// @Param pool path string true "Pool id" Enums(dao, bonding, lp, gov)
// @Param payload body AmountRequestPayload true "Caller and amount"
// @Success 200 {object} PublicResponse[types.Event] "Deposit event"
// @Failure 400 {object} types.Error "Invalid payload, balance or allowance"
// @Failure 403 {object} types.Error "Account is not frozen or pool is paused"
// @Failure 404 {object} types.Error "Pool not found"
// @Router /v1/pools/{pool}/deposit [post]
func (h *Handler) Deposit(request *http.Request) (*Result, *types.Error) {
	poolID, caller, amount, err := parseAmountOperation(request)
	if err != nil {
		return nil, err
	}
	evt, err := h.services.Deposit(request.Context(), poolID, caller, amount)
	if err != nil {
		return nil, err
	}
	return NewResult(evt), nil
}

// Withdraw godoc
// @Summary Withdraw from a pool
// @Description Returns amount of staged balance to the caller.
// @Accept json
// @Produce json
// @Param pool path string true "Pool id" Enums(dao, bonding, lp, gov)
// @Param payload body AmountRequestPayload true "Caller and amount"
// @Success 200 {object} PublicResponse[types.Event] "Withdraw event"
// @Failure 400 {object} types.Error "Invalid payload or insufficient staged balance"
// @Failure 403 {object} types.Error "Account is not frozen"
// @Failure 404 {object} types.Error "Pool not found"
// @Router /v1/pools/{pool}/withdraw [post]
func (h *Handler) Withdraw(request *http.Request) (*Result, *types.Error) {
	poolID, caller, amount, err := parseAmountOperation(request)
	if err != nil {
		return nil, err
	}
	evt, err := h.services.Withdraw(request.Context(), poolID, caller, amount)
	if err != nil {
		return nil, err
	}
	return NewResult(evt), nil
}

// Bond godoc
// @Summary Bond staged balance
// @Description Moves amount from staged into bonded and starts the exit lockup.
// @Accept json
// @Produce json
// @Param pool path string true "Pool id" Enums(dao, bonding, lp, gov)
// @Param payload body AmountRequestPayload true "Caller and amount"
// @Success 200 {object} PublicResponse[types.Event] "Bond event"
// @Failure 400 {object} types.Error "Invalid payload or insufficient staged balance"
// @Failure 403 {object} types.Error "Account is locked or pool is paused"
// @Failure 409 {object} types.Error "Bonding is gated by the price"
// @Router /v1/pools/{pool}/bond [post]
func (h *Handler) Bond(request *http.Request) (*Result, *types.Error) {
	poolID, caller, amount, err := parseAmountOperation(request)
	if err != nil {
		return nil, err
	}
	evt, err := h.services.Bond(request.Context(), poolID, caller, amount)
	if err != nil {
		return nil, err
	}
	return NewResult(evt), nil
}

// Unbond godoc
// @Summary Unbond from a pool
// @Description Releases bonded balance back to staged, crystallizing rewards into claimable. Pass either amount or shares.
// @Accept json
// @Produce json
// @Param pool path string true "Pool id" Enums(dao, bonding, lp, gov)
// @Param payload body UnbondRequestPayload true "Caller and amount or shares"
// @Success 200 {object} PublicResponse[types.Event] "Unbond event"
// @Failure 400 {object} types.Error "Invalid payload or insufficient bonded balance"
// @Failure 403 {object} types.Error "Account is locked"
// @Router /v1/pools/{pool}/unbond [post]
func (h *Handler) Unbond(request *http.Request) (*Result, *types.Error) {
	poolID, err := parsePoolParam(request)
	if err != nil {
		return nil, err
	}
	payload := &UnbondRequestPayload{}
	if err := decodePayload(request, payload); err != nil {
		return nil, err
	}
	caller, err := parseAccount(payload.Caller, "caller")
	if err != nil {
		return nil, err
	}
	if (payload.Amount == "") == (payload.Shares == "") {
		return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "exactly one of amount and shares is required")
	}

	var evt *types.Event
	if payload.Shares != "" {
		shares, err := parseAmount(payload.Shares, "shares")
		if err != nil {
			return nil, err
		}
		evt, err = h.services.Unbond(request.Context(), poolID, caller, shares)
		if err != nil {
			return nil, err
		}
	} else {
		amount, err := parseAmount(payload.Amount, "amount")
		if err != nil {
			return nil, err
		}
		evt, err = h.services.UnbondUnderlying(request.Context(), poolID, caller, amount)
		if err != nil {
			return nil, err
		}
	}
	return NewResult(evt), nil
}

// Claim godoc
// @Summary Claim rewards
// @Description Pays out claimable reward of one reward asset.
// @Accept json
// @Produce json
// @Param pool path string true "Pool id" Enums(bonding, lp, gov)
// @Param payload body ClaimRequestPayload true "Caller, reward asset and amount"
// @Success 200 {object} PublicResponse[types.Event] "Claim event"
// @Failure 400 {object} types.Error "Invalid payload, unknown reward asset or insufficient claimable balance"
// @Failure 403 {object} types.Error "Account is not frozen"
// @Router /v1/pools/{pool}/claim [post]
func (h *Handler) Claim(request *http.Request) (*Result, *types.Error) {
	poolID, err := parsePoolParam(request)
	if err != nil {
		return nil, err
	}
	payload := &ClaimRequestPayload{}
	if err := decodePayload(request, payload); err != nil {
		return nil, err
	}
	caller, err := parseAccount(payload.Caller, "caller")
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(payload.Amount, "amount")
	if err != nil {
		return nil, err
	}
	evt, err := h.services.Claim(request.Context(), poolID, caller, types.AssetID(payload.Asset), amount)
	if err != nil {
		return nil, err
	}
	return NewResult(evt), nil
}

// Provide godoc
// @Summary Compound rewards into liquidity
// @Description Pairs amount of rewarded Dollar with the counter asset on the venue and bonds the minted LP tokens.
// @Accept json
// @Produce json
// @Param pool path string true "Pool id" Enums(lp)
// @Param payload body ProvideRequestPayload true "Caller, amount and whether to provide one-sided"
// @Success 200 {object} PublicResponse[types.Event] "Provide event"
// @Failure 400 {object} types.Error "Invalid payload or insufficient rewarded balance"
// @Failure 403 {object} types.Error "Account is not frozen or pool is paused"
// @Router /v1/pools/{pool}/provide [post]
func (h *Handler) Provide(request *http.Request) (*Result, *types.Error) {
	poolID, err := parsePoolParam(request)
	if err != nil {
		return nil, err
	}
	payload := &ProvideRequestPayload{}
	if err := decodePayload(request, payload); err != nil {
		return nil, err
	}
	caller, err := parseAccount(payload.Caller, "caller")
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(payload.Amount, "amount")
	if err != nil {
		return nil, err
	}
	provide := h.services.Provide
	if payload.OneSided {
		provide = h.services.ProvideOneSided
	}
	evt, err := provide(request.Context(), poolID, caller, amount)
	if err != nil {
		return nil, err
	}
	return NewResult(evt), nil
}

// PokeRewards godoc
// @Summary Crystallize rewards
// @Description Moves every rewarded balance of the caller into claimable without unbonding.
// @Accept json
// @Produce json
// @Param pool path string true "Pool id" Enums(bonding, lp, gov)
// @Param payload body CallerRequestPayload true "Caller"
// @Success 200 {object} PublicResponse[types.Event] "Rewards poked event"
// @Failure 400 {object} types.Error "Invalid payload"
// @Failure 404 {object} types.Error "Pool not found"
// @Router /v1/pools/{pool}/poke [post]
func (h *Handler) PokeRewards(request *http.Request) (*Result, *types.Error) {
	poolID, err := parsePoolParam(request)
	if err != nil {
		return nil, err
	}
	payload := &CallerRequestPayload{}
	if err := decodePayload(request, payload); err != nil {
		return nil, err
	}
	caller, err := parseAccount(payload.Caller, "caller")
	if err != nil {
		return nil, err
	}
	evt, err := h.services.PokeRewards(request.Context(), poolID, caller)
	if err != nil {
		return nil, err
	}
	return NewResult(evt), nil
}

// Approve godoc
// @Summary Approve a spender
// @Description Lets spender move amount of the owner's asset. Deposits pull through the pool address, so approve it first.
// @Accept json
// @Produce json
// @Param payload body ApproveRequestPayload true "Owner, spender, asset and amount"
// @Success 200 {object} PublicResponse[ApproveRequestPayload] "Recorded approval"
// @Failure 400 {object} types.Error "Invalid payload or unknown asset"
// @Router /v1/approvals [post]
func (h *Handler) Approve(request *http.Request) (*Result, *types.Error) {
	payload := &ApproveRequestPayload{}
	if err := decodePayload(request, payload); err != nil {
		return nil, err
	}
	owner, err := parseAccount(payload.Owner, "owner")
	if err != nil {
		return nil, err
	}
	spender, err := parseAccount(payload.Spender, "spender")
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(payload.Amount, "amount")
	if err != nil {
		return nil, err
	}
	if err := h.services.Approve(request.Context(), types.AssetID(payload.Asset), owner, spender, amount); err != nil {
		return nil, err
	}
	return NewResult(payload), nil
}

// Vote godoc
// @Summary Vote on a candidate
// @Description Records the caller's choice weighted by DAO bonded balance, nominating the candidate on its first vote.
// @Accept json
// @Produce json
// @Param candidate path string true "Implementation version"
// @Param payload body VoteRequestPayload true "Caller and choice (undecided, approve or reject)"
// @Success 200 {object} PublicResponse[types.Event] "Vote event"
// @Failure 400 {object} types.Error "Invalid payload, choice or stake"
// @Failure 404 {object} types.Error "Unknown implementation"
// @Failure 409 {object} types.Error "Voting ended or bootstrapping"
// @Router /v1/governance/candidates/{candidate}/vote [post]
func (h *Handler) Vote(request *http.Request) (*Result, *types.Error) {
	candidate, err := parseCandidateParam(request)
	if err != nil {
		return nil, err
	}
	payload := &VoteRequestPayload{}
	if err := decodePayload(request, payload); err != nil {
		return nil, err
	}
	caller, err := parseAccount(payload.Caller, "caller")
	if err != nil {
		return nil, err
	}
	choice, parseErr := types.ParseVoteChoice(payload.Choice)
	if parseErr != nil {
		return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid choice")
	}
	evt, err := h.services.Vote(request.Context(), caller, candidate, choice)
	if err != nil {
		return nil, err
	}
	return NewResult(evt), nil
}

// Commit godoc
// @Summary Commit a candidate
// @Description Switches the active implementation to an approved candidate. Emergency commits need a super majority of the current stake.
// @Accept json
// @Produce json
// @Param candidate path string true "Implementation version"
// @Param payload body CommitRequestPayload true "Caller and whether to commit early"
// @Success 200 {object} PublicResponse[types.Event] "Commit event"
// @Failure 400 {object} types.Error "Invalid payload"
// @Failure 409 {object} types.Error "Candidate not nominated, not ended or not approved"
// @Router /v1/governance/candidates/{candidate}/commit [post]
func (h *Handler) Commit(request *http.Request) (*Result, *types.Error) {
	candidate, err := parseCandidateParam(request)
	if err != nil {
		return nil, err
	}
	payload := &CommitRequestPayload{}
	if err := decodePayload(request, payload); err != nil {
		return nil, err
	}
	caller, err := parseAccount(payload.Caller, "caller")
	if err != nil {
		return nil, err
	}
	commit := h.services.Commit
	if payload.Emergency {
		commit = h.services.EmergencyCommit
	}
	evt, err := commit(request.Context(), caller, candidate)
	if err != nil {
		return nil, err
	}
	return NewResult(evt), nil
}
