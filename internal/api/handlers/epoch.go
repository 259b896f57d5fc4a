package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/pegkeeper/dollar-protocol-service/internal/types"
	"github.com/pegkeeper/dollar-protocol-service/internal/utils"
)

// anonymousCaller is recorded on advances made without a caller.
const anonymousCaller types.AccountID = "anonymous"

type AdvanceRequestPayload struct {
	Caller string `json:"caller"`
}

func parseAdvanceRequestPayload(request *http.Request) (types.AccountID, *types.Error) {
	payload := &AdvanceRequestPayload{}
	err := json.NewDecoder(request.Body).Decode(payload)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid request payload")
	}
	if payload.Caller == "" {
		return anonymousCaller, nil
	}
	if !utils.IsValidAccountID(payload.Caller) {
		return "", types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid caller")
	}
	return types.AccountID(payload.Caller), nil
}

// GetEpoch godoc
// @Summary Get the current epoch
// @Description Returns the protocol epoch, the wall-clock epoch and the supply figures the regulator works with.
// @Produce json
// @Success 200 {object} PublicResponse[services.EpochPublic] "Current epoch"
// @Router /v1/epoch [get]
func (h *Handler) GetEpoch(request *http.Request) (*Result, *types.Error) {
	return NewResult(h.services.Epoch(request.Context())), nil
}

// AdvanceEpoch godoc
// @Summary Advance the epoch
// @Description Moves the protocol one epoch forward and runs the supply rebase. Anyone may call it once the epoch is due.
// @Accept json
// @Produce json
// @Param payload body AdvanceRequestPayload false "Caller recorded on the advance event"
// @Success 200 {object} PublicResponse[[]types.Event] "Events emitted by the advance"
// @Failure 400 {object} types.Error "Invalid request payload"
// @Failure 409 {object} types.Error "Epoch is not due yet"
// @Router /v1/epoch/advance [post]
func (h *Handler) AdvanceEpoch(request *http.Request) (*Result, *types.Error) {
	caller, err := parseAdvanceRequestPayload(request)
	if err != nil {
		return nil, err
	}
	events, err := h.services.Advance(request.Context(), caller)
	if err != nil {
		return nil, err
	}
	return NewResult(events), nil
}

// GetEpochSnapshot godoc
// @Summary Get an epoch snapshot
// @Description Returns the supply, debt and bonded totals recorded when the protocol advanced into the epoch.
// @Produce json
// @Param epoch path integer true "Epoch number"
// @Success 200 {object} PublicResponse[services.EpochSnapshotPublic] "Epoch snapshot"
// @Failure 400 {object} types.Error "Invalid epoch"
// @Failure 404 {object} types.Error "Snapshot not found"
// @Router /v1/epochs/{epoch}/snapshot [get]
func (h *Handler) GetEpochSnapshot(request *http.Request) (*Result, *types.Error) {
	epoch, err := strconv.ParseUint(chi.URLParam(request, "epoch"), 10, 64)
	if err != nil {
		return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid epoch")
	}
	snapshot, apiErr := h.services.EpochSnapshot(request.Context(), epoch)
	if apiErr != nil {
		return nil, apiErr
	}
	return NewResult(snapshot), nil
}
