package handlers

import (
	"net/http"

	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

// GetCandidate godoc
// @Summary Get a governance candidate
// @Description Retrieves the vote tallies, quorum and outcome of a candidate implementation.
// @Produce json
// @Param candidate path string true "Implementation version"
// @Success 200 {object} PublicResponse[services.CandidatePublic] "Candidate"
// @Failure 400 {object} types.Error "Invalid candidate"
// @Failure 404 {object} types.Error "Candidate not found"
// @Router /v1/governance/candidates/{candidate} [get]
func (h *Handler) GetCandidate(request *http.Request) (*Result, *types.Error) {
	candidate, err := parseCandidateParam(request)
	if err != nil {
		return nil, err
	}
	view, err := h.services.Candidate(request.Context(), candidate)
	if err != nil {
		return nil, err
	}
	return NewResult(view), nil
}
