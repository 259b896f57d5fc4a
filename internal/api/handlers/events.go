package handlers

import (
	"net/http"

	"github.com/pegkeeper/dollar-protocol-service/internal/db"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
	"github.com/pegkeeper/dollar-protocol-service/internal/utils"
)

// GetEvents godoc
// @Summary List protocol events
// @Description Lists emitted events, newest first. Filters are optional and combine.
// @Produce json
// @Param type query string false "Event type"
// @Param pool query string false "Pool id"
// @Param account query string false "Account id"
// @Param pagination_key query string false "Pagination key to fetch the next page of events"
// @Success 200 {object} PublicResponse[[]services.EventPublic]{array} "List of events and pagination token"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Router /v1/events [get]
func (h *Handler) GetEvents(request *http.Request) (*Result, *types.Error) {
	query := request.URL.Query()
	filter := db.EventFilter{
		Type:    query.Get("type"),
		Pool:    query.Get("pool"),
		Account: query.Get("account"),
	}
	if filter.Account != "" && !utils.IsValidAccountID(filter.Account) {
		return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid account")
	}
	pageKey, err := parsePaginationQuery(request)
	if err != nil {
		return nil, err
	}
	events, nextKey, err := h.services.Events(request.Context(), filter, pageKey)
	if err != nil {
		return nil, err
	}
	return NewResultWithPagination(events, nextKey), nil
}
