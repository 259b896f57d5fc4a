package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/pegkeeper/dollar-protocol-service/internal/config"
	"github.com/pegkeeper/dollar-protocol-service/internal/services"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
	"github.com/pegkeeper/dollar-protocol-service/internal/utils"
)

type Handler struct {
	config   *config.Config
	services *services.Services
}

type paginationResponse struct {
	NextKey string `json:"next_key"`
}

type PublicResponse[T any] struct {
	Data       T                   `json:"data"`
	Pagination *paginationResponse `json:"pagination,omitempty"`
}

type Result struct {
	Data   interface{}
	Status int
}

// NewResult returns a successful result, with default status code 200
func NewResultWithPagination[T any](data T, pageToken string) *Result {
	res := &PublicResponse[T]{Data: data, Pagination: &paginationResponse{NextKey: pageToken}}
	return &Result{Data: res, Status: http.StatusOK}
}

func NewResult[T any](data T) *Result {
	res := &PublicResponse[T]{Data: data}
	return &Result{Data: res, Status: http.StatusOK}
}

func New(
	ctx context.Context, cfg *config.Config, services *services.Services,
) (*Handler, error) {
	return &Handler{
		config:   cfg,
		services: services,
	}, nil
}

func parseAccountParam(request *http.Request, name string) (types.AccountID, *types.Error) {
	return parseAccount(chi.URLParam(request, name), name)
}

func parsePoolParam(request *http.Request) (types.PoolID, *types.Error) {
	pool := chi.URLParam(request, "pool")
	if pool == "" {
		return "", types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "pool is required")
	}
	return types.PoolID(pool), nil
}

func parsePaginationQuery(request *http.Request) (string, *types.Error) {
	pageKey := request.URL.Query().Get("pagination_key")
	if pageKey == "" {
		return "", nil
	}
	if !utils.IsBase64URLEncoded(pageKey) {
		return "", types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid pagination key format")
	}
	return pageKey, nil
}
