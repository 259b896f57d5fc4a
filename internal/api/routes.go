package api

import (
	"github.com/go-chi/chi"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/pegkeeper/dollar-protocol-service/docs"
)

func (a *Server) SetupRoutes(r *chi.Mux) {
	handlers := a.handlers
	r.Get("/healthcheck", registerHandler(handlers.HealthCheck))

	r.Get("/v1/epoch", registerHandler(handlers.GetEpoch))
	r.Post("/v1/epoch/advance", registerHandler(handlers.AdvanceEpoch))
	r.Get("/v1/epochs/{epoch}/snapshot", registerHandler(handlers.GetEpochSnapshot))
	r.Get("/v1/pools/{pool}", registerHandler(handlers.GetPool))
	r.Get("/v1/pools/{pool}/accounts/{account}", registerHandler(handlers.GetPoolAccount))
	r.Post("/v1/pools/{pool}/deposit", registerHandler(handlers.Deposit))
	r.Post("/v1/pools/{pool}/withdraw", registerHandler(handlers.Withdraw))
	r.Post("/v1/pools/{pool}/bond", registerHandler(handlers.Bond))
	r.Post("/v1/pools/{pool}/unbond", registerHandler(handlers.Unbond))
	r.Post("/v1/pools/{pool}/claim", registerHandler(handlers.Claim))
	r.Post("/v1/pools/{pool}/provide", registerHandler(handlers.Provide))
	r.Post("/v1/pools/{pool}/poke", registerHandler(handlers.PokeRewards))
	r.Post("/v1/approvals", registerHandler(handlers.Approve))
	r.Get("/v1/accounts/{account}/balances", registerHandler(handlers.GetAccountBalances))
	r.Get("/v1/governance/candidates/{candidate}", registerHandler(handlers.GetCandidate))
	r.Post("/v1/governance/candidates/{candidate}/vote", registerHandler(handlers.Vote))
	r.Post("/v1/governance/candidates/{candidate}/commit", registerHandler(handlers.Commit))
	r.Get("/v1/events", registerHandler(handlers.GetEvents))

	r.Get("/swagger/*", httpSwagger.WrapHandler)
}
