/*
Package web serves composed task views, tallies, and derived statuses to
frontends and automation. It only reads: every answer is recomputed from the
record mirror on request.
*/
package web

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"bountyninja/bountyninja"
	"bountyninja/escrow"
	"bountyninja/messaging/notify"
)

type Server struct {
	Escrow    *escrow.Service
	Broadcast *notify.Broadcaster
	router    *mux.Router
}

func NewServer(escrowService *escrow.Service, broadcaster *notify.Broadcaster) *Server {
	s := &Server{
		Escrow:    escrowService,
		Broadcast: broadcaster,
		router:    mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Path("/ws").Headers("Upgrade", "websocket").HandlerFunc(s.Broadcast.Handler())
	s.router.HandleFunc("/task/{addr}", s.handleTask).Methods(http.MethodGet)
	s.router.HandleFunc("/task/{addr}/status", s.handleStatus).Methods(http.MethodGet)
	s.router.HandleFunc("/task/{addr}/payout/qr", s.handlePayoutQR).Methods(http.MethodGet)
	s.router.HandleFunc("/fees", s.handleFees).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler())
}

func (s *Server) Start() {
	bountyninja.LogCLI("Starting the bounty HTTP API", 4)
	srv := &http.Server{
		Handler:           cors.Default().Handler(s.router),
		Addr:              bountyninja.MakeOrGetConfig().GetString("httpAddr"),
		WriteTimeout:      10 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       30 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}
	bountyninja.LogCLI("listening on "+srv.Addr, 4)
	err := srv.ListenAndServe()
	if err != nil {
		bountyninja.LogCLI(err.Error(), 0)
	}
}
