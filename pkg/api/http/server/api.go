package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/voidshard/logogen/pkg/api"
	"github.com/voidshard/logogen/pkg/api/http/common"
	"github.com/voidshard/logogen/pkg/structs"
)

const (
	wait = 30 * time.Second
)

type Server struct {
	addr       string
	debug      bool
	log        zerolog.Logger
	svc        api.API
	exit       chan os.Signal
	httpserver *http.Server
}

// Handler returns the router serving the given API.
func (s *Server) Handler(svc api.API) http.Handler {
	s.svc = svc

	router := mux.NewRouter()
	router.HandleFunc(common.API_HEALTHZ, s.Healthz).Methods(http.MethodGet)
	router.HandleFunc(common.API_JOBS, s.createJob).Methods(http.MethodPost)
	router.HandleFunc(common.API_JOB, s.getJob).Methods(http.MethodGet)
	router.HandleFunc(common.API_HEALTH, s.writeHealth).Methods(http.MethodPost)

	if s.debug {
		s.log.Debug().Msg("debug enabled, adding per-request logging middleware")
		router.Use(loggingMiddleware(s.log))
	}
	return router
}

// ServeForever serves the API until Close is called or we're interrupted.
func (s *Server) ServeForever(svc api.API) error {
	s.httpserver = &http.Server{
		Handler:      s.Handler(svc),
		Addr:         s.addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpserver.Addr).Msg("listening")
		if err := s.httpserver.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errs <- err
		}
	}()

	signal.Notify(s.exit, os.Interrupt)
	defer signal.Stop(s.exit)

	select {
	case err := <-errs:
		return err
	case <-s.exit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	return s.httpserver.Shutdown(ctx)
}

func (s *Server) createJob(w http.ResponseWriter, r *http.Request) {
	cjr := &structs.CreateJobRequest{}
	err := unmarshalJson(w, r, cjr)
	if err != nil {
		return
	}

	job, err := s.svc.CreateJob(r.Context(), cjr)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(job)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to encode job")
	}
}

func (s *Server) getJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	job, err := s.svc.Job(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(job)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) writeHealth(w http.ResponseWriter, r *http.Request) {
	h, err := s.svc.Health(r.Context())
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(h)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) Close() error {
	s.exit <- os.Interrupt
	return nil
}

func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func NewServer(addr string, debug bool, log zerolog.Logger) *Server {
	return &Server{
		addr:  addr,
		debug: debug,
		log:   log,
		exit:  make(chan os.Signal, 1),
	}
}
