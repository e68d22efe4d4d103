package cmd

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jsphweid/chordsheet/errors"
	"github.com/jsphweid/chordsheet/logger"
	"github.com/jsphweid/chordsheet/sheet"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the sheets and transposer over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeFn, err := openService()
		if err != nil {
			return err
		}
		defer closeFn()
		return serve(cmd.Context(), s, cfg.Server.Addr, cfg.Server.AllowedOrigins)
	},
}

// NewRouter wires every endpoint to s
func NewRouter(s *sheet.Service, log *zap.SugaredLogger) *mux.Router {
	h := &handlers{svc: s, log: log}

	router := mux.NewRouter().StrictSlash(true)
	router.Use(requestID(log))
	router.HandleFunc("/transpose", h.handleTranspose).Methods("POST")
	router.HandleFunc("/keys", h.handleKeys).Methods("GET")
	router.HandleFunc("/report", h.handleReport).Methods("GET")

	router.HandleFunc("/sheets", h.handleListSheets).Methods("GET")
	router.HandleFunc("/sheets", h.handleCreateSheet).Methods("POST")
	router.HandleFunc("/sheets/order", h.handleReorder).Methods("PUT")
	router.HandleFunc("/sheets/{id:[0-9]+}", h.handleGetSheet).Methods("GET")
	router.HandleFunc("/sheets/{id:[0-9]+}", h.handleUpdateSheet).Methods("PUT")
	router.HandleFunc("/sheets/{id:[0-9]+}", h.handleDeleteSheet).Methods("DELETE")
	router.HandleFunc("/sheets/{id:[0-9]+}/favorite", h.handleFavorite).Methods("PUT")
	router.HandleFunc("/sheets/{id:[0-9]+}/key", h.handleChangeKey).Methods("PUT")
	router.HandleFunc("/sheets/{id:[0-9]+}/preview", h.handlePreview).Methods("GET")
	router.HandleFunc("/sheets/{id:[0-9]+}/chords", h.handleChords).Methods("GET")
	return router
}

func NewHandler(s *sheet.Service, log *zap.SugaredLogger, allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
	})
	return c.Handler(NewRouter(s, log))
}

func requestID(log *zap.SugaredLogger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.New().String()
			}
			w.Header().Set("X-Request-ID", id)
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Debugw("Handled request",
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", id,
				"duration", time.Since(start),
			)
		})
	}
}

func serve(ctx context.Context, s *sheet.Service, addr string, allowedOrigins []string) error {
	log := logger.Named("http")
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewHandler(s, log, allowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("Listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Infow("Shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
