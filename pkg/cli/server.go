package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/modeltrust/mtrust/pkg/data"
)

const (
	serverShutdownWaitSeconds = 5
	serverTimeoutSeconds      = 300
	serverMaxHeaderBytes      = 20
	serverPortDefault         = 8080
	serverListLimit           = 100
)

var (
	portFlag = &cli.IntFlag{
		Name:  "port",
		Usage: "Port on which the server will listen",
		Value: serverPortDefault,
	}

	serverCmd = &cli.Command{
		Name:            "server",
		Aliases:         []string{"serve"},
		HideHelpCommand: true,
		Usage:           "Start the local scoring HTTP service",
		Action:          cmdStartServer,
		Flags: []cli.Flag{
			portFlag,
		},
	}
)

func cmdStartServer(c *cli.Context) error {
	cfg := getConfig(c)
	address := fmt.Sprintf("127.0.0.1:%d", c.Int(portFlag.Name))

	mux := makeRouter(cfg)
	s := &http.Server{
		Addr:           address,
		Handler:        mux,
		ReadTimeout:    serverTimeoutSeconds * time.Second,
		WriteTimeout:   serverTimeoutSeconds * time.Second,
		MaxHeaderBytes: 1 << serverMaxHeaderBytes,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("error starting server", "error", err)
		}
	}()

	slog.Info("server started", "address", "http://"+address)

	<-done

	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownWaitSeconds*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("error shutting down server", "error", err)
	}
	return nil
}

func makeRouter(cfg *appConfig) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler)
	mux.HandleFunc("GET /models", listModelsHandler(cfg.DB))
	mux.HandleFunc("POST /models/register", registerModelHandler(cfg))

	return mux
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version,
	})
}

func listModelsHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		list, err := data.ListScores(db, serverListLimit)
		if err != nil {
			slog.Error("error listing scores", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list models"})
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

type registerRequest struct {
	URL string `json:"url"`
}

// registerModelHandler scores the submitted MODEL URL immediately, caches
// the record, and returns it.
func registerModelHandler(cfg *appConfig) http.HandlerFunc {
	pipe := newPipeline(cfg, true)

	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "body must be {\"url\": \"...\"}"})
			return
		}

		records, err := pipe.Run(r.Context(), []string{req.URL}, io.Discard)
		if err != nil {
			slog.Error("error scoring model", "url", req.URL, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "scoring failed"})
			return
		}
		if len(records) == 0 {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "not a scorable MODEL URL"})
			return
		}

		writeJSON(w, http.StatusCreated, records[0])
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("error encoding response", "error", err)
	}
}
