// Package server serves a rendered schema tree over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/reoring/configema"
	"github.com/reoring/configema/jsonschema"
	mw "github.com/reoring/configema/middleware"
)

// Documents are the immutable renderings of one tree.
type Documents struct {
	SchemaJSON []byte
	SchemaYAML []byte
	JSONSchema []byte
	Issues     configema.Issues
}

// Render produces every document served for root.
func Render(root configema.Node) (*Documents, error) {
	sj, err := configema.EncodeJSONIndent(root, "  ")
	if err != nil {
		return nil, fmt.Errorf("render schema json: %w", err)
	}
	sy, err := configema.EncodeYAML(root)
	if err != nil {
		return nil, fmt.Errorf("render schema yaml: %w", err)
	}
	doc, err := jsonschema.Document(root)
	if err != nil {
		return nil, fmt.Errorf("render json schema: %w", err)
	}
	js, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render json schema: %w", err)
	}
	iss, _ := configema.AsIssues(configema.Check(root))
	return &Documents{SchemaJSON: sj, SchemaYAML: sy, JSONSchema: js, Issues: iss}, nil
}

// Router returns the handler serving docs.
func Router(docs *Documents, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(mw.RequestLogger(logger))

	r.Get("/schema.json", serveBytes(docs.SchemaJSON, "application/json"))
	r.Get("/schema.yaml", serveBytes(docs.SchemaYAML, "application/yaml"))
	r.Get("/jsonschema.json", serveBytes(docs.JSONSchema, "application/schema+json"))
	r.Get("/check", func(w http.ResponseWriter, r *http.Request) {
		if len(docs.Issues) > 0 {
			mw.WriteJSON(w, http.StatusUnprocessableEntity, mw.ErrorPayload(docs.Issues))
			return
		}
		mw.WriteJSON(w, http.StatusOK, mw.ErrorPayload([]configema.Issue{}))
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		mw.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return r
}

func serveBytes(b []byte, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(b)
	}
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
