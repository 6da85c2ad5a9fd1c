package api

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/bher20/evtariff/internal/metrics"
	"github.com/bher20/evtariff/internal/storage"
)

const debugKey = "debug-test"

type storageStatus struct {
	Driver    string `json:"driver"`
	Connected bool   `json:"connected"`
	Error     string `json:"error,omitempty"`
}

type debugResponse struct {
	Storage storageStatus `json:"storage"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleLivez(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("live"))
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if pg, ok := storage.Unwrap(s.store).(*storage.PostgresPoolStorage); ok {
		st := pg.Stat()
		metrics.UpdateDBPoolMetrics(pg.Driver(),
			float64(st.TotalConns()), float64(st.IdleConns()), float64(st.AcquiredConns()), st.AcquireCount())
	}

	if err := s.store.Ping(ctx); err != nil {
		s.log.Warn("readyz: storage ping failed", zap.String("driver", s.store.Driver()), zap.Error(err))
		http.Error(w, "storage not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// handleDebug writes and reads back a test key
// @Summary Storage diagnostics
// @Description Writes and reads back a test key to verify the storage backend
// @Tags ops
// @Produce json
// @Success 200 {object} debugResponse
// @Router /api/debug [get]
func (s *Server) handleDebug(w http.ResponseWriter, r *http.Request) {
	status := storageStatus{Driver: s.store.Driver()}
	want := "test-value"

	if err := s.store.Set(r.Context(), debugKey, want); err != nil {
		status.Error = err.Error()
	} else if got, ok, err := s.store.Get(r.Context(), debugKey); err != nil {
		status.Error = err.Error()
	} else {
		status.Connected = ok && got == want
	}
	respondJSON(w, http.StatusOK, debugResponse{Storage: status})
}
