package handlers

import (
	"net/http"

	"github.com/dgraph-io/badger/v3"
	"github.com/labstack/echo/v4"
)

// HealthHandler handles GET /health — liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// ReadinessHandler handles GET /health/ready — readiness probe.
// Verifies the record store answers a read before declaring ready.
type ReadinessHandler struct {
	db *badger.DB
}

func NewReadinessHandler(db *badger.DB) *ReadinessHandler {
	return &ReadinessHandler{db: db}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	deps := make(map[string]dependencyStatus)
	healthy := true

	err := h.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte("health:probe"))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
	if h.db.IsClosed() || err != nil {
		msg := "store closed"
		if err != nil {
			msg = err.Error()
		}
		deps["store"] = dependencyStatus{Status: "unhealthy", Error: msg}
		healthy = false
	} else {
		deps["store"] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
