package handlers

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"gopet/internal/utils"
)

// HealthCheck pings one backing service.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks  map[string]HealthCheck
	timeout time.Duration
}

func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	if checks == nil {
		checks = map[string]HealthCheck{}
	}
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

type healthReport struct {
	Status   string            `json:"status"`
	Version  string            `json:"version"`
	Services map[string]string `json:"services,omitempty"`
}

// Health pings every configured backend in parallel and answers 503 when
// any of them fails.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		mu       sync.Mutex
		services = make(map[string]string, len(names))
		healthy  = true
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range names {
		name, check := name, h.checks[name]
		g.Go(func() error {
			state := "up"
			if err := check(gctx); err != nil {
				state = "down: " + err.Error()
			}
			mu.Lock()
			services[name] = state
			if state != "up" {
				healthy = false
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	report := healthReport{Status: "healthy", Version: utils.AppVersion, Services: services}
	if !healthy {
		report.Status = "unhealthy"
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, utils.APIResponse{
			Status:    utils.StatusError,
			Data:      report,
			Error:     &utils.APIError{Code: utils.CodeUnavailable, Message: "One or more dependencies are down"},
			Timestamp: time.Now(),
		})
		return
	}
	utils.SuccessResponse(c, utils.MsgHealthy, report)
}
