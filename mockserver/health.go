package mockserver

import (
	"net/http"
	"runtime"
	"time"

	"backoffice/config"

	"github.com/gin-gonic/gin"
)

// HealthController Health check controller
type HealthController struct {
	config    *config.Config
	data      *Data
	startTime time.Time
}

func NewHealthController(cfg *config.Config, data *Data) *HealthController {
	return &HealthController{
		config:    cfg,
		data:      data,
		startTime: time.Now(),
	}
}

// RegisterRoutes Register health check routes
func (h *HealthController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.Health)
	router.GET("/health/live", h.Liveness)
	router.GET("/health/ready", h.Readiness)
}

type HealthResponse struct {
	Status    string         `json:"status"`
	Version   string         `json:"version"`
	Uptime    string         `json:"uptime"`
	Timestamp string         `json:"timestamp"`
	Records   map[string]int `json:"records"`
	System    *SystemInfo    `json:"system,omitempty"`
}

type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumCPU       int    `json:"num_cpu"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
}

// Health reports uptime and collection sizes.
func (h *HealthController) Health(ctx *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Version:   h.config.App.Version,
		Uptime:    time.Since(h.startTime).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Records:   h.data.Counts(),
	}

	// Only expose system info in development mode
	if h.config.IsDevelopment() {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)
		resp.System = &SystemInfo{
			GoVersion:    runtime.Version(),
			NumCPU:       runtime.NumCPU(),
			NumGoroutine: runtime.NumGoroutine(),
			MemAlloc:     memStats.Alloc,
		}
	}

	ctx.JSON(http.StatusOK, resp)
}

// Liveness Liveness check
func (h *HealthController) Liveness(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Readiness is ready once the configuration record exists.
func (h *HealthController) Readiness(ctx *gin.Context) {
	h.data.mu.RLock()
	ready := h.data.configuration.ID != 0
	h.data.mu.RUnlock()

	if !ready {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "not_ready",
			"message": "store configuration not seeded",
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
}
