package controllers

import (
	"fmt"
	"net/http"
	"time"

	"codefolio/internal/providers"
	"codefolio/internal/services"
)

type HealthController struct {
	service   services.ContestServiceInterface
	clock     providers.Clock
	startTime time.Time
}

type healthResponse struct {
	Status        string                     `json:"status"`
	Uptime        string                     `json:"uptime"`
	UptimeSeconds float64                    `json:"uptime_seconds"`
	Contests      services.AggregationHealth `json:"contests"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := hc.clock.Now().Sub(hc.startTime)
	respondJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Contests:      hc.service.Health(),
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(service services.ContestServiceInterface, clock providers.Clock) *HealthController {
	return &HealthController{
		service:   service,
		clock:     clock,
		startTime: clock.Now(),
	}
}
