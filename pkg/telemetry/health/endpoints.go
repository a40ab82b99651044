package health

import (
	"encoding/json"
	"net/http"
)

// LivenessHandler serves the liveness probe. It always reports ok with
// status 200.
func (c *Checker) LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, c.Liveness(r.Context()), http.StatusOK)
	})
}

// ReadinessHandler serves the readiness probe. A degraded status is
// reported with 503 so load balancers stop routing to the process.
func (c *Checker) ReadinessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := c.Readiness(r.Context())
		code := http.StatusOK
		if status.Status == "degraded" {
			code = http.StatusServiceUnavailable
		}
		writeStatus(w, status, code)
	})
}

func writeStatus(w http.ResponseWriter, status Status, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(status)
}
