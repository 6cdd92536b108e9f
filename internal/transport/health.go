package transport

import (
	"net/http"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthService is the name the wallet reports its readiness under.
const HealthService = "blockinsight7000.wallet.v1"

// NewHealthServer returns a health server reporting the wallet as not serving until
// SetServing is called.
func NewHealthServer() *health.Server {
	s := health.NewServer()
	s.SetServingStatus(HealthService, healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// SetServing flips the readiness of the wallet and of the server as a whole.
func SetServing(s *health.Server, serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.SetServingStatus(HealthService, status)
	s.SetServingStatus("", status)
}

type healthResponse struct {
	Status string `json:"status"`
}

// health answers the HTTP probe from the gRPC health state.
func (h *Handler) health(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	if h.healthServer == nil {
		h.writeJSON(w, http.StatusOK, healthResponse{Status: healthpb.HealthCheckResponse_SERVING.String()})
		return
	}
	resp, err := h.healthServer.Check(r.Context(), &healthpb.HealthCheckRequest{Service: HealthService})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	code := http.StatusOK
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		code = http.StatusServiceUnavailable
	}
	h.writeJSON(w, code, healthResponse{Status: resp.GetStatus().String()})
}
