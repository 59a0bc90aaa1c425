package agent

import (
	"net/http"
	"time"

	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/api"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/version"
)

// StatusRequest reports the agent version, uptime and configured
// providers.
func (s *HTTPServer) StatusRequest(resp http.ResponseWriter, req *http.Request) (interface{}, error) {
	if req.Method != http.MethodGet {
		return nil, CodedError(405, ErrInvalidMethod)
	}

	status := &api.AgentStatus{
		Version:  version.Get(),
		Uptime:   time.Since(s.startTime).Round(time.Second).String(),
		Provider: s.config.Provider,
	}

	for _, n := range s.config.Notifiers {
		status.Notifiers = append(status.Notifiers, n.Name())
	}

	return status, nil
}
