package agent

import (
	"net/http"

	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/failover/structs"
	"github.com/ugorji/go/codec"
)

// EventRequest accepts an insufficient capacity error event and runs
// one failover invocation against it.
func (s *HTTPServer) EventRequest(resp http.ResponseWriter, req *http.Request) (interface{}, error) {
	if req.Method != http.MethodPost {
		return nil, CodedError(405, ErrInvalidMethod)
	}

	var event structs.IceEvent
	dec := codec.NewDecoder(req.Body, JSONHandle)
	if err := dec.Decode(&event); err != nil {
		return nil, CodedError(400, "unable to decode event: "+err.Error())
	}

	if err := validateEvent(&event); err != nil {
		return nil, err
	}

	response, err := s.orchestrator.HandleEvent(&event)
	if err != nil {
		// Only input validation fails an invocation; everything else is
		// absorbed by the orchestrator.
		return nil, CodedError(400, err.Error())
	}

	return response, nil
}

// validateEvent checks the structural fields the orchestrator cannot
// proceed without.
func validateEvent(event *structs.IceEvent) error {
	if event.AvailabilityZone() == "" {
		return errMissingField("availabilityZone")
	}
	if event.LaunchTemplate().LaunchTemplateID == "" {
		return errMissingField("launchTemplate.launchTemplateId")
	}
	if event.LaunchTemplate().Version == "" {
		return errMissingField("launchTemplate.version")
	}
	if len(event.MixedTypes) == 0 {
		return errMissingField("mixedTypes")
	}
	return nil
}

func errMissingField(field string) error {
	return CodedError(400, "event is missing required field "+field)
}
