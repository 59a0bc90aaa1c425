package structs

// Tag keys required on every inbound event.
const (
	TagGroupName   = "aws:autoscaling:groupName"
	TagEnvironment = "t_env"
)

// EnvironmentLab is the environment tag value that routes alerts to the
// non-production destination. Any other value is treated as production.
const EnvironmentLab = "lab"

// IceEvent is the inbound event consumed by the orchestrator. It wraps
// the insufficient capacity error event emitted by the control plane
// together with the ordered candidate instance types and the alert
// destination.
type IceEvent struct {
	OriginalEvent OriginalEvent `json:"originalEvent"`

	// MixedTypes is the ordered candidate instance type list. Priority
	// is position; the first type with confirmed capacity wins.
	MixedTypes []string `json:"mixedTypes"`

	// SlackChannel is the alert destination identifier.
	SlackChannel string `json:"slackChannel"`
}

// OriginalEvent is the captured control plane event that reported the
// insufficient capacity error.
type OriginalEvent struct {
	Account string      `json:"account"`
	Region  string      `json:"region"`
	Detail  EventDetail `json:"detail"`
}

// EventDetail holds the API call parameters recorded on the original
// event.
type EventDetail struct {
	RequestParameters RequestParameters `json:"requestParameters"`
}

// RequestParameters are the launch parameters of the failed launch
// attempt.
type RequestParameters struct {
	AvailabilityZone    string              `json:"availabilityZone"`
	LaunchTemplate      LaunchTemplateRef   `json:"launchTemplate"`
	TagSpecificationSet TagSpecificationSet `json:"tagSpecificationSet"`
}

// TagSpecificationSet wraps the tag specifications recorded on the
// failed launch request.
type TagSpecificationSet struct {
	Items []TagSpecification `json:"items"`
}

// TagSpecification is a single tag specification entry.
type TagSpecification struct {
	Tags []Tag `json:"tags"`
}

// Tag is a single resource tag key/value pair.
type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Tags flattens the tag specification set into a single ordered tag
// list, preserving the order tags appear on the event.
func (e *IceEvent) Tags() []Tag {
	var tags []Tag
	for _, item := range e.OriginalEvent.Detail.RequestParameters.TagSpecificationSet.Items {
		tags = append(tags, item.Tags...)
	}
	return tags
}

// AvailabilityZone returns the zone the failed launch targeted.
func (e *IceEvent) AvailabilityZone() string {
	return e.OriginalEvent.Detail.RequestParameters.AvailabilityZone
}

// LaunchTemplate returns the launch template reference of the failed
// launch.
func (e *IceEvent) LaunchTemplate() LaunchTemplateRef {
	return e.OriginalEvent.Detail.RequestParameters.LaunchTemplate
}
