package api

import (
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/failover/structs"
)

// SubmitEvent posts an insufficient capacity error event to the running
// agent and returns the invocation acknowledgment.
func (c *Client) SubmitEvent(event *structs.IceEvent) (*structs.Response, error) {
	var response structs.Response
	if err := c.write("/v1/event", event, &response); err != nil {
		return nil, err
	}
	return &response, nil
}
