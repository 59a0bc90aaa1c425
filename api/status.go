package api

// AgentStatus is the response to a status API request.
type AgentStatus struct {
	Version   string   `json:"version"`
	Uptime    string   `json:"uptime"`
	Provider  string   `json:"provider"`
	Notifiers []string `json:"notifiers"`
}

// Status returns the status of the running agent.
func (c *Client) Status() (*AgentStatus, error) {
	var status AgentStatus
	if err := c.query("/v1/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}
