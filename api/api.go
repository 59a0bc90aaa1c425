package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client provides a client to the capacity failover agent API.
type Client struct {
	config Config
}

// Config is the config used to embed into the API client.
type Config struct {
	// Address is the address of the agent.
	Address string

	// HTTPClient is the client to use. Default will be used if not
	// provided.
	HTTPClient *http.Client
}

// DefaultConfig returns a default configuration for the client.
func DefaultConfig() *Config {
	return &Config{
		Address:    "http://127.0.0.1:8700",
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClient returns a new client.
func NewClient(config *Config) (*Client, error) {
	defConfig := DefaultConfig()

	if config.Address == "" {
		config.Address = defConfig.Address
	}

	if config.HTTPClient == nil {
		config.HTTPClient = defConfig.HTTPClient
	}

	return &Client{config: *config}, nil
}

// query performs a GET against the endpoint, decoding the JSON response
// into out.
func (c *Client) query(endpoint string, out interface{}) error {
	resp, err := c.config.HTTPClient.Get(c.config.Address + endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeBody(resp, out)
}

// write performs a POST against the endpoint with the JSON encoding of
// in as the body, decoding the JSON response into out.
func (c *Client) write(endpoint string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	resp, err := c.config.HTTPClient.Post(c.config.Address+endpoint,
		"application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeBody(resp, out)
}

// decodeBody decodes the response body, surfacing non-2xx responses as
// errors carrying the body text.
func decodeBody(resp *http.Response, out interface{}) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected response code %d: %s", resp.StatusCode,
			bytes.TrimSpace(body))
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
