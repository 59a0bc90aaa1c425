package base

import (
	"strings"
	"testing"
)

func TestConfigParse_ParseConfig(t *testing.T) {
	raw := `
aws_region = "us-east-1"
log_level  = "DEBUG"
http_port  = "9700"

failover {
  scaling_process      = "Launch"
  reservation_platform = "Linux/UNIX"
}

telemetry {
  statsd_address = "127.0.0.1:8125"
}

notification {
  provider           = "sns"
  cluster_identifier = "test-cluster"
  lab_topic          = "lab-alerts"
  production_topic   = "production-alerts"
}
`

	config, err := ParseConfig(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("expected ParseConfig error to be nil, got %v", err)
	}

	if config.Region != "us-east-1" {
		t.Fatalf("expected region us-east-1, got %v", config.Region)
	}
	if config.LogLevel != "DEBUG" {
		t.Fatalf("expected log level DEBUG, got %v", config.LogLevel)
	}
	if config.HTTPPort != "9700" {
		t.Fatalf("expected http port 9700, got %v", config.HTTPPort)
	}
	if config.Failover == nil || config.Failover.ScalingProcess != "Launch" {
		t.Fatalf("unexpected failover block: %+v", config.Failover)
	}
	if config.Telemetry == nil || config.Telemetry.StatsdAddress != "127.0.0.1:8125" {
		t.Fatalf("unexpected telemetry block: %+v", config.Telemetry)
	}
	if config.Notification == nil || config.Notification.LabTopic != "lab-alerts" {
		t.Fatalf("unexpected notification block: %+v", config.Notification)
	}
}

func TestConfigParse_InvalidKey(t *testing.T) {
	raw := `
aws_region = "us-east-1"
no_such_key = true
`

	if _, err := ParseConfig(strings.NewReader(raw)); err == nil {
		t.Fatal("expected an invalid key to fail parsing")
	}
}

func TestConfigParse_DefaultMerge(t *testing.T) {
	raw := `
notification {
  cluster_identifier = "test-cluster"
}
`

	parsed, err := ParseConfig(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("expected ParseConfig error to be nil, got %v", err)
	}

	config := DefaultConfig().Merge(parsed)

	if config.HTTPPort != DefaultHTTPPort {
		t.Fatalf("expected the default http port to survive, got %v", config.HTTPPort)
	}
	if config.Notification.Provider != "sns" {
		t.Fatalf("expected the default notification provider to survive, got %v",
			config.Notification.Provider)
	}
	if config.Notification.ClusterIdentifier != "test-cluster" {
		t.Fatalf("expected the parsed cluster identifier to win, got %v",
			config.Notification.ClusterIdentifier)
	}
}
