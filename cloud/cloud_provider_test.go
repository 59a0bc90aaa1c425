package cloud

import (
	"strings"
	"testing"

	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/failover/structs"
)

func TestCloud_NewFleetProviderUnknown(t *testing.T) {
	config := &structs.Config{Provider: "nimbus-2000"}

	_, err := NewFleetProvider(config)
	if err == nil {
		t.Fatal("expected an unknown provider to fail")
	}
	if !strings.Contains(err.Error(), "unknown fleet provider") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCloud_NewFleetProviderRequiresRegion(t *testing.T) {
	config := &structs.Config{Provider: "aws"}

	if _, err := NewFleetProvider(config); err == nil {
		t.Fatal("expected the aws provider to require a region")
	}
}

func TestCloud_NewFleetProviderAws(t *testing.T) {
	config := &structs.Config{Provider: "aws", Region: "us-east-1"}

	fleet, err := NewFleetProvider(config)
	if err != nil {
		t.Fatalf("expected NewFleetProvider error to be nil, got %v", err)
	}
	if fleet == nil {
		t.Fatal("expected a fleet client to be returned")
	}
}
