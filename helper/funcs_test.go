package helper

import (
	"testing"

	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/testutil"
)

func TestHelper_EventFingerprint(t *testing.T) {
	a := testutil.MakeIceEvent("g1", "lab", "us-east-1a", []string{"m5.large"})
	b := testutil.MakeIceEvent("g1", "lab", "us-east-1a", []string{"m5.large"})

	hashA, err := EventFingerprint(a)
	if err != nil {
		t.Fatalf("expected EventFingerprint error to be nil, got %v", err)
	}
	hashB, err := EventFingerprint(b)
	if err != nil {
		t.Fatalf("expected EventFingerprint error to be nil, got %v", err)
	}

	if hashA != hashB {
		t.Fatal("expected identical events to share a fingerprint")
	}

	c := testutil.MakeIceEvent("g1", "lab", "us-east-1b", []string{"m5.large"})
	hashC, err := EventFingerprint(c)
	if err != nil {
		t.Fatalf("expected EventFingerprint error to be nil, got %v", err)
	}
	if hashA == hashC {
		t.Fatal("expected different zones to produce different fingerprints")
	}
}

func TestHelper_ContainsString(t *testing.T) {
	list := []string{"m5.large", "m5.xlarge"}

	if !ContainsString(list, "m5.large") {
		t.Fatal("expected m5.large to be found")
	}
	if ContainsString(list, "m4.large") {
		t.Fatal("expected m4.large to not be found")
	}
}
