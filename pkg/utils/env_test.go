package utils

import "testing"

func TestGetEnvBool(t *testing.T) {
	t.Setenv("FEATURE_X", "true")
	if !GetEnvBool("FEATURE_X", false) {
		t.Fatalf("expected FEATURE_X=true to parse as true")
	}

	t.Setenv("FEATURE_X", "nonsense")
	if !GetEnvBool("FEATURE_X", true) {
		t.Fatalf("expected malformed value to fall back to default")
	}

	t.Setenv("FEATURE_X", "")
	if GetEnvBool("FEATURE_X", false) {
		t.Fatalf("expected empty value to fall back to default")
	}
}

func TestOTelServiceName_Default(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "  ")
	if got := OTelServiceName(); got != "clixs-waitlist" {
		t.Fatalf("expected default service name, got %q", got)
	}
}
