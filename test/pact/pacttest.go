//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "commerce-api"
	ConsumerName = "storefront"

	StateCustomersBaseline  = "customers baseline"
	StateCustomerEmailTaken = "customer with email ada@pact.example exists"
	StateOrderReady         = "customer and products seeded for ordering"
	StateCustomerMissing    = "no customer with the missing id"
)

const (
	ExistingCustomerID = "0b5f8f4a-9c2d-4f8e-9b48-1f6f2f4a9e01"
	MissingCustomerID  = "40400000-0000-4000-8000-000000000404"
	KeyboardProductID  = "a1b2c3d4-0001-4000-8000-000000000001"
	MouseProductID     = "a1b2c3d4-0002-4000-8000-000000000002"

	CustomerName  = "Ada Pact"
	CustomerEmail = "ada@pact.example"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
