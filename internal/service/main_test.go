package service

import (
	"testing"

	"go.uber.org/goleak"
)

// Interaction logging runs in goroutines; every test must Close the service
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
