package main

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// TestMain loads .env if available and silences the command logger.
func TestMain(m *testing.M) {
	_ = godotenv.Load()
	logger = zap.NewNop()

	os.Exit(m.Run())
}
