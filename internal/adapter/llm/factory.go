package llm

import (
	"log"
	"os"
	"time"
)

const (
	// EnvDispatcherMode is the environment variable name for mode selection.
	EnvDispatcherMode = "DISPATCHER_MODE"
	// ModeMock indicates mock mode should be used.
	ModeMock = "MOCK"
)

// NewCompleter creates a completion client based on the DISPATCHER_MODE
// environment variable. If DISPATCHER_MODE=MOCK, returns a MockClient;
// otherwise returns a real Client.
func NewCompleter(baseURL, apiKey string, timeout time.Duration) Completer {
	if os.Getenv(EnvDispatcherMode) == ModeMock {
		log.Println("DISPATCHER_MODE=MOCK detected, using mock completion client")
		return NewMockClient()
	}
	return NewClient(baseURL, apiKey, timeout)
}
