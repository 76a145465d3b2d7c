package v1

import (
	"context"
	"testing"
	"time"

	"github.com/fleetop/dispatcher/internal/adapter/llm"
	"github.com/fleetop/dispatcher/internal/adapter/telemetry"
	"github.com/fleetop/dispatcher/internal/config"
	"github.com/fleetop/dispatcher/internal/locate"
	"github.com/fleetop/dispatcher/internal/repository"
	"github.com/fleetop/dispatcher/internal/resolve"
	"github.com/fleetop/dispatcher/internal/service"
	"github.com/fleetop/dispatcher/internal/tools"
	"github.com/fleetop/dispatcher/tests/helpers"
)

// scriptedCompleter replays fixed completion responses in order.
type scriptedCompleter struct {
	responses []*llm.ChatCompletionResponse
	err       error
	calls     int
}

func (c *scriptedCompleter) CreateChatCompletion(ctx context.Context, req *llm.ChatCompletionRequest) (*llm.ChatCompletionResponse, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	idx := c.calls - 1
	if idx >= len(c.responses) {
		idx = len(c.responses) - 1
	}
	return c.responses[idx], nil
}

func newTestHandler(t *testing.T, completer llm.Completer) (*Handler, *store.SQLiteStore) {
	t.Helper()
	db := helpers.NewTestSQLiteStore(t)
	resolver := resolve.New(db)
	locator := locate.New(time.Second, telemetry.NewSimulatedSource(db))
	executor := tools.NewExecutor(db, resolver, locator, nil)
	svc := service.New(db, completer, executor, &config.Config{LLMModel: "gpt-4o"})
	return NewHandler(svc), db
}
