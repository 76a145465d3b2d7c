// Package service drives one orchestrator turn: operator message in, bounded
// tool loop against the completion service, natural-language answer out.
package service

import (
	"github.com/fleetop/dispatcher/internal/adapter/llm"
	"github.com/fleetop/dispatcher/internal/config"
	"github.com/fleetop/dispatcher/internal/repository"
	"github.com/fleetop/dispatcher/internal/tools"
)

type Service struct {
	store     store.Store
	completer llm.Completer
	executor  *tools.Executor
	config    *config.Config
}

func New(st store.Store, completer llm.Completer, executor *tools.Executor, cfg *config.Config) *Service {
	return &Service{
		store:     st,
		completer: completer,
		executor:  executor,
		config:    cfg,
	}
}
