package event

import (
	"log/slog"

	"campus-connect/internal/global/logger"
)

var log *slog.Logger

type ModuleEvent struct{}

func (m *ModuleEvent) GetName() string {
	return "Event"
}

func (m *ModuleEvent) Init() {
	log = logger.New("Event")
}
