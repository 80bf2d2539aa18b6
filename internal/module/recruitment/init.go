package recruitment

import (
	"log/slog"

	"campus-connect/internal/global/logger"
)

var log *slog.Logger

type ModuleRecruitment struct{}

func (m *ModuleRecruitment) GetName() string {
	return "Recruitment"
}

func (m *ModuleRecruitment) Init() {
	log = logger.New("Recruitment")
}
