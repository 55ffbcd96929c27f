package services

import (
	"timesheet/internal/config"
	"timesheet/internal/repository/sqlstore"
	"timesheet/internal/validation"
)

// NewServiceContainer wires every service over one repository
func NewServiceContainer(repo sqlstore.Repository, cfg *config.Config) *ServiceContainer {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	v := validation.NewValidatorWithConfig(cfg)
	projectService := NewProjectService(repo, v)

	return &ServiceContainer{
		ReportingService: NewReportingService(repo),
		ProjectService:   projectService,
		SessionService:   NewSessionService(repo, projectService, v),
		UserService:      NewUserService(repo, cfg, BcryptHasher{Cost: cfg.Security.BcryptCost}),
	}
}
