package services

import (
	portsrepo "github.com/SscSPs/vidtube_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/SscSPs/vidtube_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, uploader portssvc.MediaUploader) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo, uploader, WithBcryptCost(cfg.BcryptCost))
	container.Token = NewTokenService(cfg)
	container.Auth = NewAuthService(repos.UserRepo, container.Token, cfg.LoginRequireBothIdentifiers)

	return container
}
