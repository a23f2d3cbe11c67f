package repository

import (
	"context"
	"errors"

	"paintcalc/internal/domain"
)

// ErrNotFound 项目不存在
var ErrNotFound = errors.New("project not found")

// ProjectsRepository 项目存储接口（memory 与 postgres 两种实现）
type ProjectsRepository interface {
	CreateProject(ctx context.Context, p *domain.Project) error
	GetProject(ctx context.Context, projectID string) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]*domain.Project, error)
	UpdateProject(ctx context.Context, p *domain.Project) error
	DeleteProject(ctx context.Context, projectID string) error
}
