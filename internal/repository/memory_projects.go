package repository

import (
	"context"
	"sort"
	"sync"

	"paintcalc/internal/domain"
)

// MemoryProjectsRepo: DB 未启用时的默认存储（单用户工具本地运行的常态）。
// 读写都做深拷贝，调用方持有的 Project 与存储内部状态互不别名。
type MemoryProjectsRepo struct {
	mu       sync.RWMutex
	projects map[string]*domain.Project
}

func NewMemoryProjectsRepo() *MemoryProjectsRepo {
	return &MemoryProjectsRepo{projects: map[string]*domain.Project{}}
}

func (r *MemoryProjectsRepo) CreateProject(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[p.ProjectID] = cloneProject(p)
	return nil
}

func (r *MemoryProjectsRepo) GetProject(_ context.Context, projectID string) (*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.projects[projectID]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneProject(p), nil
}

func (r *MemoryProjectsRepo) ListProjects(_ context.Context) ([]*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, cloneProject(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ProjectID < out[j].ProjectID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryProjectsRepo) UpdateProject(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[p.ProjectID]; !ok {
		return ErrNotFound
	}
	r.projects[p.ProjectID] = cloneProject(p)
	return nil
}

func (r *MemoryProjectsRepo) DeleteProject(_ context.Context, projectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[projectID]; !ok {
		return ErrNotFound
	}
	delete(r.projects, projectID)
	return nil
}

func cloneProject(p *domain.Project) *domain.Project {
	c := *p
	c.Rooms = make([]domain.Room, len(p.Rooms))
	for i, room := range p.Rooms {
		cr := room
		cr.Openings = append([]domain.Opening(nil), room.Openings...)
		c.Rooms[i] = cr
	}
	return &c
}
