package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"paintcalc/internal/calc"
	"paintcalc/internal/domain"
	"paintcalc/internal/export"
	"paintcalc/internal/repository"
	"paintcalc/internal/store"
	"paintcalc/internal/units"
)

// ErrInvalidInput 输入校验失败（校验只发生在这一层，calc 引擎不做校验）
var ErrInvalidInput = errors.New("invalid input")

const resultCacheTTL = time.Hour

// RoomInput 房间创建/更新入参
type RoomInput struct {
	RoomName string  `json:"room_name"`
	Length   float64 `json:"length"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// OpeningInput 开口创建/更新入参。
// Width/Height 为 nil 时使用类型默认尺寸（按当前单位制换算）；
// Action 为空时使用类型默认动作；FaceCount 0 表示不覆盖默认面数。
type OpeningInput struct {
	Type      domain.OpeningType `json:"type"`
	Width     *float64           `json:"width"`
	Height    *float64           `json:"height"`
	Quantity  int                `json:"quantity"`
	Action    domain.Action      `json:"action"`
	FaceCount int                `json:"face_count"`
}

// ProjectService 项目服务：所有修改操作都递增 Revision，
// Calculate 按 (projectID, revision) 缓存，保证读不到过期结果。
type ProjectService interface {
	CreateProject(ctx context.Context, name string, system units.System) (*domain.Project, error)
	GetProject(ctx context.Context, projectID string) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]*domain.Project, error)
	RenameProject(ctx context.Context, projectID, name string) (*domain.Project, error)
	DeleteProject(ctx context.Context, projectID string) error

	AddRoom(ctx context.Context, projectID string, in RoomInput) (*domain.Project, error)
	UpdateRoom(ctx context.Context, projectID, roomID string, in RoomInput) (*domain.Project, error)
	DeleteRoom(ctx context.Context, projectID, roomID string) (*domain.Project, error)

	AddOpening(ctx context.Context, projectID, roomID string, in OpeningInput) (*domain.Project, error)
	UpdateOpening(ctx context.Context, projectID, roomID, openingID string, in OpeningInput) (*domain.Project, error)
	DeleteOpening(ctx context.Context, projectID, roomID, openingID string) (*domain.Project, error)

	UpdateSettings(ctx context.Context, projectID string, settings domain.Settings) (*domain.Project, error)
	SwitchUnits(ctx context.Context, projectID string, to units.System) (*domain.Project, error)

	Calculate(ctx context.Context, projectID string) (*domain.CalculationResult, error)
	Export(ctx context.Context, projectID string, format export.Format) (*export.File, error)
}

type projectService struct {
	repo   repository.ProjectsRepository
	cache  store.KV
	logger *zap.Logger
}

// NewProjectService 创建 ProjectService 实例
func NewProjectService(repo repository.ProjectsRepository, cache store.KV, logger *zap.Logger) ProjectService {
	return &projectService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (s *projectService) CreateProject(ctx context.Context, name string, system units.System) (*domain.Project, error) {
	if name == "" {
		name = "Untitled Project"
	}
	if system == "" {
		system = units.Imperial
	}
	if !units.Valid(system) {
		return nil, fmt.Errorf("%w: unknown unit system %q", ErrInvalidInput, system)
	}

	now := time.Now().UTC()
	p := &domain.Project{
		ProjectID:   uuid.NewString(),
		ProjectName: name,
		UnitSystem:  system,
		Settings:    domain.DefaultSettings(),
		Rooms:       []domain.Room{},
		Revision:    0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateProject(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("project created",
		zap.String("project_id", p.ProjectID),
		zap.String("unit_system", string(system)))
	return p, nil
}

func (s *projectService) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	return s.repo.GetProject(ctx, projectID)
}

func (s *projectService) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	return s.repo.ListProjects(ctx)
}

func (s *projectService) RenameProject(ctx context.Context, projectID, name string) (*domain.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}
	return s.mutate(ctx, projectID, func(p *domain.Project) error {
		p.ProjectName = name
		return nil
	})
}

func (s *projectService) DeleteProject(ctx context.Context, projectID string) error {
	return s.repo.DeleteProject(ctx, projectID)
}

func (s *projectService) AddRoom(ctx context.Context, projectID string, in RoomInput) (*domain.Project, error) {
	if err := validateRoom(in); err != nil {
		return nil, err
	}
	return s.mutate(ctx, projectID, func(p *domain.Project) error {
		p.Rooms = append(p.Rooms, domain.Room{
			RoomID:   uuid.NewString(),
			RoomName: roomName(in.RoomName, len(p.Rooms)+1),
			Length:   in.Length,
			Width:    in.Width,
			Height:   in.Height,
			Openings: []domain.Opening{},
		})
		return nil
	})
}

func (s *projectService) UpdateRoom(ctx context.Context, projectID, roomID string, in RoomInput) (*domain.Project, error) {
	if err := validateRoom(in); err != nil {
		return nil, err
	}
	return s.mutate(ctx, projectID, func(p *domain.Project) error {
		room := findRoom(p, roomID)
		if room == nil {
			return repository.ErrNotFound
		}
		if in.RoomName != "" {
			room.RoomName = in.RoomName
		}
		room.Length = in.Length
		room.Width = in.Width
		room.Height = in.Height
		return nil
	})
}

func (s *projectService) DeleteRoom(ctx context.Context, projectID, roomID string) (*domain.Project, error) {
	return s.mutate(ctx, projectID, func(p *domain.Project) error {
		for i := range p.Rooms {
			if p.Rooms[i].RoomID == roomID {
				p.Rooms = append(p.Rooms[:i], p.Rooms[i+1:]...)
				return nil
			}
		}
		return repository.ErrNotFound
	})
}

func (s *projectService) AddOpening(ctx context.Context, projectID, roomID string, in OpeningInput) (*domain.Project, error) {
	if !domain.ValidOpeningType(in.Type) {
		return nil, fmt.Errorf("%w: unknown opening type %q", ErrInvalidInput, in.Type)
	}
	if err := validateOpening(in); err != nil {
		return nil, err
	}
	return s.mutate(ctx, projectID, func(p *domain.Project) error {
		room := findRoom(p, roomID)
		if room == nil {
			return repository.ErrNotFound
		}
		room.Openings = append(room.Openings, buildOpening(uuid.NewString(), in, p.UnitSystem))
		return nil
	})
}

func (s *projectService) UpdateOpening(ctx context.Context, projectID, roomID, openingID string, in OpeningInput) (*domain.Project, error) {
	if !domain.ValidOpeningType(in.Type) {
		return nil, fmt.Errorf("%w: unknown opening type %q", ErrInvalidInput, in.Type)
	}
	if err := validateOpening(in); err != nil {
		return nil, err
	}
	return s.mutate(ctx, projectID, func(p *domain.Project) error {
		room := findRoom(p, roomID)
		if room == nil {
			return repository.ErrNotFound
		}
		for i := range room.Openings {
			if room.Openings[i].OpeningID == openingID {
				room.Openings[i] = buildOpening(openingID, in, p.UnitSystem)
				return nil
			}
		}
		return repository.ErrNotFound
	})
}

func (s *projectService) DeleteOpening(ctx context.Context, projectID, roomID, openingID string) (*domain.Project, error) {
	return s.mutate(ctx, projectID, func(p *domain.Project) error {
		room := findRoom(p, roomID)
		if room == nil {
			return repository.ErrNotFound
		}
		for i := range room.Openings {
			if room.Openings[i].OpeningID == openingID {
				room.Openings = append(room.Openings[:i], room.Openings[i+1:]...)
				return nil
			}
		}
		return repository.ErrNotFound
	})
}

func (s *projectService) UpdateSettings(ctx context.Context, projectID string, settings domain.Settings) (*domain.Project, error) {
	if settings.Coats < 1 || settings.Coats > 4 {
		return nil, fmt.Errorf("%w: coats must be between 1 and 4", ErrInvalidInput)
	}
	if settings.WastagePercent < 0 || settings.WastagePercent > 50 {
		return nil, fmt.Errorf("%w: wastage percent must be between 0 and 50", ErrInvalidInput)
	}
	if !domain.ValidPaintType(settings.PaintType) {
		return nil, fmt.Errorf("%w: unknown paint type %q", ErrInvalidInput, settings.PaintType)
	}
	return s.mutate(ctx, projectID, func(p *domain.Project) error {
		p.Settings = settings
		return nil
	})
}

func (s *projectService) SwitchUnits(ctx context.Context, projectID string, to units.System) (*domain.Project, error) {
	if !units.Valid(to) {
		return nil, fmt.Errorf("%w: unknown unit system %q", ErrInvalidInput, to)
	}
	return s.mutate(ctx, projectID, func(p *domain.Project) error {
		p.Rescale(to)
		return nil
	})
}

// Calculate returns the pure-function result for the project's current
// state. Results are cached keyed on (projectID, revision); any mutation
// bumps the revision, so a stale result can never be served.
func (s *projectService) Calculate(ctx context.Context, projectID string) (*domain.CalculationResult, error) {
	p, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	key := resultCacheKey(p.ProjectID, p.Revision)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err == nil {
			var cached domain.CalculationResult
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
			s.logger.Warn("discarding undecodable cached result", zap.String("key", key))
		} else if err != store.ErrMiss {
			s.logger.Warn("result cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	result, err := calc.CalculateAll(p)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, key, string(raw), resultCacheTTL); err != nil {
				s.logger.Warn("result cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return result, nil
}

func (s *projectService) Export(ctx context.Context, projectID string, format export.Format) (*export.File, error) {
	result, err := s.Calculate(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return export.Build(result, format)
}

// mutate loads a project, applies fn, bumps the revision and persists.
func (s *projectService) mutate(ctx context.Context, projectID string, fn func(*domain.Project) error) (*domain.Project, error) {
	p, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	p.Revision++
	p.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateProject(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func resultCacheKey(projectID string, revision int64) string {
	return fmt.Sprintf("paintcalc:result:%s:%d", projectID, revision)
}

func findRoom(p *domain.Project, roomID string) *domain.Room {
	for i := range p.Rooms {
		if p.Rooms[i].RoomID == roomID {
			return &p.Rooms[i]
		}
	}
	return nil
}

func roomName(name string, n int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("Room %d", n)
}

// buildOpening fills unset opening fields from the type catalog. Default
// dimensions are defined in feet and rescaled when the project is metric.
func buildOpening(id string, in OpeningInput, system units.System) domain.Opening {
	spec := domain.SpecFor(in.Type)
	factor := units.ToggleFactor(units.Imperial, system)

	width := spec.Width * factor
	if in.Width != nil {
		width = *in.Width
	}
	height := spec.Height * factor
	if in.Height != nil {
		height = *in.Height
	}
	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}
	action := in.Action
	if action == "" {
		action = spec.Action
	}
	return domain.Opening{
		OpeningID: id,
		Type:      in.Type,
		Width:     width,
		Height:    height,
		Quantity:  qty,
		Action:    action,
		FaceCount: in.FaceCount,
	}
}

func validateRoom(in RoomInput) error {
	if err := validateDimension("length", in.Length); err != nil {
		return err
	}
	if err := validateDimension("width", in.Width); err != nil {
		return err
	}
	return validateDimension("height", in.Height)
}

func validateOpening(in OpeningInput) error {
	if in.Width != nil {
		if err := validateDimension("width", *in.Width); err != nil {
			return err
		}
	}
	if in.Height != nil {
		if err := validateDimension("height", *in.Height); err != nil {
			return err
		}
	}
	if in.Quantity < 0 {
		return fmt.Errorf("%w: quantity must be a positive integer", ErrInvalidInput)
	}
	if in.FaceCount < 0 {
		return fmt.Errorf("%w: face count must be a positive integer", ErrInvalidInput)
	}
	if in.Action != "" && in.Action != domain.ActionAdd && in.Action != domain.ActionSubtract {
		return fmt.Errorf("%w: action must be add or subtract", ErrInvalidInput)
	}
	return nil
}

func validateDimension(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite number", ErrInvalidInput, field)
	}
	if v <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidInput, field)
	}
	return nil
}
