package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"paintcalc/internal/domain"
	"paintcalc/internal/units"
)

// PostgresProjectsRepo 项目存储的 PostgreSQL 实现。
// rooms 与 settings 以 JSONB 存储：估算输入是一个整体快照，没有跨项目查询需求。
type PostgresProjectsRepo struct {
	db *sql.DB
}

func NewPostgresProjectsRepo(db *sql.DB) *PostgresProjectsRepo {
	return &PostgresProjectsRepo{db: db}
}

// EnsureSchema creates the projects table if it does not exist.
func (r *PostgresProjectsRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS projects (
			project_id   UUID PRIMARY KEY,
			project_name TEXT NOT NULL,
			unit_system  TEXT NOT NULL,
			settings     JSONB NOT NULL,
			rooms        JSONB NOT NULL,
			revision     BIGINT NOT NULL DEFAULT 0,
			created_at   TIMESTAMPTZ NOT NULL,
			updated_at   TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure projects schema: %w", err)
	}
	return nil
}

func (r *PostgresProjectsRepo) CreateProject(ctx context.Context, p *domain.Project) error {
	settingsJSON, roomsJSON, err := marshalProject(p)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO projects (project_id, project_name, unit_system, settings, rooms, revision, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.ProjectID, p.ProjectName, string(p.UnitSystem), settingsJSON, roomsJSON, p.Revision, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

func (r *PostgresProjectsRepo) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT project_id::text, project_name, unit_system, settings, rooms, revision, created_at, updated_at
		FROM projects
		WHERE project_id = $1
	`, projectID)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *PostgresProjectsRepo) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT project_id::text, project_name, unit_system, settings, rooms, revision, created_at, updated_at
		FROM projects
		ORDER BY created_at, project_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresProjectsRepo) UpdateProject(ctx context.Context, p *domain.Project) error {
	settingsJSON, roomsJSON, err := marshalProject(p)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE projects
		SET project_name = $2,
		    unit_system = $3,
		    settings = $4,
		    rooms = $5,
		    revision = $6,
		    updated_at = $7
		WHERE project_id = $1
	`, p.ProjectID, p.ProjectName, string(p.UnitSystem), settingsJSON, roomsJSON, p.Revision, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresProjectsRepo) DeleteProject(ctx context.Context, projectID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE project_id = $1`, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalProject(p *domain.Project) (settingsJSON, roomsJSON []byte, err error) {
	settingsJSON, err = json.Marshal(p.Settings)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal settings: %w", err)
	}
	rooms := p.Rooms
	if rooms == nil {
		rooms = []domain.Room{}
	}
	roomsJSON, err = json.Marshal(rooms)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal rooms: %w", err)
	}
	return settingsJSON, roomsJSON, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var unitSystem string
	var settingsJSON, roomsJSON []byte
	if err := row.Scan(&p.ProjectID, &p.ProjectName, &unitSystem, &settingsJSON, &roomsJSON, &p.Revision, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.UnitSystem = units.System(unitSystem)
	if err := json.Unmarshal(settingsJSON, &p.Settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if err := json.Unmarshal(roomsJSON, &p.Rooms); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rooms: %w", err)
	}
	return &p, nil
}
