package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paintcalc/internal/domain"
	"paintcalc/internal/units"
)

func sampleProject(id string, createdAt time.Time) *domain.Project {
	return &domain.Project{
		ProjectID:   id,
		ProjectName: "Test",
		UnitSystem:  units.Imperial,
		Settings:    domain.DefaultSettings(),
		Rooms: []domain.Room{
			{
				RoomID: "r1", RoomName: "Living Room",
				Length: 20, Width: 15, Height: 9,
				Openings: []domain.Opening{
					{OpeningID: "o1", Type: domain.OpeningWindow, Width: 4, Height: 3, Quantity: 1, Action: domain.ActionSubtract},
				},
			},
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestMemoryRepo_CRUD(t *testing.T) {
	repo := NewMemoryProjectsRepo()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.CreateProject(ctx, sampleProject("p1", now)))

	got, err := repo.GetProject(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Test", got.ProjectName)
	require.Len(t, got.Rooms, 1)

	got.ProjectName = "Renamed"
	got.Revision = 1
	require.NoError(t, repo.UpdateProject(ctx, got))

	got, err = repo.GetProject(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.ProjectName)
	assert.Equal(t, int64(1), got.Revision)

	require.NoError(t, repo.DeleteProject(ctx, "p1"))
	_, err = repo.GetProject(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepo_NotFound(t *testing.T) {
	repo := NewMemoryProjectsRepo()
	ctx := context.Background()

	_, err := repo.GetProject(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.UpdateProject(ctx, sampleProject("missing", time.Now())), ErrNotFound)
	assert.ErrorIs(t, repo.DeleteProject(ctx, "missing"), ErrNotFound)
}

// Returned projects must not alias internal state: mutating a result of
// Get must not leak into the stored copy.
func TestMemoryRepo_CloneIsolation(t *testing.T) {
	repo := NewMemoryProjectsRepo()
	ctx := context.Background()
	require.NoError(t, repo.CreateProject(ctx, sampleProject("p1", time.Now())))

	got, err := repo.GetProject(ctx, "p1")
	require.NoError(t, err)
	got.Rooms[0].Length = 999
	got.Rooms[0].Openings[0].Width = 999

	fresh, err := repo.GetProject(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 20.0, fresh.Rooms[0].Length)
	assert.Equal(t, 4.0, fresh.Rooms[0].Openings[0].Width)
}

func TestMemoryRepo_ListOrderedByCreation(t *testing.T) {
	repo := NewMemoryProjectsRepo()
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, repo.CreateProject(ctx, sampleProject("p2", base.Add(time.Second))))
	require.NoError(t, repo.CreateProject(ctx, sampleProject("p1", base)))

	list, err := repo.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "p1", list[0].ProjectID)
	assert.Equal(t, "p2", list[1].ProjectID)
}
