// Package mirror stores generated datasets in the SQLite mirror.
package mirror

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/studentgen/studentgen/internal/database"
	"github.com/studentgen/studentgen/internal/models"
	"github.com/studentgen/studentgen/internal/repository"
	"github.com/studentgen/studentgen/internal/util"
)

// Service writes generation runs and their students.
type Service struct {
	db       *database.DB
	students *repository.StudentRepository
	replace  bool
}

// NewService creates a new mirror service. With replace set, every save
// removes earlier runs first.
func NewService(db *database.DB, replace bool) *Service {
	return &Service{
		db:       db,
		students: repository.NewStudentRepository(db.DB),
		replace:  replace,
	}
}

// SaveInput describes a dataset to mirror.
type SaveInput struct {
	Seed         int64
	SalaryPolicy models.SalaryPolicy
	OutputPath   string
	Students     []*models.Student
}

// Save stores the dataset as a new generation run in a single transaction.
func (s *Service) Save(ctx context.Context, input SaveInput) (*models.GenerationRun, error) {
	run := &models.GenerationRun{
		ID:           util.NewUUIDv7(),
		Seed:         input.Seed,
		SalaryPolicy: input.SalaryPolicy,
		StudentCount: len(input.Students),
		OutputPath:   input.OutputPath,
		CreatedAt:    time.Now().UTC(),
	}

	start := time.Now()
	err := s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		if s.replace {
			removed, err := s.students.DeleteRuns(ctx, tx)
			if err != nil {
				return fmt.Errorf("removing earlier runs: %w", err)
			}
			if removed > 0 {
				slog.Debug("removed earlier generation runs", "runs", removed)
			}
		}

		if err := s.students.CreateRun(ctx, tx, run); err != nil {
			return err
		}

		if _, err := s.students.InsertBatch(ctx, tx, run.ID, input.Students); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("mirroring dataset: %w", err)
	}

	slog.Info("dataset mirrored",
		"run_id", run.ID,
		"students", run.StudentCount,
		"database", s.db.Path(),
		"duration", time.Since(start),
	)

	return run, nil
}

// Run returns a stored generation run. Malformed IDs are reported as
// repository.ErrNotFound.
func (s *Service) Run(ctx context.Context, id string) (*models.GenerationRun, error) {
	runID, err := parseRunID(id)
	if err != nil {
		return nil, err
	}
	return s.students.GetRun(ctx, runID)
}

// Students returns one page of a run's students.
func (s *Service) Students(ctx context.Context, id string, page models.Pagination) (*models.StudentList, error) {
	runID, err := parseRunID(id)
	if err != nil {
		return nil, err
	}
	return s.students.ListByRun(ctx, runID, page)
}

// SchoolCounts returns per-school enrollment for a run.
func (s *Service) SchoolCounts(ctx context.Context, id string) (map[string]int, error) {
	runID, err := parseRunID(id)
	if err != nil {
		return nil, err
	}
	return s.students.SchoolCounts(ctx, runID)
}

// parseRunID normalizes a run ID to the stored lowercase form.
func parseRunID(id string) (string, error) {
	runID, err := util.ParseID(id)
	if err != nil {
		return "", fmt.Errorf("run %q: %w", id, repository.ErrNotFound)
	}
	return runID, nil
}
