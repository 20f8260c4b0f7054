// Package repository provides the data access layer for mirrored datasets.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/studentgen/studentgen/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// StudentRepository handles student and generation run data access.
type StudentRepository struct {
	db *sql.DB
}

// NewStudentRepository creates a new student repository.
func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) execer(tx *sql.Tx) execer {
	if tx != nil {
		return tx
	}
	return r.db
}

// CreateRun inserts a generation run record.
func (r *StudentRepository) CreateRun(ctx context.Context, tx *sql.Tx, run *models.GenerationRun) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := r.execer(tx).ExecContext(ctx, `
		INSERT INTO generation_runs (id, seed, salary_policy, student_count, output_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Seed,
		string(run.SalaryPolicy),
		run.StudentCount,
		run.OutputPath,
		run.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting generation run: %w", err)
	}

	return nil
}

// GetRun retrieves a generation run by ID.
func (r *StudentRepository) GetRun(ctx context.Context, id string) (*models.GenerationRun, error) {
	var run models.GenerationRun
	var createdStr string

	err := r.db.QueryRowContext(ctx, `
		SELECT id, seed, salary_policy, student_count, output_path, created_at
		FROM generation_runs
		WHERE id = ?`, id,
	).Scan(&run.ID, &run.Seed, &run.SalaryPolicy, &run.StudentCount, &run.OutputPath, &createdStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("generation run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning generation run: %w", err)
	}

	run.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)

	return &run, nil
}

// DeleteRuns removes every generation run and its students.
// It returns the number of runs removed.
func (r *StudentRepository) DeleteRuns(ctx context.Context, tx *sql.Tx) (int64, error) {
	ex := r.execer(tx)

	if _, err := ex.ExecContext(ctx, `DELETE FROM students`); err != nil {
		return 0, fmt.Errorf("deleting students: %w", err)
	}

	result, err := ex.ExecContext(ctx, `DELETE FROM generation_runs`)
	if err != nil {
		return 0, fmt.Errorf("deleting generation runs: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}

	return n, nil
}

// InsertBatch inserts students for a run, numbering them by sequence order.
// The caller owns the transaction; a nil tx inserts row by row without one.
func (r *StudentRepository) InsertBatch(ctx context.Context, tx *sql.Tx, runID string, students []*models.Student) (int, error) {
	const query = `
		INSERT INTO students (
			run_id, seq, id, first_name, last_name, age,
			school_name, school_address, school_zip_code,
			parents_salary, parents_occupation,
			weight, size, feet_size, eye_color, hair_color,
			previous_year_grades, current_year_grades
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	var stmt *sql.Stmt
	var err error
	if tx != nil {
		stmt, err = tx.PrepareContext(ctx, query)
	} else {
		stmt, err = r.db.PrepareContext(ctx, query)
	}
	if err != nil {
		return 0, fmt.Errorf("preparing student insert: %w", err)
	}
	defer stmt.Close()

	for i, s := range students {
		if err := ctx.Err(); err != nil {
			return i, err
		}

		_, err := stmt.ExecContext(ctx,
			runID,
			i,
			s.ID,
			s.FirstName,
			s.LastName,
			s.Age,
			s.SchoolName,
			s.SchoolAddress,
			s.SchoolZipCode,
			s.ParentsSalary,
			string(s.ParentsOccupation),
			s.Weight,
			s.Size,
			s.FeetSize,
			string(s.EyeColor),
			string(s.HairColor),
			s.PreviousYearGrades,
			s.CurrentYearGrades,
		)
		if err != nil {
			return i, fmt.Errorf("inserting student %d: %w", i, err)
		}
	}

	return len(students), nil
}

// CountByRun returns the number of students stored for a run.
func (r *StudentRepository) CountByRun(ctx context.Context, runID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM students WHERE run_id = ?`, runID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting students: %w", err)
	}
	return count, nil
}

// ListByRun retrieves one page of a run's students in sequence order.
func (r *StudentRepository) ListByRun(ctx context.Context, runID string, page models.Pagination) (*models.StudentList, error) {
	total, err := r.CountByRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, age,
			school_name, school_address, school_zip_code,
			parents_salary, parents_occupation,
			weight, size, feet_size, eye_color, hair_color,
			previous_year_grades, current_year_grades
		FROM students
		WHERE run_id = ?
		ORDER BY seq
		LIMIT ? OFFSET ?`,
		runID, page.Limit(), page.Offset(),
	)
	if err != nil {
		return nil, fmt.Errorf("querying students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var s models.Student
		err := rows.Scan(
			&s.ID,
			&s.FirstName,
			&s.LastName,
			&s.Age,
			&s.SchoolName,
			&s.SchoolAddress,
			&s.SchoolZipCode,
			&s.ParentsSalary,
			&s.ParentsOccupation,
			&s.Weight,
			&s.Size,
			&s.FeetSize,
			&s.EyeColor,
			&s.HairColor,
			&s.PreviousYearGrades,
			&s.CurrentYearGrades,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning student: %w", err)
		}
		students = append(students, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating students: %w", err)
	}

	return &models.StudentList{
		Students:   students,
		Total:      total,
		Page:       page.Current(),
		PageSize:   page.Limit(),
		TotalPages: page.TotalPages(total),
	}, nil
}

// SchoolCounts returns the number of students per school name for a run.
// Schools sharing a name are rolled up together.
func (r *StudentRepository) SchoolCounts(ctx context.Context, runID string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT school_name, COUNT(*)
		FROM students
		WHERE run_id = ?
		GROUP BY school_name`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("counting students by school: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("scanning school count: %w", err)
		}
		counts[name] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating school counts: %w", err)
	}

	return counts, nil
}
