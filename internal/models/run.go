package models

import (
	"errors"
	"time"
)

// GenerationRun records one invocation that mirrored a dataset to SQLite.
type GenerationRun struct {
	ID           string       `json:"id"`
	Seed         int64        `json:"seed"`
	SalaryPolicy SalaryPolicy `json:"salary_policy"`
	StudentCount int          `json:"student_count"`
	OutputPath   string       `json:"output_path,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Validate checks required run fields.
func (r *GenerationRun) Validate() error {
	var errs []error

	if r.ID == "" {
		errs = append(errs, errors.New("run id is required"))
	}
	if !r.SalaryPolicy.Valid() {
		errs = append(errs, errors.New("invalid salary policy"))
	}
	if r.StudentCount < 0 {
		errs = append(errs, errors.New("student count must be non-negative"))
	}

	return errors.Join(errs...)
}

// StudentList contains one page of students from a run.
type StudentList struct {
	Students   []*Student
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}
