// Package models defines the domain models for studentgen.
package models

import (
	"errors"
	"fmt"
	"strconv"
)

// Occupation represents a parent's occupation label.
type Occupation string

const (
	OccupationEngineer   Occupation = "Engineer"
	OccupationTeacher    Occupation = "Teacher"
	OccupationDoctor     Occupation = "Doctor"
	OccupationLawyer     Occupation = "Lawyer"
	OccupationNurse      Occupation = "Nurse"
	OccupationUnemployed Occupation = "Unemployed"
)

// Occupations lists every occupation in declaration order.
var Occupations = []Occupation{
	OccupationEngineer,
	OccupationTeacher,
	OccupationDoctor,
	OccupationLawyer,
	OccupationNurse,
	OccupationUnemployed,
}

// Valid returns true if the occupation is one of the known labels.
func (o Occupation) Valid() bool {
	switch o {
	case OccupationEngineer, OccupationTeacher, OccupationDoctor,
		OccupationLawyer, OccupationNurse, OccupationUnemployed:
		return true
	default:
		return false
	}
}

// EyeColor represents a student's eye color.
type EyeColor string

const (
	EyeColorBlue  EyeColor = "Blue"
	EyeColorGreen EyeColor = "Green"
	EyeColorBrown EyeColor = "Brown"
)

// EyeColors lists every eye color in declaration order.
var EyeColors = []EyeColor{EyeColorBlue, EyeColorGreen, EyeColorBrown}

// Valid returns true if the eye color is valid.
func (e EyeColor) Valid() bool {
	return e == EyeColorBlue || e == EyeColorGreen || e == EyeColorBrown
}

// HairColor represents a student's hair color.
type HairColor string

const (
	HairColorBlonde HairColor = "Blonde"
	HairColorBrown  HairColor = "Brown"
	HairColorBlack  HairColor = "Black"
	HairColorRed    HairColor = "Red"
)

// HairColors lists every hair color in declaration order.
var HairColors = []HairColor{HairColorBlonde, HairColorBrown, HairColorBlack, HairColorRed}

// Valid returns true if the hair color is valid.
func (h HairColor) Valid() bool {
	switch h {
	case HairColorBlonde, HairColorBrown, HairColorBlack, HairColorRed:
		return true
	default:
		return false
	}
}

// Columns is the fixed header of the tabular output, in field order.
var Columns = []string{
	"First_Name",
	"Last_Name",
	"Age",
	"School_Name",
	"School_Address",
	"School_ZipCode",
	"Parents_Salary",
	"Parents_Occupation",
	"Weight",
	"Size",
	"Feet_size",
	"Eye_color",
	"Hair_color",
	"Previous_year_grades",
	"Current_year_grades",
}

// Student is one synthesized student record.
type Student struct {
	// ID identifies the record in the SQLite mirror. It is not part of the
	// tabular output.
	ID string `json:"id"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Age       int    `json:"age"`

	SchoolName    string `json:"school_name"`
	SchoolAddress string `json:"school_address"`
	SchoolZipCode string `json:"school_zip_code"`

	ParentsSalary     float64    `json:"parents_salary"`
	ParentsOccupation Occupation `json:"parents_occupation"`

	Weight    float64   `json:"weight"`
	Size      float64   `json:"size"`
	FeetSize  int       `json:"feet_size"`
	EyeColor  EyeColor  `json:"eye_color"`
	HairColor HairColor `json:"hair_color"`

	PreviousYearGrades float64 `json:"previous_year_grades"`
	CurrentYearGrades  float64 `json:"current_year_grades"`
}

// FullName returns the student's first and last name.
func (s *Student) FullName() string {
	return fmt.Sprintf("%s %s", s.FirstName, s.LastName)
}

// School returns the school described by the record's school fields.
func (s *Student) School() School {
	return School{
		Name:    s.SchoolName,
		Address: s.SchoolAddress,
		ZipCode: s.SchoolZipCode,
	}
}

// Row renders the record as text cells in Columns order.
func (s *Student) Row() []string {
	return []string{
		s.FirstName,
		s.LastName,
		strconv.Itoa(s.Age),
		s.SchoolName,
		s.SchoolAddress,
		s.SchoolZipCode,
		FormatSalary(s.ParentsSalary),
		string(s.ParentsOccupation),
		FormatTenths(s.Weight),
		FormatTenths(s.Size),
		strconv.Itoa(s.FeetSize),
		string(s.EyeColor),
		string(s.HairColor),
		FormatTenths(s.PreviousYearGrades),
		FormatTenths(s.CurrentYearGrades),
	}
}

// Validate checks that the record is structurally complete.
func (s *Student) Validate() error {
	var errs []error

	if s.FirstName == "" {
		errs = append(errs, errors.New("first name is required"))
	}
	if s.LastName == "" {
		errs = append(errs, errors.New("last name is required"))
	}
	if s.Age < 0 {
		errs = append(errs, errors.New("age must be non-negative"))
	}
	if s.SchoolName == "" {
		errs = append(errs, errors.New("school name is required"))
	}
	if !s.ParentsOccupation.Valid() {
		errs = append(errs, fmt.Errorf("invalid parents occupation: %s", s.ParentsOccupation))
	}
	if !s.EyeColor.Valid() {
		errs = append(errs, fmt.Errorf("invalid eye color: %s", s.EyeColor))
	}
	if !s.HairColor.Valid() {
		errs = append(errs, fmt.Errorf("invalid hair color: %s", s.HairColor))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// FormatSalary renders a salary in its shortest exact decimal form.
func FormatSalary(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatTenths renders a value with exactly one decimal digit.
func FormatTenths(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
