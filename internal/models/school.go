package models

import (
	"errors"
	"fmt"
)

// School is an entry of the static school reference table.
// ZipCode is kept as text; distinct schools may share one.
type School struct {
	Name    string `json:"name" toml:"name"`
	Address string `json:"address" toml:"address"`
	ZipCode string `json:"zip_code" toml:"zip_code"`
}

// Validate checks that the school has a name.
func (s School) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// String returns the school formatted as a single line.
func (s School) String() string {
	return fmt.Sprintf("%s, %s, %s", s.Name, s.Address, s.ZipCode)
}

// Range is an inclusive numeric range used for salaries and body metrics.
type Range struct {
	Min float64 `json:"min" toml:"min"`
	Max float64 `json:"max" toml:"max"`
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Validate checks that the bounds are ordered and non-negative.
func (r Range) Validate() error {
	if r.Min < 0 {
		return errors.New("min must be non-negative")
	}
	if r.Min > r.Max {
		return fmt.Errorf("min %v exceeds max %v", r.Min, r.Max)
	}
	return nil
}

// DefaultSchools returns the built-in school reference table.
func DefaultSchools() []School {
	return []School{
		{Name: "School A", Address: "Street A 123", ZipCode: "12345"},
		{Name: "School B", Address: "Street B 456", ZipCode: "23456"},
		{Name: "School C", Address: "Street C 789", ZipCode: "34567"},
		{Name: "School D", Address: "Street D 101", ZipCode: "45678"},
		{Name: "School E", Address: "Street E 202", ZipCode: "56789"},
		{Name: "School F", Address: "Street F 123", ZipCode: "12456"},
		{Name: "School G", Address: "Street G 456", ZipCode: "12654"},
		{Name: "School H", Address: "Street H 789", ZipCode: "67890"},
		{Name: "School I", Address: "Street I 101", ZipCode: "23654"},
		{Name: "School J", Address: "Street J 202", ZipCode: "56789"},
		{Name: "School K", Address: "Street K 789", ZipCode: "34667"},
		{Name: "School L", Address: "Street L 101", ZipCode: "45789"},
		{Name: "School M", Address: "Street M 202", ZipCode: "56779"},
	}
}

// SalaryPolicy selects how a parent's salary is sampled.
type SalaryPolicy string

const (
	// SalaryPolicyOccupation draws a real salary from the range of the
	// sampled occupation, rounded to three decimals.
	SalaryPolicyOccupation SalaryPolicy = "occupation"
	// SalaryPolicyFlat draws an integer salary from one global range,
	// independent of occupation.
	SalaryPolicyFlat SalaryPolicy = "flat"
)

// Valid returns true if the policy is known.
func (p SalaryPolicy) Valid() bool {
	return p == SalaryPolicyOccupation || p == SalaryPolicyFlat
}

// DefaultSalaryRanges returns the built-in occupation to salary range table.
func DefaultSalaryRanges() map[Occupation]Range {
	return map[Occupation]Range{
		OccupationEngineer:   {Min: 5000, Max: 20000},
		OccupationTeacher:    {Min: 3000, Max: 12000},
		OccupationDoctor:     {Min: 15000, Max: 50000},
		OccupationLawyer:     {Min: 10000, Max: 35000},
		OccupationNurse:      {Min: 4000, Max: 14000},
		OccupationUnemployed: {Min: 300, Max: 1568},
	}
}
