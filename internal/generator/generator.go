// Package generator synthesizes fictitious student records.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/studentgen/studentgen/internal/models"
	"github.com/studentgen/studentgen/internal/util"
)

var (
	// ErrNoSchools is returned when the school reference table is empty.
	ErrNoSchools = errors.New("school reference table is empty")
	// ErrNoOccupations is returned when there is no occupation to sample.
	ErrNoOccupations = errors.New("occupation list is empty")
	// ErrNoSalaryRange is returned when an occupation has no salary range
	// under the occupation-linked policy.
	ErrNoSalaryRange = errors.New("no salary range for occupation")
	// ErrEmptySalaryRange is returned when the flat salary range holds no
	// whole amount.
	ErrEmptySalaryRange = errors.New("flat salary range holds no whole amount")
)

// Config configures the record generator.
type Config struct {
	Count int
	// Seed of the random source; zero picks a time-derived seed.
	Seed int64

	AgeMin int
	AgeMax int

	Schools      []models.School
	Occupations  []models.Occupation
	SalaryPolicy models.SalaryPolicy
	SalaryRanges map[models.Occupation]models.Range
	FlatSalary   models.Range

	Weight models.Range
	Size   models.Range
	Grades models.Range

	FeetSizes  []int
	EyeColors  []models.EyeColor
	HairColors []models.HairColor
}

// DefaultConfig returns the reference dataset configuration.
func DefaultConfig() Config {
	return Config{
		Count:        35125,
		AgeMin:       0,
		AgeMax:       26,
		Schools:      models.DefaultSchools(),
		Occupations:  append([]models.Occupation(nil), models.Occupations...),
		SalaryPolicy: models.SalaryPolicyOccupation,
		SalaryRanges: models.DefaultSalaryRanges(),
		FlatSalary:   models.Range{Min: 300, Max: 50000},
		Weight:       models.Range{Min: 20, Max: 80},
		Size:         models.Range{Min: 100, Max: 200},
		Grades:       models.Range{Min: 2, Max: 10},
		FeetSizes:    []int{34, 35, 36, 37, 38, 39, 40, 41, 42},
		EyeColors:    append([]models.EyeColor(nil), models.EyeColors...),
		HairColors:   append([]models.HairColor(nil), models.HairColors...),
	}
}

// NamesFunc builds a name source that draws from the generator's random source.
type NamesFunc func(r *rand.Rand) NameSource

// Generator generates student records. It owns the only random source used
// during generation; every sampling step reads from it in sequence.
type Generator struct {
	cfg   Config
	seed  int64
	rng   *rand.Rand
	names NameSource
	idGen *util.IDGenerator
}

// New creates a new generator. A nil names func uses the faker corpus.
func New(cfg Config, names NamesFunc) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if names == nil {
		names = NewFakerNames
	}

	rng := rand.New(rand.NewSource(seed))

	return &Generator{
		cfg:   cfg,
		seed:  seed,
		rng:   rng,
		names: names(rng),
		idGen: util.NewIDGenerator(rng),
	}
}

// Seed returns the seed actually used, so an unseeded run can be reproduced.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Generate creates Count student records. It performs no I/O.
func (g *Generator) Generate(ctx context.Context) ([]*models.Student, error) {
	if len(g.cfg.Schools) == 0 {
		return nil, ErrNoSchools
	}
	if len(g.cfg.Occupations) == 0 {
		return nil, ErrNoOccupations
	}

	slog.Info("starting dataset generation",
		"count", g.cfg.Count,
		"seed", g.seed,
		"salary_policy", g.cfg.SalaryPolicy,
		"schools", len(g.cfg.Schools),
	)

	students := make([]*models.Student, 0, g.cfg.Count)
	for i := 0; i < g.cfg.Count; i++ {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("generating student %d: %w", i, err)
			}
		}

		s, err := g.generateStudent()
		if err != nil {
			return nil, fmt.Errorf("generating student %d: %w", i, err)
		}
		students = append(students, s)
	}

	slog.Info("dataset generation complete", "students", len(students))

	return students, nil
}

func (g *Generator) generateStudent() (*models.Student, error) {
	school := g.cfg.Schools[g.rng.Intn(len(g.cfg.Schools))]
	occupation := g.cfg.Occupations[g.rng.Intn(len(g.cfg.Occupations))]

	firstName := g.names.FirstName()
	lastName := g.names.LastName()
	age := g.intBetween(g.cfg.AgeMin, g.cfg.AgeMax)

	salary, err := g.salary(occupation)
	if err != nil {
		return nil, err
	}

	s := &models.Student{
		FirstName:          firstName,
		LastName:           lastName,
		Age:                age,
		SchoolName:         school.Name,
		SchoolAddress:      school.Address,
		SchoolZipCode:      school.ZipCode,
		ParentsSalary:      salary,
		ParentsOccupation:  occupation,
		Weight:             round(g.uniform(g.cfg.Weight), 1),
		Size:               round(g.uniform(g.cfg.Size), 1),
		FeetSize:           g.cfg.FeetSizes[g.rng.Intn(len(g.cfg.FeetSizes))],
		EyeColor:           g.cfg.EyeColors[g.rng.Intn(len(g.cfg.EyeColors))],
		HairColor:          g.cfg.HairColors[g.rng.Intn(len(g.cfg.HairColors))],
		PreviousYearGrades: round(g.uniform(g.cfg.Grades), 1),
		CurrentYearGrades:  round(g.uniform(g.cfg.Grades), 1),
	}
	s.ID = g.idGen.NewID()

	return s, nil
}

// salary samples a parent salary under the configured policy.
func (g *Generator) salary(occupation models.Occupation) (float64, error) {
	if g.cfg.SalaryPolicy == models.SalaryPolicyFlat {
		lo := int(math.Ceil(g.cfg.FlatSalary.Min))
		hi := int(math.Floor(g.cfg.FlatSalary.Max))
		if lo > hi {
			return 0, fmt.Errorf("%w: %g-%g", ErrEmptySalaryRange, g.cfg.FlatSalary.Min, g.cfg.FlatSalary.Max)
		}
		return float64(g.intBetween(lo, hi)), nil
	}

	r, ok := g.cfg.SalaryRanges[occupation]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoSalaryRange, occupation)
	}
	return round(g.uniform(r), 3), nil
}

// intBetween returns a uniform integer in [lo, hi].
func (g *Generator) intBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}

// uniform returns a uniform real in [r.Min, r.Max).
func (g *Generator) uniform(r models.Range) float64 {
	return r.Min + g.rng.Float64()*(r.Max-r.Min)
}

// round rounds v to the given number of decimal digits.
func round(v float64, digits int) float64 {
	p := math.Pow10(digits)
	return math.Round(v*p) / p
}
