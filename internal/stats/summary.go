// Package stats computes descriptive summaries of generated datasets.
package stats

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"

	"github.com/studentgen/studentgen/internal/models"
)

// AgeDistribution contains the dataset breakdown by age groups.
type AgeDistribution struct {
	Infants     int // 0-2
	Children    int // 3-12
	Adolescents int // 13-17
	YoungAdults int // 18-25
	Adults      int // 26+

	MedianAge  float64
	AverageAge float64
}

// SchoolCount is the number of students enrolled at one school. Schools
// sharing a name but not an address are counted apart.
type SchoolCount struct {
	School models.School
	Count  int
}

// OccupationStats aggregates parent salaries for one occupation.
type OccupationStats struct {
	Occupation models.Occupation
	Count      int
	MeanSalary float64
}

// Summary describes a generated dataset.
type Summary struct {
	Total int
	Ages  AgeDistribution

	// Schools is sorted by name, then address and zip code.
	Schools []SchoolCount
	// Occupations follows models.Occupations order; unknown labels are appended.
	Occupations []OccupationStats

	EyeColors  map[models.EyeColor]int
	HairColors map[models.HairColor]int

	MeanPreviousGrades float64
	MeanCurrentGrades  float64
}

// Summarize computes a summary of students.
func Summarize(students []*models.Student) *Summary {
	sum := &Summary{
		Total:      len(students),
		EyeColors:  make(map[models.EyeColor]int),
		HairColors: make(map[models.HairColor]int),
	}

	schools := make(map[models.School]int)
	occCount := make(map[models.Occupation]int)
	occSalary := make(map[models.Occupation]float64)
	ages := make([]int, 0, len(students))

	var totalAge, totalPrev, totalCurr float64

	for _, s := range students {
		ages = append(ages, s.Age)
		totalAge += float64(s.Age)

		switch {
		case s.Age <= 2:
			sum.Ages.Infants++
		case s.Age <= 12:
			sum.Ages.Children++
		case s.Age <= 17:
			sum.Ages.Adolescents++
		case s.Age <= 25:
			sum.Ages.YoungAdults++
		default:
			sum.Ages.Adults++
		}

		schools[s.School()]++
		occCount[s.ParentsOccupation]++
		occSalary[s.ParentsOccupation] += s.ParentsSalary
		sum.EyeColors[s.EyeColor]++
		sum.HairColors[s.HairColor]++
		totalPrev += s.PreviousYearGrades
		totalCurr += s.CurrentYearGrades
	}

	if sum.Total > 0 {
		n := float64(sum.Total)
		sum.Ages.AverageAge = totalAge / n
		sum.Ages.MedianAge = calculateMedian(ages)
		sum.MeanPreviousGrades = totalPrev / n
		sum.MeanCurrentGrades = totalCurr / n
	}

	for school, count := range schools {
		sum.Schools = append(sum.Schools, SchoolCount{School: school, Count: count})
	}
	slices.SortFunc(sum.Schools, func(a, b SchoolCount) int {
		return cmp.Or(
			strings.Compare(a.School.Name, b.School.Name),
			strings.Compare(a.School.Address, b.School.Address),
			strings.Compare(a.School.ZipCode, b.School.ZipCode),
		)
	})

	order := append([]models.Occupation(nil), models.Occupations...)
	var extra []models.Occupation
	for o := range occCount {
		if !o.Valid() {
			extra = append(extra, o)
		}
	}
	slices.Sort(extra)
	order = append(order, extra...)

	for _, o := range order {
		count := occCount[o]
		if count == 0 {
			continue
		}
		sum.Occupations = append(sum.Occupations, OccupationStats{
			Occupation: o,
			Count:      count,
			MeanSalary: occSalary[o] / float64(count),
		})
	}

	return sum
}

// LogValue implements slog.LogValuer.
func (s *Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("students", s.Total),
		slog.Int("schools", len(s.Schools)),
		slog.Float64("mean_age", s.Ages.AverageAge),
		slog.Float64("median_age", s.Ages.MedianAge),
		slog.Float64("mean_previous_grades", s.MeanPreviousGrades),
		slog.Float64("mean_current_grades", s.MeanCurrentGrades),
	)
}

func calculateMedian(values []int) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return float64(sorted[mid-1]+sorted[mid]) / 2
	}
	return float64(sorted[mid])
}
