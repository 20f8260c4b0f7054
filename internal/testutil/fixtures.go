package testutil

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/studentgen/studentgen/internal/models"
)

// FixtureStudent creates a test student with sensible defaults.
func FixtureStudent(overrides ...func(*models.Student)) *models.Student {
	student := &models.Student{
		ID:                 uuid.New().String(),
		FirstName:          "Ada",
		LastName:           "Lovelace",
		Age:                12,
		SchoolName:         "School A",
		SchoolAddress:      "Street A 123",
		SchoolZipCode:      "12345",
		ParentsSalary:      12345.678,
		ParentsOccupation:  models.OccupationEngineer,
		Weight:             40,
		Size:               150.5,
		FeetSize:           38,
		EyeColor:           models.EyeColorGreen,
		HairColor:          models.HairColorRed,
		PreviousYearGrades: 7.3,
		CurrentYearGrades:  10,
	}

	for _, override := range overrides {
		override(student)
	}

	return student
}

// FixtureStudentAtSchool creates a test student enrolled at the given school.
func FixtureStudentAtSchool(school models.School, overrides ...func(*models.Student)) *models.Student {
	return FixtureStudent(append([]func(*models.Student){
		func(s *models.Student) {
			s.SchoolName = school.Name
			s.SchoolAddress = school.Address
			s.SchoolZipCode = school.ZipCode
		},
	}, overrides...)...)
}

// FixtureStudents creates n distinct test students cycling through the
// reference occupations and colors.
func FixtureStudents(n int) []*models.Student {
	students := make([]*models.Student, 0, n)
	for i := 0; i < n; i++ {
		i := i
		students = append(students, FixtureStudent(func(s *models.Student) {
			s.FirstName = fmt.Sprintf("Student%d", i)
			s.Age = i % 27
			s.ParentsOccupation = models.Occupations[i%len(models.Occupations)]
			s.EyeColor = models.EyeColors[i%len(models.EyeColors)]
			s.HairColor = models.HairColors[i%len(models.HairColors)]
		}))
	}
	return students
}
