// Package config provides configuration management for studentgen.
// Configurations are loaded from TOML files with XDG-compliant paths.
package config

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/studentgen/studentgen/internal/models"
)

// Config holds the complete application configuration.
type Config struct {
	Dataset  DatasetConfig  `toml:"dataset"`
	Names    NamesConfig    `toml:"names"`
	Output   OutputConfig   `toml:"output"`
	Database DatabaseConfig `toml:"database"`
	Display  DisplayConfig  `toml:"display"`
	Logging  LoggingConfig  `toml:"logging"`
}

// DatasetConfig describes what to generate: the record count, the random seed,
// the sampling domain of every field and the static reference tables.
type DatasetConfig struct {
	// Count is the number of records to generate.
	Count int `toml:"count"`

	// Seed seeds the random source. Zero picks a time-derived seed, so two
	// runs produce different datasets.
	Seed int64 `toml:"seed"`

	// AgeMin and AgeMax bound the age, inclusive.
	AgeMin int `toml:"age_min"`
	AgeMax int `toml:"age_max"`

	// SalaryPolicy selects occupation-linked or flat salary sampling.
	SalaryPolicy models.SalaryPolicy `toml:"salary_policy"`

	// FlatSalary is the integer range used by the flat policy.
	FlatSalary models.Range `toml:"flat_salary"`

	// Occupations is the candidate set for the parents' occupation.
	Occupations []models.Occupation `toml:"occupations"`

	Metrics MetricsConfig `toml:"metrics"`

	// Schools is the school reference table.
	Schools []models.School `toml:"schools"`

	// SalaryRanges maps an occupation label to its salary range.
	SalaryRanges map[string]models.Range `toml:"salary_ranges"`
}

// MetricsConfig holds the body metric, grade and appearance domains.
type MetricsConfig struct {
	Weight     models.Range       `toml:"weight"`
	Size       models.Range       `toml:"size"`
	Grades     models.Range       `toml:"grades"`
	FeetSizes  []int              `toml:"feet_sizes"`
	EyeColors  []models.EyeColor  `toml:"eye_colors"`
	HairColors []models.HairColor `toml:"hair_colors"`
}

// NamesConfig selects the person-name provider.
type NamesConfig struct {
	Source NameProvider `toml:"source"`
}

// NameProvider identifies a person-name corpus.
type NameProvider string

const (
	NameProviderFaker   NameProvider = "faker"
	NameProviderBuiltin NameProvider = "builtin"
)

// OutputConfig controls the tabular output file.
type OutputConfig struct {
	Path      string `toml:"path"`
	Delimiter string `toml:"delimiter"`
}

// DatabaseConfig controls the optional SQLite mirror of the dataset.
type DatabaseConfig struct {
	// Path enables the mirror when non-empty.
	Path string `toml:"path"`
	// Replace removes earlier runs before inserting a new one.
	Replace bool `toml:"replace"`
}

// DisplayConfig controls preview appearance.
type DisplayConfig struct {
	ColorScheme ColorScheme `toml:"color_scheme"`
}

// ColorScheme defines the terminal color palette.
type ColorScheme string

const (
	ColorSchemeGreenPhosphor ColorScheme = "green_phosphor"
	ColorSchemeAmber         ColorScheme = "amber"
	ColorSchemeWhite         ColorScheme = "white"
)

// LoggingConfig controls application logging.
type LoggingConfig struct {
	Level LogLevel `toml:"level"`
	File  string   `toml:"file"`
}

// LogLevel defines logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Dataset.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("dataset: %w", err))
	}

	if err := c.Names.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("names: %w", err))
	}

	if err := c.Output.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("output: %w", err))
	}

	if err := c.Display.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the dataset configuration is valid.
func (d *DatasetConfig) Validate() error {
	var errs []error

	if d.Count < 0 {
		errs = append(errs, errors.New("count must be non-negative"))
	}

	if d.AgeMin < 0 {
		errs = append(errs, errors.New("age_min must be non-negative"))
	}

	if d.AgeMin > d.AgeMax {
		errs = append(errs, fmt.Errorf("age_min %d exceeds age_max %d", d.AgeMin, d.AgeMax))
	}

	if !d.SalaryPolicy.Valid() {
		errs = append(errs, fmt.Errorf("invalid salary_policy: %s", d.SalaryPolicy))
	}

	if len(d.Schools) == 0 {
		errs = append(errs, errors.New("at least one school is required"))
	}
	for i, s := range d.Schools {
		if err := s.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("schools[%d]: %w", i, err))
		}
	}

	if len(d.Occupations) == 0 {
		errs = append(errs, errors.New("at least one occupation is required"))
	}
	for _, o := range d.Occupations {
		if !o.Valid() {
			errs = append(errs, fmt.Errorf("invalid occupation: %s", o))
		}
	}

	for label, r := range d.SalaryRanges {
		if !models.Occupation(label).Valid() {
			errs = append(errs, fmt.Errorf("salary_ranges: unknown occupation %s", label))
		}
		if err := r.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("salary_ranges.%s: %w", label, err))
		}
	}

	switch d.SalaryPolicy {
	case models.SalaryPolicyOccupation:
		for _, o := range d.Occupations {
			if _, ok := d.SalaryRanges[string(o)]; !ok {
				errs = append(errs, fmt.Errorf("salary_ranges: missing range for %s", o))
			}
		}
	case models.SalaryPolicyFlat:
		if err := d.FlatSalary.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("flat_salary: %w", err))
		} else if math.Ceil(d.FlatSalary.Min) > math.Floor(d.FlatSalary.Max) {
			errs = append(errs, fmt.Errorf("flat_salary: no whole amount between %g and %g", d.FlatSalary.Min, d.FlatSalary.Max))
		}
	}

	if err := d.Metrics.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("metrics: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the metric domains are usable.
func (m *MetricsConfig) Validate() error {
	var errs []error

	ranges := []struct {
		name string
		r    models.Range
	}{
		{"weight", m.Weight},
		{"size", m.Size},
		{"grades", m.Grades},
	}
	for _, r := range ranges {
		if err := r.r.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.name, err))
		}
	}

	if len(m.FeetSizes) == 0 {
		errs = append(errs, errors.New("feet_sizes must not be empty"))
	}

	if len(m.EyeColors) == 0 {
		errs = append(errs, errors.New("eye_colors must not be empty"))
	}
	for _, c := range m.EyeColors {
		if !c.Valid() {
			errs = append(errs, fmt.Errorf("invalid eye color: %s", c))
		}
	}

	if len(m.HairColors) == 0 {
		errs = append(errs, errors.New("hair_colors must not be empty"))
	}
	for _, c := range m.HairColors {
		if !c.Valid() {
			errs = append(errs, fmt.Errorf("invalid hair color: %s", c))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the names configuration is valid.
func (n *NamesConfig) Validate() error {
	switch n.Source {
	case NameProviderFaker, NameProviderBuiltin:
		return nil
	default:
		return fmt.Errorf("invalid source: %s", n.Source)
	}
}

// Validate checks that the output configuration is valid.
func (o *OutputConfig) Validate() error {
	var errs []error

	if o.Path == "" {
		errs = append(errs, errors.New("path is required"))
	}

	if _, err := o.Comma(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Comma returns the delimiter as a rune. An empty delimiter means a comma.
func (o *OutputConfig) Comma() (rune, error) {
	if o.Delimiter == "" {
		return ',', nil
	}

	if utf8.RuneCountInString(o.Delimiter) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character: %q", o.Delimiter)
	}

	r, _ := utf8.DecodeRuneInString(o.Delimiter)
	switch r {
	case '"', '\r', '\n', utf8.RuneError:
		return 0, fmt.Errorf("invalid delimiter: %q", o.Delimiter)
	}

	return r, nil
}

// Validate checks that the display configuration is valid.
func (d *DisplayConfig) Validate() error {
	validSchemes := map[ColorScheme]bool{
		ColorSchemeGreenPhosphor: true,
		ColorSchemeAmber:         true,
		ColorSchemeWhite:         true,
	}

	if !validSchemes[d.ColorScheme] && d.ColorScheme != "" {
		return fmt.Errorf("invalid color_scheme: %s", d.ColorScheme)
	}

	return nil
}

// Validate checks that the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	validLevels := map[LogLevel]bool{
		LogLevelDebug: true,
		LogLevelInfo:  true,
		LogLevelWarn:  true,
		LogLevelError: true,
	}

	if !validLevels[l.Level] && l.Level != "" {
		return fmt.Errorf("invalid log level: %s", l.Level)
	}

	return nil
}

// Default returns a configuration that reproduces the reference dataset:
// 35125 students, ages 0 to 26 and occupation-linked salaries.
func Default() *Config {
	ranges := make(map[string]models.Range)
	for o, r := range models.DefaultSalaryRanges() {
		ranges[string(o)] = r
	}

	return &Config{
		Dataset: DatasetConfig{
			Count:        35125,
			Seed:         0,
			AgeMin:       0,
			AgeMax:       26,
			SalaryPolicy: models.SalaryPolicyOccupation,
			FlatSalary:   models.Range{Min: 300, Max: 50000},
			Occupations:  append([]models.Occupation(nil), models.Occupations...),
			Metrics: MetricsConfig{
				Weight:     models.Range{Min: 20, Max: 80},
				Size:       models.Range{Min: 100, Max: 200},
				Grades:     models.Range{Min: 2, Max: 10},
				FeetSizes:  []int{34, 35, 36, 37, 38, 39, 40, 41, 42},
				EyeColors:  append([]models.EyeColor(nil), models.EyeColors...),
				HairColors: append([]models.HairColor(nil), models.HairColors...),
			},
			Schools:      models.DefaultSchools(),
			SalaryRanges: ranges,
		},
		Names: NamesConfig{
			Source: NameProviderFaker,
		},
		Output: OutputConfig{
			Path:      "./students_data.csv",
			Delimiter: ",",
		},
		Database: DatabaseConfig{
			Path:    "",
			Replace: true,
		},
		Display: DisplayConfig{
			ColorScheme: ColorSchemeGreenPhosphor,
		},
		Logging: LoggingConfig{
			Level: LogLevelInfo,
			File:  "",
		},
	}
}

// SalaryRangeTable returns the salary ranges keyed by occupation.
func (d *DatasetConfig) SalaryRangeTable() map[models.Occupation]models.Range {
	table := make(map[models.Occupation]models.Range, len(d.SalaryRanges))
	for label, r := range d.SalaryRanges {
		table[models.Occupation(label)] = r
	}
	return table
}
