package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/studentgen/studentgen/internal/models"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	if cfg.Dataset.Count != 35125 {
		t.Errorf("expected default count 35125, got %d", cfg.Dataset.Count)
	}
	if cfg.Dataset.AgeMin != 0 || cfg.Dataset.AgeMax != 26 {
		t.Errorf("expected default ages 0-26, got %d-%d", cfg.Dataset.AgeMin, cfg.Dataset.AgeMax)
	}
	if cfg.Dataset.SalaryPolicy != models.SalaryPolicyOccupation {
		t.Errorf("expected occupation salary policy, got %s", cfg.Dataset.SalaryPolicy)
	}
	if cfg.Output.Path != "./students_data.csv" {
		t.Errorf("unexpected default output path %q", cfg.Output.Path)
	}
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a := Default()
	b := Default()

	a.Dataset.Schools[0].Name = "Changed"
	a.Dataset.Occupations[0] = models.OccupationNurse

	if b.Dataset.Schools[0].Name == "Changed" {
		t.Error("schools slice shared between defaults")
	}
	if models.Occupations[0] != models.OccupationEngineer {
		t.Error("default occupations alias the package-level list")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"negative count", func(c *Config) { c.Dataset.Count = -1 }, "count must be non-negative"},
		{"inverted ages", func(c *Config) { c.Dataset.AgeMin, c.Dataset.AgeMax = 18, 6 }, "age_min 18 exceeds age_max 6"},
		{"unknown policy", func(c *Config) { c.Dataset.SalaryPolicy = "random" }, "invalid salary_policy"},
		{"no schools", func(c *Config) { c.Dataset.Schools = nil }, "at least one school"},
		{"unnamed school", func(c *Config) { c.Dataset.Schools[2].Name = "" }, "schools[2]"},
		{"unknown occupation", func(c *Config) {
			c.Dataset.Occupations = append(c.Dataset.Occupations, "Pilot")
		}, "invalid occupation: Pilot"},
		{"missing salary range", func(c *Config) {
			delete(c.Dataset.SalaryRanges, "Doctor")
		}, "missing range for Doctor"},
		{"inverted flat salary", func(c *Config) {
			c.Dataset.SalaryPolicy = models.SalaryPolicyFlat
			c.Dataset.FlatSalary = models.Range{Min: 10, Max: 1}
		}, "flat_salary"},
		{"flat salary without whole amount", func(c *Config) {
			c.Dataset.SalaryPolicy = models.SalaryPolicyFlat
			c.Dataset.FlatSalary = models.Range{Min: 300.2, Max: 300.8}
		}, "no whole amount"},
		{"inverted grades", func(c *Config) {
			c.Dataset.Metrics.Grades = models.Range{Min: 10, Max: 2}
		}, "grades"},
		{"no feet sizes", func(c *Config) { c.Dataset.Metrics.FeetSizes = nil }, "feet_sizes"},
		{"bad eye color", func(c *Config) {
			c.Dataset.Metrics.EyeColors = []models.EyeColor{"Grey"}
		}, "invalid eye color"},
		{"bad name source", func(c *Config) { c.Names.Source = "phonebook" }, "invalid source"},
		{"empty output path", func(c *Config) { c.Output.Path = "" }, "path is required"},
		{"multi-char delimiter", func(c *Config) { c.Output.Delimiter = ";;" }, "single character"},
		{"quote delimiter", func(c *Config) { c.Output.Delimiter = `"` }, "invalid delimiter"},
		{"bad color scheme", func(c *Config) { c.Display.ColorScheme = "neon" }, "invalid color_scheme"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestValidate_FlatPolicyIgnoresSalaryTable(t *testing.T) {
	cfg := Default()
	cfg.Dataset.SalaryPolicy = models.SalaryPolicyFlat
	cfg.Dataset.SalaryRanges = map[string]models.Range{}

	if err := cfg.Validate(); err != nil {
		t.Errorf("flat policy should not require salary ranges: %v", err)
	}
}

func TestOutputConfig_Comma(t *testing.T) {
	tests := []struct {
		delim string
		want  rune
	}{
		{"", ','},
		{",", ','},
		{";", ';'},
		{"\t", '\t'},
		{"|", '|'},
	}

	for _, tt := range tests {
		o := OutputConfig{Path: "x.csv", Delimiter: tt.delim}
		got, err := o.Comma()
		if err != nil {
			t.Errorf("Comma(%q) unexpected error: %v", tt.delim, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Comma(%q) = %q, want %q", tt.delim, got, tt.want)
		}
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	path := writeConfig(t, `
[dataset]
count = 3
seed = 42
age_min = 6
age_max = 18
salary_policy = "flat"

[dataset.flat_salary]
min = 1000
max = 2000

[[dataset.schools]]
name = "School A"
address = "Street A 123"
zip_code = "12345"

[names]
source = "builtin"

[output]
path = "out/students.csv"
delimiter = ";"
`)

	cfg, loadedFrom, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loadedFrom != path {
		t.Errorf("expected loaded path %s, got %s", path, loadedFrom)
	}

	if cfg.Dataset.Count != 3 || cfg.Dataset.Seed != 42 {
		t.Errorf("unexpected count/seed: %d/%d", cfg.Dataset.Count, cfg.Dataset.Seed)
	}
	if cfg.Dataset.AgeMin != 6 || cfg.Dataset.AgeMax != 18 {
		t.Errorf("unexpected ages: %d-%d", cfg.Dataset.AgeMin, cfg.Dataset.AgeMax)
	}
	if cfg.Dataset.SalaryPolicy != models.SalaryPolicyFlat {
		t.Errorf("unexpected policy %s", cfg.Dataset.SalaryPolicy)
	}
	if cfg.Dataset.FlatSalary.Min != 1000 || cfg.Dataset.FlatSalary.Max != 2000 {
		t.Errorf("unexpected flat salary %+v", cfg.Dataset.FlatSalary)
	}

	// Schools in the file replace the defaults.
	if len(cfg.Dataset.Schools) != 1 {
		t.Fatalf("expected 1 school, got %d", len(cfg.Dataset.Schools))
	}
	want := models.School{Name: "School A", Address: "Street A 123", ZipCode: "12345"}
	if cfg.Dataset.Schools[0] != want {
		t.Errorf("unexpected school %+v", cfg.Dataset.Schools[0])
	}

	// Untouched sections keep their defaults.
	if len(cfg.Dataset.Metrics.FeetSizes) != 9 {
		t.Errorf("expected default feet sizes, got %v", cfg.Dataset.Metrics.FeetSizes)
	}
	if cfg.Names.Source != NameProviderBuiltin {
		t.Errorf("unexpected name source %s", cfg.Names.Source)
	}
	if comma, _ := cfg.Output.Comma(); comma != ';' {
		t.Errorf("unexpected delimiter %q", comma)
	}
}

func TestLoad_SchoolsDefaultWhenAbsent(t *testing.T) {
	path := writeConfig(t, "[dataset]\ncount = 10\n")

	cfg, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Dataset.Schools) != len(models.DefaultSchools()) {
		t.Errorf("expected default schools, got %d", len(cfg.Dataset.Schools))
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeConfig(t, "[dataset]\ncount = -5\n")

	_, _, err := Load(path)
	if err == nil {
		t.Fatal("expected error for invalid config")
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if loadErr.Path != path {
		t.Errorf("expected path %s, got %s", path, loadErr.Path)
	}
	if !strings.Contains(err.Error(), "count must be non-negative") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeConfig(t, "[dataset\ncount = ")

	_, _, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "parsing TOML") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_FallsBackToDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, path, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if path != "" {
		t.Errorf("expected empty path for defaults, got %s", path)
	}
	if cfg.Dataset.Count != Default().Dataset.Count {
		t.Errorf("expected default count, got %d", cfg.Dataset.Count)
	}
}

func TestLoad_XDGPath(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Chdir(t.TempDir())

	path := filepath.Join(xdg, XDGConfigSubdir, DefaultConfigFileName)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[dataset]\ncount = 7\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, loadedFrom, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loadedFrom != path {
		t.Errorf("expected %s, got %s", path, loadedFrom)
	}
	if cfg.Dataset.Count != 7 {
		t.Errorf("expected count 7, got %d", cfg.Dataset.Count)
	}
	if got := ConfigPath(""); got != path {
		t.Errorf("ConfigPath() = %s, want %s", got, path)
	}
}

func TestSave_ThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultConfigFileName)

	cfg := Default()
	cfg.Dataset.Count = 12
	cfg.Dataset.Seed = 7
	cfg.Dataset.Schools = cfg.Dataset.Schools[:2]

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# studentgen configuration file") {
		t.Error("expected header comment")
	}

	loaded, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Dataset.Count != 12 || loaded.Dataset.Seed != 7 {
		t.Errorf("unexpected count/seed %d/%d", loaded.Dataset.Count, loaded.Dataset.Seed)
	}
	if len(loaded.Dataset.Schools) != 2 {
		t.Errorf("expected 2 schools, got %d", len(loaded.Dataset.Schools))
	}
	if r := loaded.Dataset.SalaryRangeTable()[models.OccupationDoctor]; r.Min != 15000 || r.Max != 50000 {
		t.Errorf("unexpected doctor range %+v", r)
	}
}

func TestEnsureLogDir(t *testing.T) {
	cfg := Default()

	path, err := EnsureLogDir(cfg)
	if err != nil || path != "" {
		t.Errorf("expected file logging disabled, got %q, %v", path, err)
	}

	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "studentgen.log")
	path, err = EnsureLogDir(cfg)
	if err != nil {
		t.Fatalf("EnsureLogDir: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("expected log directory to exist: %v", err)
	}
}

func TestEnsureOutputDir(t *testing.T) {
	if err := EnsureOutputDir("students.csv"); err != nil {
		t.Errorf("expected no-op for a bare file name, got %v", err)
	}

	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := EnsureOutputDir(filepath.Join(dir, "students.csv")); err != nil {
		t.Fatalf("EnsureOutputDir: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("expected output directory to exist: %v", err)
	}

	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0600); err != nil {
		t.Fatal(err)
	}
	if err := EnsureOutputDir(filepath.Join(blocker, "sub", "students.csv")); err == nil {
		t.Error("expected error when a parent is a regular file")
	}
}
