package level

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultLevelsValidate(t *testing.T) {
	for _, d := range Difficulties() {
		if _, err := Default(d); err != nil {
			t.Fatalf("default %s does not validate: %v", d, err)
		}
	}
}

func TestMoodStagePartition(t *testing.T) {
	for _, d := range Difficulties() {
		cfg, err := Default(d)
		if err != nil {
			t.Fatalf("load %s: %v", d, err)
		}
		for v := 0; v <= 100; v++ {
			matches := 0
			for _, s := range cfg.MoodStages {
				if s.Contains(v) {
					matches++
				}
			}
			if matches != 1 {
				t.Fatalf("%s: gauge %d matched %d stages, want exactly 1", d, v, matches)
			}
		}
	}
}

func TestVolatilityMultiplier(t *testing.T) {
	cases := []struct {
		v    Volatility
		want float64
	}{
		{VolatilityLow, 0.8},
		{VolatilityMedium, 1.0},
		{VolatilityHigh, 1.3},
		{Volatility("bogus"), 1.0},
	}
	for _, c := range cases {
		if got := c.v.Multiplier(); got != c.want {
			t.Fatalf("%s multiplier = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestEasyLevelHasNoEventsOrReversals(t *testing.T) {
	cfg, err := Default(DifficultyEasy)
	if err != nil {
		t.Fatalf("load easy: %v", err)
	}
	if len(cfg.Events) != 0 {
		t.Fatalf("easy has %d events, want 0", len(cfg.Events))
	}
	if len(cfg.Reversals) != 0 {
		t.Fatalf("easy has %d reversals, want 0", len(cfg.Reversals))
	}
	if cfg.Interruption.Enabled {
		t.Fatal("easy must have interruptions disabled")
	}
}

func TestValidateRejectsGap(t *testing.T) {
	cfg, _ := Default(DifficultyMedium)
	cfg.MoodStages = []MoodStage{
		{Lo: 0, Hi: 40, Mood: MoodSkeptical},
		{Lo: 45, Hi: 100, Mood: MoodNeutral}, // gap 41..44
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for stage gap")
	}
}

func TestValidateRejectsOverlap(t *testing.T) {
	cfg, _ := Default(DifficultyMedium)
	cfg.MoodStages = []MoodStage{
		{Lo: 0, Hi: 50, Mood: MoodSkeptical},
		{Lo: 50, Hi: 100, Mood: MoodNeutral}, // 50 covered twice
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for stage overlap")
	}
}

func TestValidateRejectsBadProbability(t *testing.T) {
	cfg, _ := Default(DifficultyMedium)
	cfg.Events[0].Probability = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for probability > 1")
	}
}

func TestLoadOverlayMergesCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "medium.yaml")
	overlay := `name: medium
starting_gauge: 45
positive:
  value_demonstrated:
    points: 9
    description: "custom override"
`
	if err := os.WriteFile(path, []byte(overlay), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load overlay: %v", err)
	}
	if cfg.StartingGauge != 45 {
		t.Fatalf("starting gauge = %d, want 45", cfg.StartingGauge)
	}
	m, ok := cfg.Modifier(PolarityPositive, "value_demonstrated")
	if !ok || m.Points != 9 {
		t.Fatalf("override not applied: %+v ok=%v", m, ok)
	}
	if m.Name != "value_demonstrated" {
		t.Fatalf("override lost its name: %q", m.Name)
	}
	// Untouched entries survive the merge.
	if _, ok := cfg.Modifier(PolarityNegative, "lost_temper"); !ok {
		t.Fatal("base negative catalog lost during merge")
	}
	if len(cfg.Events) != 2 {
		t.Fatalf("overlay should keep built-in events, got %d", len(cfg.Events))
	}
}

func TestLoadRejectsIncompleteCustomLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `name: bespoke
starting_gauge: 40
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("custom level without mood stages must fail validation")
	}
}
