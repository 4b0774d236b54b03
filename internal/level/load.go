package level

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// #region validation-error

// ValidationError aggregates every problem found in a level config so an
// author can fix the file in one pass.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid level config: %v", e.Problems)
}

// #endregion validation-error

// #region validate

// Validate checks the config invariants once at load time. The critical one
// is the mood stage partition: stages must cover [0,100] with no gap and no
// overlap, so every gauge value maps to exactly one mood.
func (c *Config) Validate() error {
	var problems []string

	if c.Name == "" {
		problems = append(problems, "name is required")
	}
	if c.StartingGauge < 0 || c.StartingGauge > 100 {
		problems = append(problems, fmt.Sprintf("starting_gauge %d outside [0,100]", c.StartingGauge))
	}
	if c.ConversionThreshold < 0 || c.ConversionThreshold > 100 {
		problems = append(problems, fmt.Sprintf("conversion_threshold %d outside [0,100]", c.ConversionThreshold))
	}
	switch c.Volatility {
	case VolatilityLow, VolatilityMedium, VolatilityHigh:
	default:
		problems = append(problems, fmt.Sprintf("unknown volatility %q", c.Volatility))
	}

	problems = append(problems, validateStages(c.MoodStages)...)

	for i, ev := range c.Events {
		if ev.Type == "" {
			problems = append(problems, fmt.Sprintf("events[%d]: type is required", i))
		}
		if ev.Probability < 0 || ev.Probability > 1 {
			problems = append(problems, fmt.Sprintf("events[%d]: probability %.2f outside [0,1]", i, ev.Probability))
		}
	}
	seen := map[string]bool{}
	for i, ev := range c.Events {
		if ev.Type != "" && seen[ev.Type] {
			problems = append(problems, fmt.Sprintf("events[%d]: duplicate type %q", i, ev.Type))
		}
		seen[ev.Type] = true
	}
	for i, rv := range c.Reversals {
		if rv.Type == "" {
			problems = append(problems, fmt.Sprintf("reversals[%d]: type is required", i))
		}
		if rv.Probability < 0 || rv.Probability > 1 {
			problems = append(problems, fmt.Sprintf("reversals[%d]: probability %.2f outside [0,1]", i, rv.Probability))
		}
		if rv.GaugeDrop < 0 {
			problems = append(problems, fmt.Sprintf("reversals[%d]: gauge_drop must not be negative", i))
		}
	}
	if c.Interruption.Enabled {
		if c.Interruption.Probability < 0 || c.Interruption.Probability > 1 {
			problems = append(problems, fmt.Sprintf("interruption: probability %.2f outside [0,1]", c.Interruption.Probability))
		}
		if c.Interruption.PatienceSeconds <= 0 {
			problems = append(problems, "interruption: patience_seconds must be positive")
		}
		if c.Interruption.HesitationThreshold <= 0 {
			problems = append(problems, "interruption: hesitation_threshold must be positive")
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func validateStages(stages []MoodStage) []string {
	var problems []string
	if len(stages) == 0 {
		return []string{"mood_stages: at least one stage is required"}
	}
	sorted := make([]MoodStage, len(stages))
	copy(sorted, stages)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Lo < sorted[j].Lo })

	if sorted[0].Lo != 0 {
		problems = append(problems, fmt.Sprintf("mood_stages: first stage starts at %d, must start at 0", sorted[0].Lo))
	}
	if sorted[len(sorted)-1].Hi != 100 {
		problems = append(problems, fmt.Sprintf("mood_stages: last stage ends at %d, must end at 100", sorted[len(sorted)-1].Hi))
	}
	for i, s := range sorted {
		if s.Lo > s.Hi {
			problems = append(problems, fmt.Sprintf("mood_stages[%d]: lo %d > hi %d", i, s.Lo, s.Hi))
		}
		if s.Mood == "" {
			problems = append(problems, fmt.Sprintf("mood_stages[%d]: mood is required", i))
		}
		if i > 0 && s.Lo != sorted[i-1].Hi+1 {
			problems = append(problems, fmt.Sprintf("mood_stages: gap or overlap between %d and %d", sorted[i-1].Hi, s.Lo))
		}
	}
	return problems
}

// #endregion validate

// #region file-load

// fileConfig mirrors Config with optional sections, so a level file can
// override just parts of a built-in difficulty.
type fileConfig struct {
	Name                Difficulty                `yaml:"name"`
	StartingGauge       *int                      `yaml:"starting_gauge"`
	ConversionThreshold *int                      `yaml:"conversion_threshold"`
	Volatility          Volatility                `yaml:"volatility"`
	MoodStages          []MoodStage               `yaml:"mood_stages"`
	Positive            map[string]ActionModifier `yaml:"positive"`
	Negative            map[string]ActionModifier `yaml:"negative"`
	Events              []EventDef                `yaml:"events"`
	Reversals           []ReversalDef             `yaml:"reversals"`
	HiddenObjections    []string                  `yaml:"hidden_objections"`
	Interruption        *InterruptionConfig       `yaml:"interruption"`
	Feedback            *FeedbackSettings         `yaml:"feedback"`
}

// Load reads a YAML level file. When the file's name matches a built-in
// difficulty, the file acts as an overlay on that difficulty: catalogs merge
// entry by entry, other provided sections replace the built-in ones. A file
// with an unknown name must be complete on its own.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse level file: %w", err)
	}

	var cfg *Config
	if build, ok := builders[fc.Name]; ok {
		cfg = build()
	} else {
		cfg = &Config{
			Name:     fc.Name,
			Positive: cloneCatalog(basePositive),
			Negative: cloneCatalog(baseNegative),
		}
	}

	if fc.StartingGauge != nil {
		cfg.StartingGauge = *fc.StartingGauge
	}
	if fc.ConversionThreshold != nil {
		cfg.ConversionThreshold = *fc.ConversionThreshold
	}
	if fc.Volatility != "" {
		cfg.Volatility = fc.Volatility
	}
	if len(fc.MoodStages) > 0 {
		cfg.MoodStages = fc.MoodStages
	}
	for name, m := range fc.Positive {
		if m.Name == "" {
			m.Name = name
		}
		cfg.Positive[name] = m
	}
	for name, m := range fc.Negative {
		if m.Name == "" {
			m.Name = name
		}
		cfg.Negative[name] = m
	}
	if len(fc.Events) > 0 {
		cfg.Events = fc.Events
	}
	if len(fc.Reversals) > 0 {
		cfg.Reversals = fc.Reversals
	}
	if len(fc.HiddenObjections) > 0 {
		cfg.HiddenObjections = fc.HiddenObjections
	}
	if fc.Interruption != nil {
		cfg.Interruption = *fc.Interruption
	}
	if fc.Feedback != nil {
		cfg.Feedback = *fc.Feedback
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// #endregion file-load
