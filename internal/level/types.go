// Package level defines difficulty-level configuration for a training session:
// mood stage tables, action modifier catalogs, situational event and reversal
// definitions, and interruption behavior. Configs are validated once at load
// time; engines never re-check field shapes at evaluation time.
package level

// #region difficulty

// Difficulty names a built-in difficulty tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// #endregion difficulty

// #region volatility

// Volatility scales every gauge delta applied during the session.
type Volatility string

const (
	VolatilityLow    Volatility = "low"
	VolatilityMedium Volatility = "medium"
	VolatilityHigh   Volatility = "high"
)

// Multiplier returns the delta multiplier for the volatility tier.
// Unknown values fall back to the medium multiplier.
func (v Volatility) Multiplier() float64 {
	switch v {
	case VolatilityLow:
		return 0.8
	case VolatilityHigh:
		return 1.3
	default:
		return 1.0
	}
}

// #endregion volatility

// #region mood

// Mood names a behavioral bucket of the simulated prospect.
type Mood string

const (
	MoodHostile    Mood = "hostile"
	MoodSkeptical  Mood = "skeptical"
	MoodNeutral    Mood = "neutral"
	MoodInterested Mood = "interested"
	MoodReadyToBuy Mood = "ready_to_buy"
)

// MoodStage maps an inclusive gauge range to a mood and the behavior the
// prospect exhibits inside that range. Stages must partition [0,100].
type MoodStage struct {
	Lo       int    `yaml:"lo" json:"lo"`
	Hi       int    `yaml:"hi" json:"hi"`
	Mood     Mood   `yaml:"mood" json:"mood"`
	Behavior string `yaml:"behavior" json:"behavior"`
}

// Contains reports whether value falls inside the stage's inclusive range.
func (s MoodStage) Contains(value int) bool {
	return value >= s.Lo && value <= s.Hi
}

// #endregion mood

// #region polarity

// Polarity separates the two action modifier catalogs.
type Polarity string

const (
	PolarityPositive Polarity = "positive"
	PolarityNegative Polarity = "negative"
)

// #endregion polarity

// #region modifier

// ActionModifier is one entry of a modifier catalog: a named trainee behavior
// and the raw gauge points it is worth before volatility scaling.
type ActionModifier struct {
	Name        string `yaml:"name" json:"name"`
	Points      int    `yaml:"points" json:"points"`
	Description string `yaml:"description" json:"description"`
}

// #endregion modifier

// #region events

// Trigger classifies how a situational event is armed.
type Trigger string

const (
	// TriggerRandom events are candidates on every eligible turn.
	TriggerRandom Trigger = "random"
	// TriggerGaugeHigh events additionally require the gauge to sit at 60+.
	TriggerGaugeHigh Trigger = "when_gauge_high"
)

// EventDef defines a situational event: a scripted test injected
// mid-conversation, independent of the action catalogs.
type EventDef struct {
	Type              string  `yaml:"type" json:"type"`
	Trigger           Trigger `yaml:"trigger" json:"trigger"`
	Probability       float64 `yaml:"probability" json:"probability"`
	ProspectLine      string  `yaml:"prospect_line" json:"prospect_line"`
	TestDescription   string  `yaml:"test_description" json:"test_description"`
	GoodBonus         int     `yaml:"good_bonus" json:"good_bonus"`
	BadPenalty        int     `yaml:"bad_penalty" json:"bad_penalty"`
	IsTest            bool    `yaml:"is_test" json:"is_test"`
	ExtraInterlocutor string  `yaml:"extra_interlocutor,omitempty" json:"extra_interlocutor,omitempty"`
}

// ReversalDef defines a late-session scripted setback, gated by a gauge
// threshold. At most one reversal fires per session.
type ReversalDef struct {
	Type                   string  `yaml:"type" json:"type"`
	GaugeThreshold         int     `yaml:"gauge_threshold" json:"gauge_threshold"`
	Probability            float64 `yaml:"probability" json:"probability"`
	ProspectLine           string  `yaml:"prospect_line" json:"prospect_line"`
	GaugeDrop              int     `yaml:"gauge_drop" json:"gauge_drop"`
	Reveals                string  `yaml:"reveals,omitempty" json:"reveals,omitempty"`
	IsFake                 bool    `yaml:"is_fake" json:"is_fake"`
	RequiresClosingAttempt bool    `yaml:"requires_closing_attempt" json:"requires_closing_attempt"`
}

// #endregion events

// #region interruption

// InterruptionConfig controls whether and how often the prospect cuts the
// trainee off mid-sentence.
type InterruptionConfig struct {
	Enabled             bool    `yaml:"enabled" json:"enabled"`
	Probability         float64 `yaml:"probability" json:"probability"`
	PatienceSeconds     float64 `yaml:"patience_seconds" json:"patience_seconds"`
	HesitationThreshold int     `yaml:"hesitation_threshold" json:"hesitation_threshold"`
}

// #endregion interruption

// #region feedback

// FeedbackSettings controls which coaching signals are surfaced to the caller.
type FeedbackSettings struct {
	ShowCues      bool `yaml:"show_cues" json:"show_cues"`
	CoachingHints bool `yaml:"coaching_hints" json:"coaching_hints"`
}

// #endregion feedback

// #region config

// Config is one fully resolved difficulty level. The modifier catalogs hold
// the base catalog merged with the level's overrides, keyed by action name.
type Config struct {
	Name                Difficulty                `yaml:"name" json:"name"`
	StartingGauge       int                       `yaml:"starting_gauge" json:"starting_gauge"`
	ConversionThreshold int                       `yaml:"conversion_threshold" json:"conversion_threshold"`
	Volatility          Volatility                `yaml:"volatility" json:"volatility"`
	MoodStages          []MoodStage               `yaml:"mood_stages" json:"mood_stages"`
	Positive            map[string]ActionModifier `yaml:"positive" json:"positive"`
	Negative            map[string]ActionModifier `yaml:"negative" json:"negative"`
	Events              []EventDef                `yaml:"events" json:"events"`
	Reversals           []ReversalDef             `yaml:"reversals" json:"reversals"`
	HiddenObjections    []string                  `yaml:"hidden_objections" json:"hidden_objections"`
	Interruption        InterruptionConfig        `yaml:"interruption" json:"interruption"`
	Feedback            FeedbackSettings          `yaml:"feedback" json:"feedback"`
}

// Modifier looks up an action in the catalog for the given polarity.
func (c *Config) Modifier(polarity Polarity, action string) (ActionModifier, bool) {
	catalog := c.Positive
	if polarity == PolarityNegative {
		catalog = c.Negative
	}
	m, ok := catalog[action]
	return m, ok
}

// #endregion config
