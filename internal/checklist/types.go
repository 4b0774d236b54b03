// Package checklist scores a session transcript against a methodology module:
// a weighted list of checklist items with detection patterns, scoring rules,
// mastery levels, and a final result matrix. Definitions are validated and
// compiled once at load time and shared read-only across sessions.
package checklist

import "regexp"

// #region quality

// Quality grades how an item was covered.
type Quality string

const (
	QualityNone      Quality = "none"
	QualityBasic     Quality = "basic"
	QualityGood      Quality = "good"
	QualityExcellent Quality = "excellent"
)

// multiplier returns the weight multiplier for a quality grade.
func (q Quality) multiplier() float64 {
	switch q {
	case QualityGood:
		return 1.5
	case QualityExcellent:
		return 2.0
	case QualityBasic:
		return 1.0
	default:
		return 0
	}
}

// betterThan orders quality grades for incremental upgrades.
func (q Quality) betterThan(other Quality) bool {
	return q.multiplier() > other.multiplier()
}

// #endregion quality

// #region definition

// Item is one methodology step with its detection patterns.
type Item struct {
	ID           string   `yaml:"id" json:"id"`
	Label        string   `yaml:"label" json:"label"`
	Description  string   `yaml:"description" json:"description"`
	QuestionHint string   `yaml:"question_hint" json:"question_hint"`
	Patterns     []string `yaml:"patterns" json:"patterns"`
	Weight       int      `yaml:"weight" json:"weight"`
	Required     bool     `yaml:"required" json:"required"`

	compiled []*regexp.Regexp
}

// Scoring holds the module's scoring parameters.
type Scoring struct {
	PerElementBase   int     `yaml:"per_element_base" json:"per_element_base"`
	QualityBonus     float64 `yaml:"quality_bonus" json:"quality_bonus"`
	MasteryThreshold int     `yaml:"mastery_threshold" json:"mastery_threshold"`
}

// MasteryLevel classifies a normalized score into a named tier.
type MasteryLevel struct {
	Name             string `yaml:"name" json:"name"`
	MinScore         int    `yaml:"min_score" json:"min_score"`
	ElementsRequired int    `yaml:"elements_required" json:"elements_required"`
	Description      string `yaml:"description" json:"description"`
}

// Risk is the consequence of skipping an item, used for coaching feedback.
type Risk struct {
	Risk        string `yaml:"risk" json:"risk"`
	Consequence string `yaml:"consequence" json:"consequence"`
	CoachingTip string `yaml:"coaching_tip" json:"coaching_tip"`
}

// ResultOutcome is one cell of the final result matrix.
type ResultOutcome struct {
	Label   string `yaml:"label" json:"label"`
	Emoji   string `yaml:"emoji" json:"emoji"`
	Message string `yaml:"message" json:"message"`
}

// Evaluation bundles scoring parameters with the mastery level ladder; it is
// a required section of every module file.
type Evaluation struct {
	Scoring `yaml:",inline" json:",inline"`
	Levels  []MasteryLevel `yaml:"levels" json:"levels"`
}

// Definition is one fully loaded methodology module. Never mutated after
// loading; the repository hands the same pointer to every session.
type Definition struct {
	ID                string                   `yaml:"id" json:"id"`
	Name              string                   `yaml:"name" json:"name"`
	Checklist         []Item                   `yaml:"checklist" json:"checklist"`
	Evaluation        Evaluation               `yaml:"evaluation" json:"evaluation"`
	RisksIfMissing    map[string]Risk          `yaml:"risks_if_missing" json:"risks_if_missing"`
	ResultMatrix      map[string]ResultOutcome `yaml:"result_matrix" json:"result_matrix"`
	FeedbackTemplates map[string]string        `yaml:"feedback_templates" json:"feedback_templates"`
}

// itemWeight resolves an item's effective weight.
func (d *Definition) itemWeight(it Item) int {
	if it.Weight > 0 {
		return it.Weight
	}
	if d.Evaluation.PerElementBase > 0 {
		return d.Evaluation.PerElementBase
	}
	return 1
}

// #endregion definition

// #region results

// DetectedItem is a checklist item found in the transcript.
type DetectedItem struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Quality Quality `json:"quality"`
}

// MissingItem is a checklist item never found in the transcript.
type MissingItem struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Required     bool   `json:"required"`
	QuestionHint string `json:"question_hint,omitempty"`
}

// RiskReport pairs a missing required item with its configured risk.
type RiskReport struct {
	ItemID      string `json:"item_id"`
	Risk        string `json:"risk"`
	Consequence string `json:"consequence"`
	CoachingTip string `json:"coaching_tip"`
}

// EvaluationResult is the module score for one session.
type EvaluationResult struct {
	ModuleID        string         `json:"module_id"`
	Detected        []DetectedItem `json:"detected"`
	Missing         []MissingItem  `json:"missing"`
	Score           int            `json:"score"` // normalized, 0..100
	MaxScore        int            `json:"max_score"`
	Level           string         `json:"level"`
	MasteryAchieved bool           `json:"mastery_achieved"`
	Risks           []RiskReport   `json:"risks"`
}

// FinalResult is one of the four session outcomes keyed by the
// (module success, closing success) pair.
type FinalResult struct {
	Key            string `json:"key"`
	ModuleSuccess  bool   `json:"module_success"`
	ClosingSuccess bool   `json:"closing_success"`
	Label          string `json:"label"`
	Emoji          string `json:"emoji"`
	Message        string `json:"message"`
}

// #endregion results
