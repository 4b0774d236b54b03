package logging

import "time"

// #region turn-record
// TurnRecord captures the complete inputs and outcomes of a single evaluated
// turn. Serialized into session_turns for deterministic replay and for
// post-session coaching review.
type TurnRecord struct {
	SessionID string `json:"session_id"`
	Turn      int    `json:"turn"`
	Text      string `json:"text"`

	// Exact signals as evaluated at runtime
	ResponseDelaySeconds float64 `json:"response_delay_seconds"`
	SpeakingDuration     float64 `json:"speaking_duration"`
	Confidence           float64 `json:"confidence"`
	HesitationCount      int     `json:"hesitation_count"`

	// Gauge output
	GaugeBefore int    `json:"gauge_before"`
	GaugeAfter  int    `json:"gauge_after"`
	Mood        string `json:"mood"`

	// Situational machinery active this turn
	EventType    string `json:"event_type,omitempty"`
	ReversalType string `json:"reversal_type,omitempty"`
	Interrupted  bool   `json:"interrupted"`

	// Gauge modifications as applied, JSON-encoded
	ModificationsJSON string `json:"modifications_json,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
// #endregion turn-record

// #region session-summary
// SessionSummary is one row of the per-session aggregate view.
type SessionSummary struct {
	SessionID  string
	Turns      int
	FinalGauge int
	LastTurnAt time.Time
}
// #endregion session-summary
