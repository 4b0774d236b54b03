package session

import (
	"time"

	"github.com/Laulau4713/champion-engine/internal/checklist"
	"github.com/Laulau4713/champion-engine/internal/events"
	"github.com/Laulau4713/champion-engine/internal/gauge"
	"github.com/Laulau4713/champion-engine/internal/level"
	"github.com/Laulau4713/champion-engine/internal/patterns"
)

// #region snapshot

// Snapshot is the full serializable state of a session. Level and module are
// stored by name; the caller resolves them again on restore so snapshots stay
// small and survive catalog tweaks.
type Snapshot struct {
	ID               string                       `json:"id"`
	Level            level.Difficulty             `json:"level"`
	ModuleID         string                       `json:"module_id"`
	Gauge            gauge.State                  `json:"gauge"`
	MessageCount     int                          `json:"message_count"`
	RecentQuestions  []patterns.QuestionType      `json:"recent_questions,omitempty"`
	ClosingAttempted bool                         `json:"closing_attempted"`
	FiredBlockers    []string                     `json:"fired_blockers,omitempty"`
	FiredEvents      []string                     `json:"fired_events,omitempty"`
	ReversalFired    bool                         `json:"reversal_fired"`
	PendingEvent     *events.Occurrence           `json:"pending_event,omitempty"`
	Detected         map[string]checklist.Quality `json:"detected,omitempty"`
	Transcript       []string                     `json:"transcript,omitempty"`
	SavedAt          time.Time                    `json:"saved_at"`
}

// Snapshot captures the session's current state for persistence.
func (s *Session) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &Snapshot{
		ID:               s.id,
		Level:            s.cfg.Name,
		ModuleID:         s.module.ID,
		Gauge:            *s.gaugeState,
		MessageCount:     s.messageCount,
		RecentQuestions:  append([]patterns.QuestionType(nil), s.recentQuestions...),
		ClosingAttempted: s.closingAttempted,
		FiredBlockers:    append([]string(nil), s.firedBlockers...),
		FiredEvents:      s.eventsEng.FiredTypes(),
		ReversalFired:    s.eventsEng.ReversalFired(),
		PendingEvent:     s.pendingEvent,
		Detected:         s.progress.Detected(),
		Transcript:       s.progress.Lines(),
		SavedAt:          time.Now().UTC(),
	}
}

// Restore rebuilds a live session from a snapshot. The caller resolves the
// level config and module definition that match the snapshot's names.
func Restore(snap *Snapshot, cfg *level.Config, module *checklist.Definition, opts Options) *Session {
	opts.ID = snap.ID
	s := New(cfg, module, opts)

	s.gaugeState = &gauge.State{
		Value:   snap.Gauge.Value,
		History: append([]gauge.HistoryEntry(nil), snap.Gauge.History...),
	}
	s.messageCount = snap.MessageCount
	s.recentQuestions = append([]patterns.QuestionType(nil), snap.RecentQuestions...)
	s.closingAttempted = snap.ClosingAttempted
	s.firedBlockers = append([]string(nil), snap.FiredBlockers...)
	s.pendingEvent = snap.PendingEvent
	s.eventsEng.Restore(snap.FiredEvents, snap.ReversalFired)
	s.progress.Restore(snap.Detected, snap.Transcript)
	return s
}

// #endregion snapshot
