package session

import (
	"fmt"
	"strings"
)

// #region prospect-context

// ProspectContext builds the [PROSPECT STATE] block the caller prepends to
// its generation prompt. The block tells the prospect model how to behave
// this turn without ever exposing the gauge number to the trainee.
func (s *Session) ProspectContext(res TurnResult) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	b.WriteString("[PROSPECT STATE]\n")
	b.WriteString(fmt.Sprintf("mood: %s\n", res.Mood.Mood))
	if res.Mood.Behavior != "" {
		b.WriteString(fmt.Sprintf("behavior: %s\n", res.Mood.Behavior))
	}
	if res.Cue != "" {
		b.WriteString(fmt.Sprintf("cue: %s\n", res.Cue))
	}
	if res.Event != nil {
		b.WriteString(fmt.Sprintf("event (%s): say: %q\n", res.Event.Def.Type, res.Event.ProspectLine))
	}
	if res.Reversal != nil {
		b.WriteString(fmt.Sprintf("reversal (%s): say: %q\n", res.Reversal.Def.Type, res.Reversal.ProspectLine))
	}
	if res.Interruption.ShouldInterrupt {
		b.WriteString(fmt.Sprintf("interrupt now: %q\n", res.Interruption.Phrase))
	}
	for _, obj := range s.cfg.HiddenObjections {
		b.WriteString(fmt.Sprintf("hidden objection (reveal only if probed): %s\n", obj))
	}
	return b.String()
}

// #endregion prospect-context
