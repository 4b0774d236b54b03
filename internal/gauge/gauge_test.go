package gauge

import (
	"testing"

	"github.com/Laulau4713/champion-engine/internal/level"
)

func mediumEngine(t *testing.T) *Engine {
	t.Helper()
	cfg, err := level.Default(level.DifficultyMedium)
	if err != nil {
		t.Fatal(err)
	}
	return NewEngine(cfg)
}

func TestApplyActionPositive(t *testing.T) {
	e := mediumEngine(t)
	st := NewState(65)

	m := e.ApplyAction(st, "value_demonstrated", level.PolarityPositive)

	if m.Delta != 6 {
		t.Fatalf("delta = %d, want 6", m.Delta)
	}
	if m.NewValue != 71 || st.Value != 71 {
		t.Fatalf("new value = %d (state %d), want 71", m.NewValue, st.Value)
	}
	if len(st.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(st.History))
	}
}

func TestApplyActionVolatilityScaling(t *testing.T) {
	cfg, err := level.Default(level.DifficultyHard) // high volatility, 1.3x
	if err != nil {
		t.Fatal(err)
	}
	e := NewEngine(cfg)
	st := NewState(50)

	m := e.ApplyAction(st, "need_identified", level.PolarityPositive) // 6 pts

	if m.Delta != 8 { // round(6 * 1.3)
		t.Fatalf("delta = %d, want 8", m.Delta)
	}
}

func TestApplyActionUnknown(t *testing.T) {
	e := mediumEngine(t)
	st := NewState(40)

	m := e.ApplyAction(st, "did_a_backflip", level.PolarityPositive)

	if m.Delta != 0 || m.NewValue != 40 {
		t.Fatalf("unknown action changed the gauge: %+v", m)
	}
	if m.Reason != "unrecognized action" {
		t.Fatalf("reason = %q", m.Reason)
	}
}

// The denigration cap fires regardless of the action's negative sign. The
// behavior is intentionally preserved; this test documents it.
func TestDenigrationCapAppliesDespitePenaltySign(t *testing.T) {
	e := mediumEngine(t)

	st := NewState(60)
	m := e.ApplyAction(st, "denigrated_competitor", level.PolarityNegative)
	if m.NewValue > 70 {
		t.Fatalf("value %d above denigration cap", m.NewValue)
	}
	if m.NewValue != 52 { // 60 - 8, cap not binding here
		t.Fatalf("value = %d, want 52", m.NewValue)
	}

	// Even from a high gauge the result may not exceed 70.
	st = NewState(100)
	e.ApplyAction(st, "denigrated_competitor", level.PolarityNegative)
	if st.Value > 70 {
		t.Fatalf("value %d above denigration cap from high start", st.Value)
	}
}

func TestGaugeStaysInBounds(t *testing.T) {
	e := mediumEngine(t)
	st := NewState(50)

	actions := []struct {
		name     string
		polarity level.Polarity
	}{
		{"lost_temper", level.PolarityNegative},
		{"lost_temper", level.PolarityNegative},
		{"lost_temper", level.PolarityNegative},
		{"lost_temper", level.PolarityNegative},
		{"objection_handled", level.PolarityPositive},
		{"value_demonstrated", level.PolarityPositive},
	}
	for i := 0; i < 8; i++ {
		for _, a := range actions {
			e.ApplyAction(st, a.name, a.polarity)
			if st.Value < 0 || st.Value > 100 {
				t.Fatalf("gauge left [0,100]: %d after %s", st.Value, a.name)
			}
		}
	}
	for _, h := range st.History {
		if h.Resulting < 0 || h.Resulting > 100 {
			t.Fatalf("history holds out-of-bounds value %d", h.Resulting)
		}
	}
}

func TestAdjustClampsWithoutCap(t *testing.T) {
	e := mediumEngine(t)
	st := NewState(95)

	m := e.Adjust(st, "event:time_pressure", +20, "handled the time squeeze")
	if m.NewValue != 100 {
		t.Fatalf("adjust did not clamp at 100: %d", m.NewValue)
	}

	m = e.Adjust(st, "reversal:last_minute_doubt", -200, "reversal drop")
	if m.NewValue != 0 {
		t.Fatalf("adjust did not clamp at 0: %d", m.NewValue)
	}
}

func TestMoodForCoversAllValues(t *testing.T) {
	e := mediumEngine(t)
	for v := 0; v <= 100; v++ {
		s := e.MoodFor(v)
		if !s.Contains(v) {
			t.Fatalf("mood stage for %d does not contain it: %+v", v, s)
		}
	}
}

func TestCheckConversionPossible(t *testing.T) {
	ok, reasons := CheckConversionPossible(80, 70, nil, nil, nil)
	if !ok || len(reasons) != 0 {
		t.Fatalf("clean conversion refused: %v", reasons)
	}

	ok, reasons = CheckConversionPossible(50, 70, nil, nil, nil)
	if ok || len(reasons) != 1 {
		t.Fatalf("below-threshold conversion allowed: %v", reasons)
	}

	ok, reasons = CheckConversionPossible(90, 70, []string{"lost_temper"}, nil, nil)
	if ok {
		t.Fatalf("lost_temper did not block conversion: %v", reasons)
	}

	// Cap-only blockers do not forbid conversion by themselves.
	ok, _ = CheckConversionPossible(65, 60, []string{"denigrated_competitor"}, nil, nil)
	if !ok {
		t.Fatal("cap-only blocker must not block conversion")
	}

	ok, reasons = CheckConversionPossible(90, 70, nil,
		[]string{"decision_maker_present", "budget_confirmed"},
		[]string{"decision_maker_present"})
	if ok || len(reasons) != 1 {
		t.Fatalf("missing required condition not reported: %v", reasons)
	}
}
