package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/Laulau4713/champion-engine/internal/gauge"
	"github.com/Laulau4713/champion-engine/internal/logging"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to sessions.db")
	sessionID := flag.String("session", "", "show single session detail")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/sessions.db [--session id] [--json]")
		os.Exit(2)
	}

	store, err := logging.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *sessionID != "" {
		err = runDetailMode(store, *sessionID, *jsonOut)
	} else {
		err = runListMode(store, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

func runListMode(store *logging.Store, jsonOut bool) error {
	sessions, err := store.Sessions()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(os.Stderr, "no sessions found")
		return nil
	}

	if jsonOut {
		return printJSON(sessions)
	}

	fmt.Printf("%-12s  %6s  %11s  %s\n", "Session", "Turns", "Final Gauge", "Last Turn")
	fmt.Printf("%-12s+-%6s+-%11s+-%s\n",
		"------------", "------", "-----------", "--------------------")
	for _, s := range sessions {
		fmt.Printf("%-12s  %6d  %11d  %s\n",
			shortID(s.SessionID), s.Turns, s.FinalGauge, s.LastTurnAt.Format("2006-01-02T15:04:05Z"))
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type turnDetail struct {
	Turn          int                  `json:"turn"`
	Text          string               `json:"text"`
	GaugeBefore   int                  `json:"gauge_before"`
	GaugeAfter    int                  `json:"gauge_after"`
	Mood          string               `json:"mood"`
	EventType     string               `json:"event_type,omitempty"`
	ReversalType  string               `json:"reversal_type,omitempty"`
	Interrupted   bool                 `json:"interrupted"`
	Modifications []gauge.Modification `json:"modifications,omitempty"`
}

func runDetailMode(store *logging.Store, sessionID string, jsonOut bool) error {
	turns, err := store.SessionTurns(sessionID)
	if err != nil {
		return err
	}
	if len(turns) == 0 {
		return fmt.Errorf("session %s: no turns logged", sessionID)
	}

	details := make([]turnDetail, len(turns))
	for i, rec := range turns {
		details[i] = turnDetail{
			Turn:         rec.Turn,
			Text:         rec.Text,
			GaugeBefore:  rec.GaugeBefore,
			GaugeAfter:   rec.GaugeAfter,
			Mood:         rec.Mood,
			EventType:    rec.EventType,
			ReversalType: rec.ReversalType,
			Interrupted:  rec.Interrupted,
		}
		if rec.ModificationsJSON != "" {
			// best effort: older rows may predate the current shape
			_ = json.Unmarshal([]byte(rec.ModificationsJSON), &details[i].Modifications)
		}
	}

	if jsonOut {
		return printJSON(details)
	}

	fmt.Printf("Session: %s (%d turns)\n\n", sessionID, len(turns))
	fmt.Printf("%-5s  %-5s  %-12s  %-22s  %s\n", "Turn", "Gauge", "Mood", "Situational", "Text")
	fmt.Printf("%-5s+-%-5s+-%-12s+-%-22s+-%s\n",
		"-----", "-----", "------------", "----------------------", "--------------------")
	for _, d := range details {
		situational := "—"
		switch {
		case d.EventType != "":
			situational = "event:" + d.EventType
		case d.ReversalType != "":
			situational = "reversal:" + d.ReversalType
		case d.Interrupted:
			situational = "interrupted"
		}
		fmt.Printf("%-5d  %2d→%-2d  %-12s  %-22s  %s\n",
			d.Turn, d.GaugeBefore, d.GaugeAfter, d.Mood, situational, truncate(d.Text, 48))
	}

	last := details[len(details)-1]
	fmt.Printf("\nGauge trajectory: %d → %d over %d turns\n",
		details[0].GaugeBefore, last.GaugeAfter, len(details))
	return nil
}

// #endregion detail-mode

// #region output

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

// #endregion output
