package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the calendar-date form used in session records.
const DateLayout = time.DateOnly

// Record is one persisted practice session. Records are built by a Builder
// and never modified afterwards.
type Record struct {
	ID        string        `json:"id"`
	Date      string        `json:"date"`
	Location  string        `json:"location"`
	Skills    []string      `json:"skills"`
	Drills    []DrillResult `json:"drills"`
	Notes     string        `json:"notes"`
	CreatedAt time.Time     `json:"createdAt,omitzero"`
}

// DrillResult is the logged outcome of one drill. Name and Category are
// copied from the catalog at save time so history survives catalog changes.
type DrillResult struct {
	DrillID  string   `json:"drillId"`
	Name     string   `json:"name"`
	Category string   `json:"category,omitempty"`
	Score    Score    `json:"score"`
	Metric   string   `json:"metric,omitempty"`
	Rate     *float64 `json:"rate,omitempty"`
	Notes    string   `json:"notes"`
}

type scoreKind uint8

const (
	scoreText scoreKind = iota
	scoreNumber
	scoreNull
)

// Score is a freeform drill result. The builder always produces text, but
// stored records may also carry a JSON number or null, which are kept as-is.
type Score struct {
	raw  string
	kind scoreKind
}

// TextScore returns a text score.
func TextScore(s string) Score { return Score{raw: s} }

// NullScore returns an explicit null score.
func NullScore() Score { return Score{kind: scoreNull} }

// NumberScore returns a numeric score.
func NumberScore(n json.Number) Score { return Score{raw: n.String(), kind: scoreNumber} }

// String returns the score as display text; null is "".
func (s Score) String() string { return s.raw }

// IsNull reports whether the score is an explicit null.
func (s Score) IsNull() bool { return s.kind == scoreNull }

// IsNumber reports whether the score was stored as a JSON number.
func (s Score) IsNumber() bool { return s.kind == scoreNumber }

func (s Score) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case scoreNull:
		return []byte("null"), nil
	case scoreNumber:
		return []byte(s.raw), nil
	default:
		return json.Marshal(s.raw)
	}
}

func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = NullScore()
		return nil
	case len(data) > 0 && data[0] == '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = TextScore(text)
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	n, ok := v.(json.Number)
	if !ok {
		return fmt.Errorf("score must be a string, number or null, got %s", data)
	}
	*s = NumberScore(n)
	return nil
}
