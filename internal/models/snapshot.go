package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// LeagueSnapshot is one week of rankings as published in chat_prompt.json.
// Team order is the ranking.
type LeagueSnapshot struct {
	League string
	Week   string
	Teams  []Team
}

type Team struct {
	Name        string
	Record      string
	PointsFor   *float64
	Stars       []string
	SummaryHTML string
	WinStreak   *int
	Injuries    []string
}

// MaxStreak bounds win_streak in both directions so any number the producer
// writes converts to an int and negates safely.
const MaxStreak = 999

type rawSnapshot struct {
	League json.RawMessage `json:"league"`
	Week   json.RawMessage `json:"week"`
	Teams  json.RawMessage `json:"teams"`
}

type rawTeam struct {
	Name        json.RawMessage `json:"team_name"`
	Record      json.RawMessage `json:"record"`
	PointsFor   json.RawMessage `json:"points_for"`
	Stars       json.RawMessage `json:"stars"`
	SummaryHTML json.RawMessage `json:"ai_summary_html"`
	WinStreak   json.RawMessage `json:"win_streak"`
	Injuries    json.RawMessage `json:"injuries"`
}

// DecodeSnapshot only fails when data is not valid JSON. Fields with an
// unexpected shape are treated as absent.
func DecodeSnapshot(data []byte) (LeagueSnapshot, error) {
	var root json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return LeagueSnapshot{}, err
	}

	var raw rawSnapshot
	if !isObject(root) || json.Unmarshal(root, &raw) != nil {
		return LeagueSnapshot{}, nil
	}

	snapshot := LeagueSnapshot{}
	snapshot.League, _ = stringValue(raw.League)
	if week, ok := stringValue(raw.Week); ok {
		snapshot.Week = week
	} else if week, ok := numberValue(raw.Week); ok {
		snapshot.Week = formatNumber(week)
	}

	var entries []json.RawMessage
	if json.Unmarshal(raw.Teams, &entries) != nil {
		return snapshot, nil
	}
	snapshot.Teams = make([]Team, 0, len(entries))
	for _, entry := range entries {
		snapshot.Teams = append(snapshot.Teams, decodeTeam(entry))
	}
	return snapshot, nil
}

func decodeTeam(entry json.RawMessage) Team {
	var raw rawTeam
	if !isObject(entry) || json.Unmarshal(entry, &raw) != nil {
		return Team{}
	}

	team := Team{
		Stars:    stringList(raw.Stars),
		Injuries: stringList(raw.Injuries),
	}
	team.Name, _ = stringValue(raw.Name)
	team.Record, _ = stringValue(raw.Record)
	team.SummaryHTML, _ = stringValue(raw.SummaryHTML)
	if points, ok := numberValue(raw.PointsFor); ok {
		team.PointsFor = &points
	}
	if streak, ok := numberValue(raw.WinStreak); ok {
		s := int(math.Max(-MaxStreak, math.Min(MaxStreak, streak)))
		team.WinStreak = &s
	}
	return team
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func stringValue(raw json.RawMessage) (string, bool) {
	var s string
	if isAbsent(raw) || json.Unmarshal(raw, &s) != nil {
		return "", false
	}
	return s, true
}

// numberValue accepts finite JSON numbers and numeric strings.
func numberValue(raw json.RawMessage) (float64, bool) {
	var f float64
	if isAbsent(raw) {
		return 0, false
	}
	if json.Unmarshal(raw, &f) == nil {
		return f, true
	}
	if s, ok := stringValue(raw); ok {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil && !math.IsNaN(parsed) && !math.IsInf(parsed, 0) {
			return parsed, true
		}
	}
	return 0, false
}

func stringList(raw json.RawMessage) []string {
	var items []json.RawMessage
	if isAbsent(raw) || json.Unmarshal(raw, &items) != nil {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := stringValue(item); ok {
			out = append(out, s)
		}
	}
	return out
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatPoints renders a points value without trailing zeros, or "-" when absent.
func FormatPoints(points *float64) string {
	if points == nil {
		return "-"
	}
	return formatNumber(*points)
}
