package models

import "time"

type Tier string

const (
	TierGood Tier = "good"
	TierMid  Tier = "mid"
	TierBad  Tier = "bad"
)

// State tracks the render cycle: idle → loading → rendered | errored.
type State string

const (
	StateIdle     State = "idle"
	StateLoading  State = "loading"
	StateRendered State = "rendered"
	StateErrored  State = "errored"
)

type CardKind string

const (
	CardTeam        CardKind = "team"
	CardPlaceholder CardKind = "placeholder"
	CardError       CardKind = "error"
)

type Badge struct {
	Label string `json:"label"`
	Tier  Tier   `json:"tier"`
}

type Card struct {
	Kind        CardKind `json:"kind"`
	Rank        int      `json:"rank,omitempty"`
	TeamName    string   `json:"team_name,omitempty"`
	SubLine     string   `json:"sub_line,omitempty"`
	SummaryHTML string   `json:"summary_html,omitempty"`
	Tier        Tier     `json:"tier,omitempty"`
	Badges      []Badge  `json:"badges,omitempty"`
	Message     string   `json:"message,omitempty"`
}

func (c Card) IsTeam() bool  { return c.Kind == CardTeam }
func (c Card) IsError() bool { return c.Kind == CardError }

// View is everything the page needs to draw the rankings list.
type View struct {
	League     string    `json:"league"`
	WeekLabel  string    `json:"week_label"`
	State      State     `json:"state"`
	Cards      []Card    `json:"cards"`
	Generation uint64    `json:"generation"`
	RenderedAt time.Time `json:"rendered_at"`
}

// TeamCards returns the cards that represent ranked teams.
func (v View) TeamCards() []Card {
	var cards []Card
	for _, c := range v.Cards {
		if c.IsTeam() {
			cards = append(cards, c)
		}
	}
	return cards
}
