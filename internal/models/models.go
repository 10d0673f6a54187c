package models

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// TeamPlaceholder is stored as team name when the participant is not in the challenge.
	TeamPlaceholder = "—"

	ChallengeYes = "Sim"
	ChallengeNo  = "Não"

	TimestampLayout = "2006-01-02 15:04:05"
)

type Mode string

const (
	ModeOpenDay   Mode = "Open Day only"
	ModeChallenge Mode = "Open Day + Challenge"
)

// Opposite returns the mode an existing registration can switch to.
func (m Mode) Opposite() Mode {
	if m == ModeChallenge {
		return ModeOpenDay
	}
	return ModeChallenge
}

func (m Mode) IsChallenge() bool { return m == ModeChallenge }

type Registration struct {
	Name         string
	Surname      string
	Email        string
	Challenge    bool
	TeamName     string
	RegisteredAt time.Time

	// Row is the 1-based sheet row the registration was read from. Zero for new rows.
	Row int
}

func (r Registration) Mode() Mode {
	if r.Challenge {
		return ModeChallenge
	}
	return ModeOpenDay
}

// TeamKey is the grouping key used for capacity checks. Empty outside the challenge
// and for challenge rows that never got a team.
func (r Registration) TeamKey() string {
	if !r.Challenge {
		return ""
	}
	key := NormalizeTeamName(r.TeamName)
	if key == TeamPlaceholder {
		return ""
	}
	return key
}

func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeTeamName trims, collapses inner whitespace and title-cases the name,
// so " acme  team ", "ACME TEAM" and "Acme Team" all become "Acme Team".
func NormalizeTeamName(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	// Casers keep state, so one is built per call.
	return cases.Title(language.Portuguese).String(strings.Join(fields, " "))
}

func FormatChallenge(v bool) string {
	if v {
		return ChallengeYes
	}
	return ChallengeNo
}

func ParseChallenge(s string) bool {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "sim", "yes", "true", "1", "y", "s":
		return true
	default:
		return false
	}
}

func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseTimestamp accepts the sheet layout and RFC3339; unparseable cells yield the zero time.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.ParseInLocation(TimestampLayout, s, time.Local); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

// TeamCount is the number of challenge participants registered under one team name.
type TeamCount struct {
	TeamName string
	Members  int
}
