package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTeamName(t *testing.T) {
	for _, in := range []string{" acme  team ", "ACME TEAM", "Acme Team", "acme\tteam"} {
		assert.Equal(t, "Acme Team", NormalizeTeamName(in), "input %q", in)
	}
	assert.Equal(t, "", NormalizeTeamName("   "))
	assert.Equal(t, "Rocket", NormalizeTeamName("rocket"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@x.com", NormalizeEmail("  Ana@X.com "))
}

func TestChallengeCodec(t *testing.T) {
	assert.Equal(t, "Sim", FormatChallenge(true))
	assert.Equal(t, "Não", FormatChallenge(false))
	assert.True(t, ParseChallenge(" SIM "))
	assert.False(t, ParseChallenge("Não"))
	assert.False(t, ParseChallenge(""))
}

func TestModeOpposite(t *testing.T) {
	assert.Equal(t, ModeChallenge, ModeOpenDay.Opposite())
	assert.Equal(t, ModeOpenDay, ModeChallenge.Opposite())
	assert.Equal(t, ModeChallenge, Registration{Challenge: true}.Mode())
}

func TestTeamKey(t *testing.T) {
	assert.Equal(t, "", Registration{TeamName: "Rocket"}.TeamKey())
	assert.Equal(t, "Rocket", Registration{Challenge: true, TeamName: " rocket"}.TeamKey())
	assert.Equal(t, "", Registration{Challenge: true, TeamName: TeamPlaceholder}.TeamKey(), "challenge row without a team")
	assert.Equal(t, "", Registration{Challenge: true, TeamName: " "}.TeamKey())
}

func TestTimestampRoundTrip(t *testing.T) {
	ts := time.Date(2025, 10, 3, 14, 5, 9, 0, time.Local)
	assert.Equal(t, "2025-10-03 14:05:09", FormatTimestamp(ts))
	assert.True(t, ts.Equal(ParseTimestamp("2025-10-03 14:05:09")))
	assert.True(t, ParseTimestamp("garbage").IsZero())
}
