package enroll

import "openday/internal/models"

// State is a step of the enrollment interaction.
type State int

const (
	NotStarted State = iota
	EmailChecked
	Confirmed
	Updated
	Cancelled
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case EmailChecked:
		return "email_checked"
	case Confirmed:
		return "confirmed"
	case Updated:
		return "updated"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Session carries one interaction through the flow. It is created by Check
// and owned by the caller for the lifetime of a single request.
type Session struct {
	State    State
	Email    string
	Existing *models.Registration
}

func (s *Session) Found() bool {
	return s != nil && s.Existing != nil
}

// CurrentMode is the mode of the existing registration. Only meaningful when Found.
func (s *Session) CurrentMode() models.Mode {
	if !s.Found() {
		return ""
	}
	return s.Existing.Mode()
}

// NextMode is the mode an update would switch to.
func (s *Session) NextMode() models.Mode {
	if !s.Found() {
		return ""
	}
	return s.Existing.Mode().Opposite()
}

// reset returns the session to NotStarted; any further action needs a fresh Check.
func (s *Session) reset() {
	*s = Session{}
}

type ConfirmInput struct {
	Name      string
	Surname   string
	Challenge bool
	TeamName  string
}

type UpdateInput struct {
	// TeamName is required only when the update moves into the challenge.
	TeamName string
}

// Outcome describes a successful write.
type Outcome struct {
	State        State
	Registration models.Registration
	Previous     models.Mode
	// Warning is set when the write stands but the notification failed.
	Warning string
}

type Roster struct {
	Capacity      int
	Registrations []models.Registration
	Teams         []models.TeamCount
	OverCapacity  []models.TeamCount
}
