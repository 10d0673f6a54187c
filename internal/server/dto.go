package server

import (
	"openday/internal/enroll"
	"openday/internal/models"
)

type checkRequest struct {
	Email string `json:"email" binding:"required,max=254"`
}

type confirmRequest struct {
	Email     string `json:"email" binding:"required,max=254"`
	Name      string `json:"name" binding:"required,max=100"`
	Surname   string `json:"surname" binding:"required,max=100"`
	Challenge bool   `json:"challenge"`
	Team      string `json:"team" binding:"max=100"`
}

type updateRequest struct {
	Email string `json:"email" binding:"required,max=254"`
	Team  string `json:"team" binding:"max=100"`
}

type cancelRequest struct {
	Email string `json:"email" binding:"required,max=254"`
}

type registrationResponse struct {
	Name         string `json:"name"`
	Surname      string `json:"surname"`
	Email        string `json:"email"`
	Challenge    bool   `json:"challenge"`
	Mode         string `json:"mode"`
	Team         string `json:"team"`
	RegisteredAt string `json:"registered_at"`
}

type checkResponse struct {
	Email        string                `json:"email"`
	Found        bool                  `json:"found"`
	CurrentMode  string                `json:"current_mode,omitempty"`
	NextMode     string                `json:"next_mode,omitempty"`
	Registration *registrationResponse `json:"registration,omitempty"`
}

type outcomeResponse struct {
	State        string               `json:"state"`
	Registration registrationResponse `json:"registration"`
	PreviousMode string               `json:"previous_mode,omitempty"`
	Warning      string               `json:"warning,omitempty"`
}

type alreadyRegisteredResponse struct {
	CurrentMode string `json:"current_mode"`
	NextMode    string `json:"next_mode"`
}

type teamResponse struct {
	Team    string `json:"team"`
	Members int    `json:"members"`
}

type rosterResponse struct {
	Capacity      int                    `json:"capacity"`
	Total         int                    `json:"total"`
	Challenge     int                    `json:"challenge"`
	Teams         []teamResponse         `json:"teams"`
	OverCapacity  []teamResponse         `json:"over_capacity"`
	Registrations []registrationResponse `json:"registrations"`
}

func toRegistration(r models.Registration) registrationResponse {
	return registrationResponse{
		Name:         r.Name,
		Surname:      r.Surname,
		Email:        r.Email,
		Challenge:    r.Challenge,
		Mode:         string(r.Mode()),
		Team:         r.TeamName,
		RegisteredAt: models.FormatTimestamp(r.RegisteredAt),
	}
}

func toCheck(s *enroll.Session) checkResponse {
	out := checkResponse{Email: s.Email, Found: s.Found()}
	if s.Found() {
		reg := toRegistration(*s.Existing)
		out.Registration = &reg
		out.CurrentMode = string(s.CurrentMode())
		out.NextMode = string(s.NextMode())
	}
	return out
}

func toOutcome(o *enroll.Outcome) outcomeResponse {
	return outcomeResponse{
		State:        o.State.String(),
		Registration: toRegistration(o.Registration),
		PreviousMode: string(o.Previous),
		Warning:      o.Warning,
	}
}

func toTeams(in []models.TeamCount) []teamResponse {
	out := make([]teamResponse, 0, len(in))
	for _, tc := range in {
		out = append(out, teamResponse{Team: tc.TeamName, Members: tc.Members})
	}
	return out
}

func toRoster(r *enroll.Roster) rosterResponse {
	out := rosterResponse{
		Capacity:      r.Capacity,
		Total:         len(r.Registrations),
		Teams:         toTeams(r.Teams),
		OverCapacity:  toTeams(r.OverCapacity),
		Registrations: make([]registrationResponse, 0, len(r.Registrations)),
	}
	for _, reg := range r.Registrations {
		if reg.Challenge {
			out.Challenge++
		}
		out.Registrations = append(out.Registrations, toRegistration(reg))
	}
	return out
}
