package notify

import (
	"fmt"
	"strings"

	"openday/internal/models"
)

type Kind string

const (
	KindConfirmed Kind = "confirmed"
	KindUpdated   Kind = "updated"
	KindCancelled Kind = "cancelled"
)

const subjectPrefix = "IBM Journey | "

// Event is one successful write the registrant, and optionally organizers, hear about.
type Event struct {
	Kind         Kind
	Registration models.Registration
	// Previous is the mode before an update.
	Previous models.Mode
}

func teamLabel(r models.Registration) string {
	if !r.Challenge || strings.TrimSpace(r.TeamName) == "" {
		return models.TeamPlaceholder
	}
	return r.TeamName
}

// RegistrantMessage renders the email sent to the participant.
func RegistrantMessage(ev Event, appURL string) (subject, body string) {
	r := ev.Registration
	var b strings.Builder
	fmt.Fprintf(&b, "Olá %s,\n\n", r.Name)

	switch ev.Kind {
	case KindConfirmed:
		subject = subjectPrefix + "Confirmação de inscrição"
		b.WriteString("A tua inscrição foi confirmada.\n")
		fmt.Fprintf(&b, "Mode: %s\nTeam: %s\n", r.Mode(), teamLabel(r))
		if appURL != "" {
			fmt.Fprintf(&b, "\nSe quiseres cancelar ou atualizar a inscrição, acede: %s\n", appURL)
		}
	case KindUpdated:
		subject = subjectPrefix + "Inscrição atualizada"
		b.WriteString("A tua inscrição foi atualizada.\n")
		fmt.Fprintf(&b, "Previous mode: %s\nNew mode: %s\nTeam: %s\n", ev.Previous, r.Mode(), teamLabel(r))
		if appURL != "" {
			fmt.Fprintf(&b, "\nSe quiseres cancelar ou voltar a atualizar a inscrição, acede: %s\n", appURL)
		}
	case KindCancelled:
		subject = subjectPrefix + "Inscrição cancelada"
		b.WriteString("A tua inscrição no Open Day foi cancelada.\n")
		if appURL != "" {
			fmt.Fprintf(&b, "\nSe mudares de ideias, podes voltar a inscrever-te em: %s\n", appURL)
		}
	}
	return subject, b.String()
}

// OrganizerMessage renders the short alert posted to the organizer chat.
func OrganizerMessage(ev Event) (subject, body string) {
	r := ev.Registration
	who := fmt.Sprintf("%s %s <%s>", r.Name, r.Surname, r.Email)
	switch ev.Kind {
	case KindConfirmed:
		return "🆕 Nova inscrição", fmt.Sprintf("%s\n%s · %s", who, r.Mode(), teamLabel(r))
	case KindUpdated:
		return "🔄 Inscrição atualizada", fmt.Sprintf("%s\n%s → %s · %s", who, ev.Previous, r.Mode(), teamLabel(r))
	default:
		return "❌ Inscrição cancelada", who
	}
}
