package enroll

//go:generate mockgen -source=service.go -destination=mocks_test.go -package=enroll

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"openday/internal/apperrors"
	"openday/internal/lock"
	"openday/internal/logging"
	"openday/internal/metrics"
	"openday/internal/models"
	"openday/internal/notify"
	"openday/internal/util"
)

// Store is the ordered row store registrations live in.
type Store interface {
	// ListRegistrations returns every registration in row order.
	ListRegistrations(ctx context.Context) ([]models.Registration, error)
	// AppendRegistration adds a row at the end.
	AppendRegistration(ctx context.Context, r models.Registration) error
	// ReplaceRegistration overwrites the first row for email. found is false when there is none.
	ReplaceRegistration(ctx context.Context, email string, r models.Registration) (found bool, err error)
	// DeleteRegistration removes the first row for email. found is false when there is none.
	DeleteRegistration(ctx context.Context, email string) (found bool, err error)
}

// Notifier tells the registrant about a successful write.
type Notifier interface {
	Notify(ctx context.Context, ev notify.Event) error
}

// every write takes the same key: the capacity check spans all rows
const writeLockKey = "registrations"

const DefaultTeamCapacity = 2

const (
	msgEmailRequired   = "O campo Email é obrigatório."
	msgEmailInvalid    = "O email indicado não é válido."
	msgCheckFirst      = "Verifica o email primeiro."
	msgFieldsRequired  = "Todos os campos exceto Nome da Equipa são obrigatórios."
	msgTeamRequired    = "Nome da Equipa é obrigatório para o Challenge."
	msgNotRegistered   = "Não foi encontrada nenhuma inscrição com este email."
	msgChangedMeantime = "A inscrição foi alterada entretanto. Verifica o email novamente."
	msgDeliveryWarning = "A inscrição foi registada, mas não foi possível enviar o email."
)

type Service struct {
	store    Store
	notifier Notifier
	locker   lock.Locker
	logger   *zap.Logger
	metrics  *metrics.Metrics
	capacity int
	now      func() time.Time
}

type Option func(*Service)

func WithTeamCapacity(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.capacity = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLocker(l lock.Locker) Option {
	return func(s *Service) { s.locker = l }
}

func NewService(store Store, notifier Notifier, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		store:    store,
		notifier: notifier,
		locker:   lock.NewLocal(),
		logger:   logger,
		capacity: DefaultTeamCapacity,
		now:      util.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) TeamCapacity() int { return s.capacity }

// Lookup returns the first registration whose email matches, or nil.
func (s *Service) Lookup(ctx context.Context, email string) (*models.Registration, error) {
	regs, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	return find(regs, email), nil
}

// Check starts an interaction: NotStarted -> EmailChecked.
func (s *Service) Check(ctx context.Context, email string) (*Session, error) {
	email, err := validEmail(email)
	if err != nil {
		return nil, err
	}
	existing, err := s.Lookup(ctx, email)
	if err != nil {
		return nil, err
	}
	return &Session{State: EmailChecked, Email: email, Existing: existing}, nil
}

// Confirm creates the registration for an email Check found unregistered.
func (s *Service) Confirm(ctx context.Context, sess *Session, in ConfirmInput) (*Outcome, error) {
	if sess == nil || sess.State != EmailChecked {
		return nil, apperrors.Validation(msgCheckFirst)
	}
	if sess.Existing != nil {
		return nil, alreadyRegistered(*sess.Existing)
	}

	name := strings.TrimSpace(in.Name)
	surname := strings.TrimSpace(in.Surname)
	if name == "" || surname == "" {
		return nil, apperrors.Validation(msgFieldsRequired)
	}
	team := models.TeamPlaceholder
	if in.Challenge {
		team = models.NormalizeTeamName(in.TeamName)
		if team == "" || team == models.TeamPlaceholder {
			return nil, apperrors.Validation(msgTeamRequired)
		}
	}

	reg := models.Registration{
		Name:      name,
		Surname:   surname,
		Email:     sess.Email,
		Challenge: in.Challenge,
		TeamName:  team,
	}

	err := s.withWriteLock(ctx, func(regs []models.Registration) error {
		if prev := find(regs, reg.Email); prev != nil {
			return alreadyRegistered(*prev)
		}
		if reg.Challenge {
			if err := s.checkCapacity(regs, team, ""); err != nil {
				return err
			}
		}
		reg.RegisteredAt = s.now()
		if err := s.store.AppendRegistration(ctx, reg); err != nil {
			return apperrors.Unavailable(err)
		}
		return nil
	})
	if err != nil {
		s.metrics.Registration("confirm", resultLabel(err))
		return nil, err
	}
	s.metrics.Registration("confirm", "ok")

	out := &Outcome{State: Confirmed, Registration: reg}
	s.deliver(ctx, notify.Event{Kind: notify.KindConfirmed, Registration: reg}, out)
	sess.reset()
	return out, nil
}

// Update switches an existing registration to the opposite mode.
// Every check runs before the row is touched.
func (s *Service) Update(ctx context.Context, sess *Session, in UpdateInput) (*Outcome, error) {
	if sess == nil || sess.State != EmailChecked {
		return nil, apperrors.Validation(msgCheckFirst)
	}
	if sess.Existing == nil {
		return nil, apperrors.NotFound(msgNotRegistered)
	}

	current := sess.Existing.Mode()
	next := current.Opposite()
	team := models.TeamPlaceholder
	if next.IsChallenge() {
		team = models.NormalizeTeamName(in.TeamName)
		if team == "" || team == models.TeamPlaceholder {
			return nil, apperrors.Validation(msgTeamRequired)
		}
	}

	var reg models.Registration
	err := s.withWriteLock(ctx, func(regs []models.Registration) error {
		existing := find(regs, sess.Email)
		if existing == nil {
			return apperrors.NotFound(msgNotRegistered)
		}
		if existing.Mode() != current {
			return apperrors.Conflict(msgChangedMeantime)
		}
		if next.IsChallenge() {
			if err := s.checkCapacity(regs, team, existing.Email); err != nil {
				return err
			}
		}
		reg = models.Registration{
			Name:         existing.Name,
			Surname:      existing.Surname,
			Email:        existing.Email,
			Challenge:    next.IsChallenge(),
			TeamName:     team,
			RegisteredAt: s.now(),
		}
		found, err := s.store.ReplaceRegistration(ctx, existing.Email, reg)
		if err != nil {
			return apperrors.Unavailable(err)
		}
		if !found {
			return apperrors.NotFound(msgNotRegistered)
		}
		return nil
	})
	if err != nil {
		s.metrics.Registration("update", resultLabel(err))
		return nil, err
	}
	s.metrics.Registration("update", "ok")

	out := &Outcome{State: Updated, Registration: reg, Previous: current}
	s.deliver(ctx, notify.Event{Kind: notify.KindUpdated, Registration: reg, Previous: current}, out)
	sess.reset()
	return out, nil
}

// Cancel removes the registration for email. It is independent of any session.
func (s *Service) Cancel(ctx context.Context, email string) (*Outcome, error) {
	email, err := validEmail(email)
	if err != nil {
		return nil, err
	}

	var reg models.Registration
	err = s.withWriteLock(ctx, func(regs []models.Registration) error {
		existing := find(regs, email)
		if existing == nil {
			return apperrors.NotFound(msgNotRegistered)
		}
		reg = *existing
		found, err := s.store.DeleteRegistration(ctx, existing.Email)
		if err != nil {
			return apperrors.Unavailable(err)
		}
		if !found {
			return apperrors.NotFound(msgNotRegistered)
		}
		return nil
	})
	if err != nil {
		s.metrics.Registration("cancel", resultLabel(err))
		return nil, err
	}
	s.metrics.Registration("cancel", "ok")

	out := &Outcome{State: Cancelled, Registration: reg}
	s.deliver(ctx, notify.Event{Kind: notify.KindCancelled, Registration: reg}, out)
	return out, nil
}

// Roster groups challenge participants by team for the organizer dashboard.
func (s *Service) Roster(ctx context.Context) (*Roster, error) {
	regs, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, r := range regs {
		if key := r.TeamKey(); key != "" {
			counts[key]++
		}
	}
	out := &Roster{Capacity: s.capacity, Registrations: regs}
	for team, n := range counts {
		out.Teams = append(out.Teams, models.TeamCount{TeamName: team, Members: n})
	}
	sort.Slice(out.Teams, func(i, j int) bool { return out.Teams[i].TeamName < out.Teams[j].TeamName })
	for _, tc := range out.Teams {
		if tc.Members > s.capacity {
			out.OverCapacity = append(out.OverCapacity, tc)
		}
	}
	return out, nil
}

func (s *Service) list(ctx context.Context) ([]models.Registration, error) {
	regs, err := s.store.ListRegistrations(ctx)
	if err != nil {
		logging.FromContext(ctx, s.logger).Error("store read failed", zap.Error(err))
		return nil, apperrors.Unavailable(err)
	}
	return regs, nil
}

// withWriteLock runs fn against a fresh read of the store while holding the write lock.
func (s *Service) withWriteLock(ctx context.Context, fn func(regs []models.Registration) error) error {
	unlock, err := s.locker.Lock(ctx, writeLockKey)
	if err != nil {
		return apperrors.Unavailable(fmt.Errorf("acquire write lock: %w", err))
	}
	defer unlock()

	regs, err := s.list(ctx)
	if err != nil {
		return err
	}
	if err := fn(regs); err != nil {
		if apperrors.Is(err, apperrors.TypeUnavailable) {
			logging.FromContext(ctx, s.logger).Error("store write failed", zap.Error(err))
		}
		return err
	}
	return nil
}

func (s *Service) checkCapacity(regs []models.Registration, team, exceptEmail string) error {
	if n := teamMembers(regs, team, exceptEmail); n >= s.capacity {
		return apperrors.Validation(fmt.Sprintf("A equipa %s já tem %d membros (máximo %d).", team, n, s.capacity))
	}
	return nil
}

// deliver sends the notification after the write. Failure leaves the write in place.
func (s *Service) deliver(ctx context.Context, ev notify.Event, out *Outcome) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, ev); err != nil {
		logging.FromContext(ctx, s.logger).Warn("notification failed",
			zap.String("kind", string(ev.Kind)),
			zap.String("email", ev.Registration.Email),
			zap.Error(err),
		)
		out.Warning = msgDeliveryWarning
	}
}

// validEmail trims the address and requires it to be non-empty and contain an @.
func validEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", apperrors.Validation(msgEmailRequired)
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", apperrors.Validation(msgEmailInvalid)
	}
	return email, nil
}

func alreadyRegistered(r models.Registration) error {
	return apperrors.Conflict(fmt.Sprintf("O email já está registado para %s.", r.Mode()))
}

// find returns the first registration for email; later duplicates are unreachable.
func find(regs []models.Registration, email string) *models.Registration {
	key := models.NormalizeEmail(email)
	if key == "" {
		return nil
	}
	for i := range regs {
		if models.NormalizeEmail(regs[i].Email) == key {
			r := regs[i]
			return &r
		}
	}
	return nil
}

func teamMembers(regs []models.Registration, team, exceptEmail string) int {
	key := models.NormalizeTeamName(team)
	except := models.NormalizeEmail(exceptEmail)
	n := 0
	for _, r := range regs {
		if r.TeamKey() != key {
			continue
		}
		if except != "" && models.NormalizeEmail(r.Email) == except {
			continue
		}
		n++
	}
	return n
}

func resultLabel(err error) string {
	return strings.ToLower(apperrors.TypeOf(err))
}
