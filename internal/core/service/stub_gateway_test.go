package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/domain"
	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Stub gateway
// ---------------------------------------------------------------------------

// stubGateway is a canned-data Gateway. Every call is appended to calls (with
// the arguments that matter for assertions) and any method can be made to
// fail by name through errs.
type stubGateway struct {
	calls []string
	errs  map[string]error

	token          string
	profile        domain.Profile
	roles          []domain.Role
	challenges     []domain.Challenge
	requests       []domain.Request
	participations []domain.Participation
	settings       domain.Settings
	users          []domain.Profile
	pending        []domain.Participation
	userRequests   []domain.Request
}

func newStubGateway() *stubGateway {
	return &stubGateway{
		token:    "backend-token",
		profile:  domain.Profile{ID: "u1", Name: "Maria", Role: "Técnico", Hours: 16, Points: 100},
		settings: domain.Settings{PointsPerHour: 10},
		errs:     make(map[string]error),
	}
}

func (g *stubGateway) record(call string) error {
	g.calls = append(g.calls, call)
	for name, err := range g.errs {
		if err != nil && len(call) >= len(name) && call[:len(name)] == name {
			return err
		}
	}
	return nil
}

func (g *stubGateway) Login(_ context.Context, email, _ string) (string, error) {
	if err := g.record("Login(" + email + ")"); err != nil {
		return "", err
	}
	return g.token, nil
}

func (g *stubGateway) Signup(_ context.Context, in ports.SignupInput) error {
	return g.record("Signup(" + in.Email + ")")
}

func (g *stubGateway) PublicRoles(context.Context) ([]domain.Role, error) {
	if err := g.record("PublicRoles"); err != nil {
		return nil, err
	}
	return g.roles, nil
}

func (g *stubGateway) AllChallenges(context.Context) ([]domain.Challenge, error) {
	if err := g.record("AllChallenges"); err != nil {
		return nil, err
	}
	return g.challenges, nil
}

func (g *stubGateway) Profile(_ context.Context, token string) (*domain.Profile, error) {
	if err := g.record("Profile(" + token + ")"); err != nil {
		return nil, err
	}
	clone := g.profile
	return &clone, nil
}

func (g *stubGateway) Requests(_ context.Context, token string) ([]domain.Request, error) {
	if err := g.record("Requests(" + token + ")"); err != nil {
		return nil, err
	}
	return g.requests, nil
}

func (g *stubGateway) CreateRequest(_ context.Context, token string, t domain.RequestType, hours float64, reason string) (*domain.Request, error) {
	if err := g.record(fmt.Sprintf("CreateRequest(%s,%v,%s)", t, hours, reason)); err != nil {
		return nil, err
	}
	created := domain.Request{ID: "req-new", Type: t, Hours: hours, Reason: reason, Status: domain.RequestPending}
	g.requests = append(g.requests, created)
	return &created, nil
}

func (g *stubGateway) ConvertPoints(_ context.Context, _ string, hours float64) (*domain.Profile, error) {
	if err := g.record(fmt.Sprintf("ConvertPoints(%v)", hours)); err != nil {
		return nil, err
	}
	clone := g.profile
	return &clone, nil
}

func (g *stubGateway) Participations(_ context.Context, _ string) ([]domain.Participation, error) {
	if err := g.record("Participations"); err != nil {
		return nil, err
	}
	return g.participations, nil
}

func (g *stubGateway) Enroll(_ context.Context, _ string, challengeID string) (*domain.Participation, error) {
	if err := g.record("Enroll(" + challengeID + ")"); err != nil {
		return nil, err
	}
	p := domain.Participation{ID: "p-new", ChallengeID: challengeID, UserID: g.profile.ID, Status: domain.ParticipationEnrolled}
	g.participations = append(g.participations, p)
	return &p, nil
}

func (g *stubGateway) SubmitProof(_ context.Context, _ string, challengeID, proofURL string) (*domain.Participation, error) {
	if err := g.record("SubmitProof(" + challengeID + "," + proofURL + ")"); err != nil {
		return nil, err
	}
	for i := range g.participations {
		if g.participations[i].ChallengeID == challengeID {
			g.participations[i].Status = domain.ParticipationSubmitted
			g.participations[i].ProofURL = proofURL
			return &g.participations[i], nil
		}
	}
	return nil, &domain.BackendError{Status: 404, Detail: "participação não encontrada"}
}

func (g *stubGateway) Settings(_ context.Context, _ string) (*domain.Settings, error) {
	if err := g.record("Settings"); err != nil {
		return nil, err
	}
	clone := g.settings
	return &clone, nil
}

func (g *stubGateway) UpdateSettings(_ context.Context, _ string, pointsPerHour int) (*domain.Settings, error) {
	if err := g.record(fmt.Sprintf("UpdateSettings(%d)", pointsPerHour)); err != nil {
		return nil, err
	}
	g.settings.PointsPerHour = pointsPerHour
	clone := g.settings
	return &clone, nil
}

func (g *stubGateway) AllRequests(_ context.Context, _ string) ([]domain.Request, error) {
	if err := g.record("AllRequests"); err != nil {
		return nil, err
	}
	return g.requests, nil
}

func (g *stubGateway) ProcessRequest(_ context.Context, _ string, requestID string, status domain.RequestStatus) error {
	return g.record(fmt.Sprintf("ProcessRequest(%s,%s)", requestID, status))
}

func (g *stubGateway) CreateChallenge(_ context.Context, _ string, in ports.CreateChallengeInput) (*domain.Challenge, error) {
	if err := g.record("CreateChallenge(" + in.Title + ")"); err != nil {
		return nil, err
	}
	c := domain.Challenge{ID: "c-new", Title: in.Title, Points: in.Points, AllowedRoles: in.AllowedRoles, AllowedUserIDs: in.AllowedUserIDs, DueAt: in.DueAt}
	g.challenges = append(g.challenges, c)
	return &c, nil
}

func (g *stubGateway) DeleteChallenge(_ context.Context, _ string, challengeID string) error {
	return g.record("DeleteChallenge(" + challengeID + ")")
}

func (g *stubGateway) PendingValidations(_ context.Context, _ string) ([]domain.Participation, error) {
	if err := g.record("PendingValidations"); err != nil {
		return nil, err
	}
	return g.pending, nil
}

func (g *stubGateway) AllParticipations(_ context.Context, _ string) ([]domain.Participation, error) {
	if err := g.record("AllParticipations"); err != nil {
		return nil, err
	}
	return g.participations, nil
}

func (g *stubGateway) ValidateParticipant(_ context.Context, _ string, participantID string, approved bool) error {
	return g.record(fmt.Sprintf("ValidateParticipant(%s,%t)", participantID, approved))
}

func (g *stubGateway) AllUsers(_ context.Context, _ string) ([]domain.Profile, error) {
	if err := g.record("AllUsers"); err != nil {
		return nil, err
	}
	return g.users, nil
}

func (g *stubGateway) UpdateUser(_ context.Context, _ string, userID string, in ports.UpdateUserInput) (*domain.Profile, error) {
	if err := g.record(fmt.Sprintf("UpdateUser(%s,%s,%s)", userID, in.Name, in.Role)); err != nil {
		return nil, err
	}
	return &domain.Profile{ID: userID, Name: in.Name, Role: in.Role, IsAdmin: in.IsAdmin}, nil
}

func (g *stubGateway) DeleteUser(_ context.Context, _ string, userID string) error {
	return g.record("DeleteUser(" + userID + ")")
}

func (g *stubGateway) ResetPassword(_ context.Context, _ string, userID, _ string) error {
	return g.record("ResetPassword(" + userID + ")")
}

func (g *stubGateway) UserRequests(_ context.Context, _ string, userID string) ([]domain.Request, error) {
	if err := g.record("UserRequests(" + userID + ")"); err != nil {
		return nil, err
	}
	return g.userRequests, nil
}

func (g *stubGateway) AdjustUserHours(_ context.Context, _ string, userID string, hours float64, reason string) error {
	return g.record(fmt.Sprintf("AdjustUserHours(%s,%v,%s)", userID, hours, reason))
}

func (g *stubGateway) AddRole(_ context.Context, _ string, name string) error {
	return g.record("AddRole(" + name + ")")
}

func (g *stubGateway) DeleteRole(_ context.Context, _ string, roleID string) error {
	return g.record("DeleteRole(" + roleID + ")")
}

// ---------------------------------------------------------------------------
// Stub session store
// ---------------------------------------------------------------------------

type stubStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func newStubStore() *stubStore {
	return &stubStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubStore) Put(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *sess
	s.sessions[sess.ID] = &clone
	return nil
}

func (s *stubStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *sess
	return &clone, nil
}

func (s *stubStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *stubStore) Purge(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func (s *stubStore) has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	return ok
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// testSetup wires the stub gateway through a real session service so the
// 401 teardown path is exercised end to end.
func testSetup() (*stubGateway, *stubStore, *SessionService, *domain.Session) {
	gw := newStubGateway()
	store := newStubStore()
	sessions := NewSessionService(gw, store, time.Hour, discardLogger)

	sess := &domain.Session{
		ID:        "sess-1",
		Token:     gw.token,
		Profile:   gw.profile,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	_ = store.Put(context.Background(), sess)
	return gw, store, sessions, sess
}
