package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/domain"
	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/ports"
)

func newAdminFixture() (*stubGateway, *stubStore, *AdminService, *domain.Session) {
	gw, store, sessions, sess := testSetup()
	sess.Profile.IsAdmin = true
	gw.roles = []domain.Role{
		{ID: "r1", Name: "Técnico"},
		{ID: "r2", Name: "Analista"},
	}
	return gw, store, NewAdminService(gw, sessions, discardLogger), sess
}

func lastCall(gw *stubGateway) string {
	if len(gw.calls) == 0 {
		return ""
	}
	return gw.calls[len(gw.calls)-1]
}

func TestAdminService_ProcessRequest_ApproveThenReload(t *testing.T) {
	gw, _, svc, sess := newAdminFixture()
	gw.requests = []domain.Request{
		{ID: "42", Type: domain.RequestTypeLeave, Hours: 8, Status: domain.RequestPending},
	}

	list, err := svc.ProcessRequest(context.Background(), sess, "42", domain.RequestApproved)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}

	want := []string{"ProcessRequest(42,aprovado)", "AllRequests"}
	if len(gw.calls) != len(want) || gw.calls[0] != want[0] || gw.calls[1] != want[1] {
		t.Fatalf("mutation must be followed by a full reload, got %v", gw.calls)
	}
	if len(list) != 1 {
		t.Errorf("reloaded list not returned: %v", list)
	}
}

func TestAdminService_ProcessRequest_RejectsUnknownStatus(t *testing.T) {
	gw, _, svc, sess := newAdminFixture()

	_, err := svc.ProcessRequest(context.Background(), sess, "42", domain.RequestPending)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(gw.calls) != 0 {
		t.Errorf("invalid verdict must not reach the backend, got %v", gw.calls)
	}
}

func TestAdminService_ValidateParticipant_ReloadsPending(t *testing.T) {
	gw, _, svc, sess := newAdminFixture()

	_, err := svc.ValidateParticipant(context.Background(), sess, "p9", false)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if gw.calls[0] != "ValidateParticipant(p9,false)" || lastCall(gw) != "PendingValidations" {
		t.Errorf("unexpected call sequence: %v", gw.calls)
	}
}

func TestAdminService_UpdateSettings(t *testing.T) {
	_, _, svc, sess := newAdminFixture()

	settings, err := svc.UpdateSettings(context.Background(), sess, 15)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if settings.PointsPerHour != 15 {
		t.Errorf("rate = %d, want 15", settings.PointsPerHour)
	}

	if _, err := svc.UpdateSettings(context.Background(), sess, 0); err == nil {
		t.Error("zero rate must be rejected")
	}
	if _, err := svc.UpdateSettings(context.Background(), sess, -3); err == nil {
		t.Error("negative rate must be rejected")
	}
}

func TestAdminService_CreateChallenge_ResolvesRoles(t *testing.T) {
	gw, _, svc, sess := newAdminFixture()

	_, err := svc.CreateChallenge(context.Background(), sess, ports.CreateChallengeInput{
		Title:        "Treinamento",
		Points:       50,
		AllowedRoles: []string{"Técnico"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = svc.CreateChallenge(context.Background(), sess, ports.CreateChallengeInput{
		Title:        "Hackathon",
		AllowedRoles: []string{"Estagiário"},
	})
	if err == nil {
		t.Fatal("unknown allowed role must be rejected")
	}
	for _, call := range gw.calls {
		if call == "CreateChallenge(Hackathon)" {
			t.Fatal("rejected challenge must not reach the backend")
		}
	}
}

func TestAdminService_CreateChallenge_Validation(t *testing.T) {
	_, _, svc, sess := newAdminFixture()

	if _, err := svc.CreateChallenge(context.Background(), sess, ports.CreateChallengeInput{Title: "  "}); err == nil {
		t.Error("blank title must be rejected")
	}
	if _, err := svc.CreateChallenge(context.Background(), sess, ports.CreateChallengeInput{Title: "x", Points: -1}); err == nil {
		t.Error("negative points must be rejected")
	}
}

func TestAdminService_UpdateUser_RejectsUnknownRole(t *testing.T) {
	gw, _, svc, sess := newAdminFixture()

	_, err := svc.UpdateUser(context.Background(), sess, "u7", ports.UpdateUserInput{
		Name: "João",
		Role: "Estagiário",
	})
	if !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
	for _, call := range gw.calls {
		if strings.HasPrefix(call, "UpdateUser") {
			t.Fatal("rejected edit must not reach the backend")
		}
	}
}

func TestAdminService_UpdateUser_Success(t *testing.T) {
	gw, _, svc, sess := newAdminFixture()
	gw.users = []domain.Profile{{ID: "u7", Name: "João", Role: "Analista"}}

	list, err := svc.UpdateUser(context.Background(), sess, "u7", ports.UpdateUserInput{
		Name:    "João",
		Role:    "Analista",
		IsAdmin: true,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if lastCall(gw) != "AllUsers" {
		t.Errorf("edit must be followed by a user list reload, got %v", gw.calls)
	}
	if len(list) != 1 {
		t.Errorf("reloaded list not returned: %v", list)
	}
}

func TestAdminService_ResetPassword_EnforcesMinimumLength(t *testing.T) {
	gw, _, svc, sess := newAdminFixture()

	if err := svc.ResetPassword(context.Background(), sess, "u7", "abc"); err == nil {
		t.Fatal("short password must be rejected")
	}
	if len(gw.calls) != 0 {
		t.Errorf("rejected reset must not reach the backend, got %v", gw.calls)
	}

	if err := svc.ResetPassword(context.Background(), sess, "u7", "abc123"); err != nil {
		t.Fatalf("six characters must be accepted: %v", err)
	}
}

func TestAdminService_AdjustUserHours_NormalizesDays(t *testing.T) {
	gw, _, svc, sess := newAdminFixture()

	_, err := svc.AdjustUserHours(context.Background(), sess, "u7", ports.AdjustHoursInput{
		Amount: 2,
		Unit:   domain.UnitDays,
		Reason: "banco de horas inicial",
	})
	if err != nil {
		t.Fatalf("adjust failed: %v", err)
	}

	if gw.calls[0] != "AdjustUserHours(u7,16,banco de horas inicial)" {
		t.Errorf("2 days must be sent as 16 hours, got %q", gw.calls[0])
	}
	if lastCall(gw) != "UserRequests(u7)" {
		t.Errorf("adjustment must reload the user's history, got %v", gw.calls)
	}
}

func TestAdminService_AdjustUserHours_NegativeDeduction(t *testing.T) {
	gw, _, svc, sess := newAdminFixture()

	_, err := svc.AdjustUserHours(context.Background(), sess, "u7", ports.AdjustHoursInput{
		Amount: -4,
		Unit:   domain.UnitHours,
		Reason: "correção de lançamento",
	})
	if err != nil {
		t.Fatalf("deduction failed: %v", err)
	}
	if gw.calls[0] != "AdjustUserHours(u7,-4,correção de lançamento)" {
		t.Errorf("negative amounts must pass through, got %q", gw.calls[0])
	}
}

func TestAdminService_AdjustUserHours_Validation(t *testing.T) {
	gw, _, svc, sess := newAdminFixture()

	cases := []ports.AdjustHoursInput{
		{Amount: 0, Unit: domain.UnitHours, Reason: "x"},
		{Amount: 4, Unit: domain.UnitHours, Reason: "   "},
		{Amount: 1.1, Unit: domain.UnitHours, Reason: "x"},
	}
	for i, in := range cases {
		if _, err := svc.AdjustUserHours(context.Background(), sess, "u7", in); err == nil {
			t.Errorf("case %d must be rejected", i)
		}
	}
	if len(gw.calls) != 0 {
		t.Errorf("rejected adjustments must not reach the backend, got %v", gw.calls)
	}
}

func TestAdminService_Roles_AddAndDelete(t *testing.T) {
	gw, _, svc, sess := newAdminFixture()

	if _, err := svc.AddRole(context.Background(), sess, "  Gerente  "); err != nil {
		t.Fatalf("add role failed: %v", err)
	}
	if gw.calls[0] != "AddRole(Gerente)" {
		t.Errorf("role name must be trimmed, got %q", gw.calls[0])
	}

	if _, err := svc.AddRole(context.Background(), sess, "   "); err == nil {
		t.Error("blank role name must be rejected")
	}

	gw.calls = nil
	if _, err := svc.DeleteRole(context.Background(), sess, "r2"); err != nil {
		t.Fatalf("delete role failed: %v", err)
	}
	if gw.calls[0] != "DeleteRole(r2)" || lastCall(gw) != "PublicRoles" {
		t.Errorf("unexpected call sequence: %v", gw.calls)
	}
}

func TestAdminService_AuthRejectionTearsDownSession(t *testing.T) {
	gw, store, svc, sess := newAdminFixture()
	gw.errs["AllRequests"] = &domain.BackendError{Status: 403}

	_, err := svc.Requests(context.Background(), sess)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if store.has(sess.ID) {
		t.Error("session must be invalidated after a backend 403")
	}
}
