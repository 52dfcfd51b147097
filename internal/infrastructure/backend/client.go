// Package backend implements the typed Gateway over the remote hour-bank
// API. It owns the wire contract (paths, payload shapes, the bearer token
// header) and nothing else: no business logic, no retries, no caching.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Victorhugosouza42/portal-banco-horas/internal/api/metrics"
	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/domain"
	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/ports"
)

const defaultTimeout = 30 * time.Second

// Client is the HTTP implementation of ports.Gateway.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient creates a Client for the given backend base URL. A zero timeout
// falls back to the transport default.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

var _ ports.Gateway = (*Client)(nil)

// do issues one backend call: JSON body in, JSON body out, bearer token
// attached when present. Non-2xx responses become *domain.BackendError with
// the backend's detail field when it sent one.
func (c *Client) do(ctx context.Context, op, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.GatewayCallDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GatewayCallsTotal.WithLabelValues(op, "error").Inc()
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.GatewayCallsTotal.WithLabelValues(op, "rejected").Inc()
		be := &domain.BackendError{Status: resp.StatusCode, Detail: decodeDetail(resp.Body)}
		c.logger.Warn().Str("operation", op).Int("status", resp.StatusCode).Str("detail", be.Detail).Msg("backend rejected call")
		return be
	}
	metrics.GatewayCallsTotal.WithLabelValues(op, "ok").Inc()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// decodeDetail extracts the backend's free-text detail field. Bodies that
// are not the expected envelope yield an empty detail, never an error.
func decodeDetail(r io.Reader) string {
	var envelope struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 8192)).Decode(&envelope); err != nil {
		return ""
	}
	if envelope.Detail != "" {
		// The backend occasionally prefixes database exceptions.
		return strings.TrimPrefix(envelope.Detail, "Exception: ")
	}
	return envelope.Error
}

// --- Public ---

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	payload := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, "login", http.MethodPost, "/login", "", payload, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *Client) Signup(ctx context.Context, in ports.SignupInput) error {
	payload := map[string]string{
		"name":     in.Name,
		"role":     in.Role,
		"email":    in.Email,
		"password": in.Password,
	}
	return c.do(ctx, "signup", http.MethodPost, "/signup", "", payload, nil)
}

func (c *Client) PublicRoles(ctx context.Context) ([]domain.Role, error) {
	var roles []domain.Role
	if err := c.do(ctx, "public_roles", http.MethodGet, "/roles", "", nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func (c *Client) AllChallenges(ctx context.Context) ([]domain.Challenge, error) {
	var wire []challengeWire
	if err := c.do(ctx, "all_challenges", http.MethodGet, "/challenges", "", nil, &wire); err != nil {
		return nil, err
	}
	return challengesFromWire(wire), nil
}

// --- Current user ---

func (c *Client) Profile(ctx context.Context, token string) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.do(ctx, "profile", http.MethodGet, "/me", token, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Requests(ctx context.Context, token string) ([]domain.Request, error) {
	var wire []requestWire
	if err := c.do(ctx, "requests", http.MethodGet, "/me/requests", token, nil, &wire); err != nil {
		return nil, err
	}
	return requestsFromWire(wire), nil
}

func (c *Client) CreateRequest(ctx context.Context, token string, t domain.RequestType, hours float64, reason string) (*domain.Request, error) {
	payload := map[string]any{"type": t, "hours": hours, "reason": reason}
	var wire requestWire
	if err := c.do(ctx, "create_request", http.MethodPost, "/me/requests", token, payload, &wire); err != nil {
		return nil, err
	}
	req := wire.toDomain()
	return &req, nil
}

func (c *Client) ConvertPoints(ctx context.Context, token string, hours float64) (*domain.Profile, error) {
	var p domain.Profile
	payload := map[string]any{"hours": hours}
	if err := c.do(ctx, "convert_points", http.MethodPost, "/me/convert", token, payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Participations(ctx context.Context, token string) ([]domain.Participation, error) {
	var wire []participationWire
	if err := c.do(ctx, "participations", http.MethodGet, "/me/participations", token, nil, &wire); err != nil {
		return nil, err
	}
	return participationsFromWire(wire), nil
}

func (c *Client) Enroll(ctx context.Context, token, challengeID string) (*domain.Participation, error) {
	var wire participationWire
	path := "/me/challenges/" + challengeID + "/enroll"
	if err := c.do(ctx, "enroll", http.MethodPost, path, token, nil, &wire); err != nil {
		return nil, err
	}
	part := wire.toDomain()
	return &part, nil
}

func (c *Client) SubmitProof(ctx context.Context, token, challengeID, proofURL string) (*domain.Participation, error) {
	var wire participationWire
	path := "/me/challenges/" + challengeID + "/proof"
	payload := map[string]string{"proof_url": proofURL}
	if err := c.do(ctx, "submit_proof", http.MethodPost, path, token, payload, &wire); err != nil {
		return nil, err
	}
	part := wire.toDomain()
	return &part, nil
}

// --- Admin ---

func (c *Client) Settings(ctx context.Context, token string) (*domain.Settings, error) {
	var s domain.Settings
	if err := c.do(ctx, "settings", http.MethodGet, "/admin/settings", token, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) UpdateSettings(ctx context.Context, token string, pointsPerHour int) (*domain.Settings, error) {
	var s domain.Settings
	payload := map[string]int{"points_per_hour": pointsPerHour}
	if err := c.do(ctx, "update_settings", http.MethodPut, "/admin/settings", token, payload, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) AllRequests(ctx context.Context, token string) ([]domain.Request, error) {
	var wire []requestWire
	if err := c.do(ctx, "all_requests", http.MethodGet, "/admin/requests", token, nil, &wire); err != nil {
		return nil, err
	}
	return requestsFromWire(wire), nil
}

func (c *Client) ProcessRequest(ctx context.Context, token, requestID string, status domain.RequestStatus) error {
	path := "/admin/requests/" + requestID + "/process"
	payload := map[string]domain.RequestStatus{"status": status}
	return c.do(ctx, "process_request", http.MethodPost, path, token, payload, nil)
}

func (c *Client) CreateChallenge(ctx context.Context, token string, in ports.CreateChallengeInput) (*domain.Challenge, error) {
	payload := map[string]any{
		"title":            in.Title,
		"description":      in.Description,
		"points":           in.Points,
		"allowed_roles":    emptyIfNil(in.AllowedRoles),
		"allowed_user_ids": emptyIfNil(in.AllowedUserIDs),
		"due_at":           in.DueAt,
	}
	var wire challengeWire
	if err := c.do(ctx, "create_challenge", http.MethodPost, "/admin/challenges", token, payload, &wire); err != nil {
		return nil, err
	}
	ch := wire.toDomain()
	return &ch, nil
}

func (c *Client) DeleteChallenge(ctx context.Context, token, challengeID string) error {
	return c.do(ctx, "delete_challenge", http.MethodDelete, "/admin/challenges/"+challengeID, token, nil, nil)
}

func (c *Client) PendingValidations(ctx context.Context, token string) ([]domain.Participation, error) {
	var wire []participationWire
	if err := c.do(ctx, "pending_validations", http.MethodGet, "/admin/participants/pending", token, nil, &wire); err != nil {
		return nil, err
	}
	return participationsFromWire(wire), nil
}

func (c *Client) AllParticipations(ctx context.Context, token string) ([]domain.Participation, error) {
	var wire []participationWire
	if err := c.do(ctx, "all_participations", http.MethodGet, "/admin/participants/all", token, nil, &wire); err != nil {
		return nil, err
	}
	return participationsFromWire(wire), nil
}

func (c *Client) ValidateParticipant(ctx context.Context, token, participantID string, approved bool) error {
	path := "/admin/participants/" + participantID + "/validate"
	payload := map[string]bool{"approved": approved}
	return c.do(ctx, "validate_participant", http.MethodPost, path, token, payload, nil)
}

func (c *Client) AllUsers(ctx context.Context, token string) ([]domain.Profile, error) {
	var users []domain.Profile
	if err := c.do(ctx, "all_users", http.MethodGet, "/admin/users", token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) UpdateUser(ctx context.Context, token, userID string, in ports.UpdateUserInput) (*domain.Profile, error) {
	payload := map[string]any{"name": in.Name, "role": in.Role, "is_admin": in.IsAdmin}
	var p domain.Profile
	if err := c.do(ctx, "update_user", http.MethodPut, "/admin/users/"+userID, token, payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteUser(ctx context.Context, token, userID string) error {
	return c.do(ctx, "delete_user", http.MethodDelete, "/admin/users/"+userID, token, nil, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, userID, newPassword string) error {
	path := "/admin/users/" + userID + "/reset_password"
	payload := map[string]string{"new_password": newPassword}
	return c.do(ctx, "reset_password", http.MethodPost, path, token, payload, nil)
}

func (c *Client) UserRequests(ctx context.Context, token, userID string) ([]domain.Request, error) {
	var wire []requestWire
	path := "/admin/users/" + userID + "/requests"
	if err := c.do(ctx, "user_requests", http.MethodGet, path, token, nil, &wire); err != nil {
		return nil, err
	}
	return requestsFromWire(wire), nil
}

func (c *Client) AdjustUserHours(ctx context.Context, token, userID string, hours float64, reason string) error {
	path := "/admin/users/" + userID + "/adjust"
	payload := map[string]any{"hours": hours, "reason": reason}
	return c.do(ctx, "adjust_user_hours", http.MethodPost, path, token, payload, nil)
}

func (c *Client) AddRole(ctx context.Context, token, name string) error {
	return c.do(ctx, "add_role", http.MethodPost, "/admin/roles", token, map[string]string{"name": name}, nil)
}

func (c *Client) DeleteRole(ctx context.Context, token, roleID string) error {
	return c.do(ctx, "delete_role", http.MethodDelete, "/admin/roles/"+roleID, token, nil, nil)
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
