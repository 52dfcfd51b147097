package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "github.com/Victorhugosouza42/portal-banco-horas/internal/api/middleware"
	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/domain"
	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/ports"
)

// PortalHandler serves the logged-in user's views: profile, hour-bank
// requests, points conversion and the challenge board.
type PortalHandler struct {
	sessions   ports.SessionService
	requests   ports.RequestService
	challenges ports.ChallengeService
	gateway    ports.Gateway
}

func NewPortalHandler(sessions ports.SessionService, requests ports.RequestService, challenges ports.ChallengeService, gateway ports.Gateway) *PortalHandler {
	return &PortalHandler{sessions: sessions, requests: requests, challenges: challenges, gateway: gateway}
}

// Roles lists the public role names (used by the signup screen).
//
// @Summary      List public roles
// @Tags         public
// @Produce      json
// @Success      200  {object}  listResponse[domain.Role]
// @Router       /roles [get]
func (h *PortalHandler) Roles(c echo.Context) error {
	roles, err := h.gateway.PublicRoles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[domain.Role]{Data: roles})
}

// Profile re-fetches and returns the current user's profile snapshot.
//
// @Summary      Current profile
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Router       /me [get]
func (h *PortalHandler) Profile(c echo.Context) error {
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	profile, err := h.sessions.RefreshProfile(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{
		Profile:     *profile,
		BalanceDays: domain.FormatDays(profile.Hours),
	})
}

// Requests lists the current user's hour-bank requests.
//
// @Summary      List own requests
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listResponse[requestRow]
// @Router       /me/requests [get]
func (h *PortalHandler) Requests(c echo.Context) error {
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	requests, err := h.requests.List(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[requestRow]{Data: toRequestRows(requests)})
}

// SubmitRequest runs the draft workflow. Validation failures return 422
// without touching the backend; submission failures return the preserved
// draft's failure reason so the user can retry.
//
// @Summary      Submit an hour-bank request
// @Tags         me
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRequestRequest  true  "Request draft"
// @Success      201   {object}  submitRequestResponse
// @Failure      422   {object}  errorResponse
// @Router       /me/requests [post]
func (h *PortalHandler) SubmitRequest(c echo.Context) error {
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	var req createRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, draft, err := h.requests.Submit(c.Request().Context(), sess, ports.SubmitRequestInput{
		Type:   domain.RequestType(req.Type),
		Amount: req.Amount,
		Unit:   domain.Unit(req.Unit),
		Reason: req.Reason,
	})
	if err != nil {
		if draft != nil && draft.State == domain.DraftFailed {
			return echo.NewHTTPError(http.StatusBadGateway, draft.FailureReason)
		}
		return err
	}

	return c.JSON(http.StatusCreated, submitRequestResponse{
		Request:  toRequestRow(*result.Request),
		Requests: toRequestRows(result.Requests),
		Profile:  *result.Profile,
	})
}

// Convert spends points on hours at the current rate.
//
// @Summary      Convert points into hours
// @Tags         me
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      convertRequest  true  "Hours to acquire"
// @Success      200   {object}  convertResponse
// @Failure      422   {object}  errorResponse
// @Router       /me/convert [post]
func (h *PortalHandler) Convert(c echo.Context) error {
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	var req convertRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.requests.ConvertPoints(c.Request().Context(), sess, req.Hours)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, convertResponse{Profile: *result.Profile, Cost: result.Cost})
}

// Board returns the challenges visible to the user joined with their own
// participation status.
//
// @Summary      Challenge board
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listResponse[challengeCardResponse]
// @Router       /me/challenges [get]
func (h *PortalHandler) Board(c echo.Context) error {
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	cards, err := h.challenges.Board(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[challengeCardResponse]{Data: toChallengeCards(cards)})
}

// Enroll signs the user up for a challenge and returns the reloaded board.
//
// @Summary      Enroll in a challenge
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Challenge id"
// @Success      200  {object}  listResponse[challengeCardResponse]
// @Failure      409  {object}  errorResponse
// @Router       /me/challenges/{id}/enroll [post]
func (h *PortalHandler) Enroll(c echo.Context) error {
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	cards, err := h.challenges.Enroll(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[challengeCardResponse]{Data: toChallengeCards(cards)})
}

// SubmitProof attaches a proof link to an enrolled challenge and returns
// the reloaded board.
//
// @Summary      Submit challenge proof
// @Tags         me
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string        true  "Challenge id"
// @Param        body  body  proofRequest  true  "Proof link"
// @Success      200   {object}  listResponse[challengeCardResponse]
// @Failure      422   {object}  errorResponse
// @Router       /me/challenges/{id}/proof [post]
func (h *PortalHandler) SubmitProof(c echo.Context) error {
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	var req proofRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	cards, err := h.challenges.SubmitProof(c.Request().Context(), sess, c.Param("id"), req.ProofURL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[challengeCardResponse]{Data: toChallengeCards(cards)})
}
