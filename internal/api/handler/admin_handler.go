package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "github.com/Victorhugosouza42/portal-banco-horas/internal/api/middleware"
	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/domain"
	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/ports"
)

// AdminHandler serves the moderation views. Every mutation responds with
// the freshly reloaded list so the caller never patches rows locally.
type AdminHandler struct {
	admin ports.AdminService
}

func NewAdminHandler(admin ports.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// requireConfirmation is the HTTP rendition of the blocking confirmation
// dialog in front of destructive actions: the mutating call is only issued
// when the caller explicitly passed confirm=true.
func requireConfirmation(c echo.Context) error {
	if c.QueryParam("confirm") != "true" {
		return echo.NewHTTPError(http.StatusBadRequest, "destructive action requires confirm=true")
	}
	return nil
}

// --- Settings ---

// @Summary      Get conversion settings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Settings
// @Router       /admin/settings [get]
func (h *AdminHandler) Settings(c echo.Context) error {
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	settings, err := h.admin.Settings(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// @Summary      Update conversion rate
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateSettingsRequest  true  "New rate"
// @Success      200   {object}  domain.Settings
// @Router       /admin/settings [put]
func (h *AdminHandler) UpdateSettings(c echo.Context) error {
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	var req updateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	settings, err := h.admin.UpdateSettings(c.Request().Context(), sess, req.PointsPerHour)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// --- Requests ---

// @Summary      List all requests
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listResponse[requestRow]
// @Router       /admin/requests [get]
func (h *AdminHandler) Requests(c echo.Context) error {
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	requests, err := h.admin.Requests(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[requestRow]{Data: toRequestRows(requests)})
}

// ProcessRequest approves or denies a pending request and returns the
// reloaded list.
//
// @Summary      Approve or deny a request
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                 true  "Request id"
// @Param        body  body  processRequestRequest  true  "New status"
// @Success      200   {object}  listResponse[requestRow]
// @Router       /admin/requests/{id}/process [post]
func (h *AdminHandler) ProcessRequest(c echo.Context) error {
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	var req processRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	requests, err := h.admin.ProcessRequest(c.Request().Context(), sess, c.Param("id"), domain.RequestStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[requestRow]{Data: toRequestRows(requests)})
}

// --- Proof validation ---

// @Summary      List pending proof validations
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listResponse[domain.Participation]
// @Router       /admin/validations [get]
func (h *AdminHandler) PendingValidations(c echo.Context) error {
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	pending, err := h.admin.PendingValidations(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[domain.Participation]{Data: pending})
}

// @Summary      List all participations
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listResponse[domain.Participation]
// @Router       /admin/participations [get]
func (h *AdminHandler) AllParticipations(c echo.Context) error {
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	all, err := h.admin.AllParticipations(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[domain.Participation]{Data: all})
}

// ValidateParticipant accepts or rejects a submitted proof and returns the
// reloaded pending list.
//
// @Summary      Validate a submitted proof
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                      true  "Participant id"
// @Param        body  body  validateParticipantRequest  true  "Verdict"
// @Success      200   {object}  listResponse[domain.Participation]
// @Router       /admin/participations/{id}/validate [post]
func (h *AdminHandler) ValidateParticipant(c echo.Context) error {
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	var req validateParticipantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	pending, err := h.admin.ValidateParticipant(c.Request().Context(), sess, c.Param("id"), *req.Approved)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[domain.Participation]{Data: pending})
}

// --- Challenges ---

// @Summary      List challenges
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listResponse[domain.Challenge]
// @Router       /admin/challenges [get]
func (h *AdminHandler) Challenges(c echo.Context) error {
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	challenges, err := h.admin.Challenges(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[domain.Challenge]{Data: challenges})
}

// @Summary      Create a challenge
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createChallengeRequest  true  "Challenge"
// @Success      201   {object}  listResponse[domain.Challenge]
// @Router       /admin/challenges [post]
func (h *AdminHandler) CreateChallenge(c echo.Context) error {
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	var req createChallengeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	challenges, err := h.admin.CreateChallenge(c.Request().Context(), sess, ports.CreateChallengeInput{
		Title:          req.Title,
		Description:    req.Description,
		Points:         req.Points,
		AllowedRoles:   req.AllowedRoles,
		AllowedUserIDs: req.AllowedUserIDs,
		DueAt:          req.DueAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, listResponse[domain.Challenge]{Data: challenges})
}

// @Summary      Delete a challenge
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id       path   string  true  "Challenge id"
// @Param        confirm  query  string  true  "Must be true"
// @Success      200  {object}  listResponse[domain.Challenge]
// @Failure      400  {object}  errorResponse
// @Router       /admin/challenges/{id} [delete]
func (h *AdminHandler) DeleteChallenge(c echo.Context) error {
	if err := requireConfirmation(c); err != nil {
		return err
	}
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	challenges, err := h.admin.DeleteChallenge(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[domain.Challenge]{Data: challenges})
}

// --- Users ---

// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listResponse[domain.Profile]
// @Router       /admin/users [get]
func (h *AdminHandler) Users(c echo.Context) error {
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	users, err := h.admin.Users(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[domain.Profile]{Data: users})
}

// UpdateUser edits a profile. The role name is resolved against the
// current role list; unknown names are rejected.
//
// @Summary      Update a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string             true  "User id"
// @Param        body  body  updateUserRequest  true  "Profile fields"
// @Success      200   {object}  listResponse[domain.Profile]
// @Router       /admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	users, err := h.admin.UpdateUser(c.Request().Context(), sess, c.Param("id"), ports.UpdateUserInput{
		Name:    req.Name,
		Role:    req.Role,
		IsAdmin: req.IsAdmin,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[domain.Profile]{Data: users})
}

// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id       path   string  true  "User id"
// @Param        confirm  query  string  true  "Must be true"
// @Success      200  {object}  listResponse[domain.Profile]
// @Failure      400  {object}  errorResponse
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := requireConfirmation(c); err != nil {
		return err
	}
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	users, err := h.admin.DeleteUser(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[domain.Profile]{Data: users})
}

// @Summary      Reset a user's password
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string                true  "User id"
// @Param        body  body  resetPasswordRequest  true  "New password"
// @Success      204
// @Router       /admin/users/{id}/reset-password [post]
func (h *AdminHandler) ResetPassword(c echo.Context) error {
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.admin.ResetPassword(c.Request().Context(), sess, c.Param("id"), req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// @Summary      List one user's requests
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  listResponse[requestRow]
// @Router       /admin/users/{id}/requests [get]
func (h *AdminHandler) UserRequests(c echo.Context) error {
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	requests, err := h.admin.UserRequests(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[requestRow]{Data: toRequestRows(requests)})
}

// AdjustHours applies a manual balance adjustment (hours or days, negative
// to deduct) and returns the user's reloaded request history.
//
// @Summary      Adjust a user's hour balance
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true  "User id"
// @Param        body  body  adjustHoursRequest  true  "Adjustment"
// @Success      200   {object}  listResponse[requestRow]
// @Failure      422   {object}  errorResponse
// @Router       /admin/users/{id}/adjust [post]
func (h *AdminHandler) AdjustHours(c echo.Context) error {
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	var req adjustHoursRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	requests, err := h.admin.AdjustUserHours(c.Request().Context(), sess, c.Param("id"), ports.AdjustHoursInput{
		Amount: req.Amount,
		Unit:   domain.Unit(req.Unit),
		Reason: req.Reason,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[requestRow]{Data: toRequestRows(requests)})
}

// --- Roles ---

// @Summary      List roles
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listResponse[domain.Role]
// @Router       /admin/roles [get]
func (h *AdminHandler) Roles(c echo.Context) error {
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	roles, err := h.admin.Roles(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[domain.Role]{Data: roles})
}

// @Summary      Add a role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addRoleRequest  true  "Role name"
// @Success      201   {object}  listResponse[domain.Role]
// @Router       /admin/roles [post]
func (h *AdminHandler) AddRole(c echo.Context) error {
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	var req addRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	roles, err := h.admin.AddRole(c.Request().Context(), sess, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, listResponse[domain.Role]{Data: roles})
}

// @Summary      Delete a role
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id       path   string  true  "Role id"
// @Param        confirm  query  string  true  "Must be true"
// @Success      200  {object}  listResponse[domain.Role]
// @Failure      400  {object}  errorResponse
// @Router       /admin/roles/{id} [delete]
func (h *AdminHandler) DeleteRole(c echo.Context) error {
	if err := requireConfirmation(c); err != nil {
		return err
	}
	sess, err := mw.CurrentSession(c)
	if err != nil {
		return err
	}
	roles, err := h.admin.DeleteRole(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[domain.Role]{Data: roles})
}
