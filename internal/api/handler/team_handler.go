package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolshots/photo-intake/internal/core/ports"
)

// TeamHandler manages schools.
type TeamHandler struct {
	service ports.TeamService
}

func NewTeamHandler(service ports.TeamService) *TeamHandler {
	return &TeamHandler{service: service}
}

// List handles GET /teams.
//
// @Summary      List teams with their users
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  teamListResponse
// @Router       /teams [get]
func (h *TeamHandler) List(c echo.Context) error {
	teams, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, teamListResponse{Teams: teams, Total: len(teams)})
}

// Create handles POST /teams. The school code is generated.
//
// @Summary      Create a team
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTeamRequest  true  "Team"
// @Success      201   {object}  teamResponse
// @Failure      400   {object}  errorResponse
// @Router       /teams [post]
func (h *TeamHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req createTeamRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	team, err := h.service.Create(c.Request().Context(), p, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, teamResponse{Success: true, Team: team, Message: "team created"})
}

// Update handles PUT /teams/:id.
//
// @Summary      Update a team
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Team ID"
// @Param        body  body      updateTeamRequest  true  "Fields to change"
// @Success      200   {object}  teamResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /teams/{id} [put]
func (h *TeamHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req updateTeamRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	team, err := h.service.Update(c.Request().Context(), id, ports.UpdateTeamInput{Name: req.Name, IsActive: req.IsActive})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, teamResponse{Success: true, Team: team, Message: "team updated"})
}

// Delete handles DELETE /teams/:id.
//
// @Summary      Delete a team
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Team ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /teams/{id} [delete]
func (h *TeamHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "team deleted"})
}
