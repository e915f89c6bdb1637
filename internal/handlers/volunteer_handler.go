package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AvaneeshKarthiks/FinWise/internal/services"
	"github.com/AvaneeshKarthiks/FinWise/internal/session"
	"github.com/AvaneeshKarthiks/FinWise/internal/utils"
)

type VolunteerHandler struct {
	BaseHandler
	volunteerService services.VolunteerService
	sessions         *session.Manager
}

func NewVolunteerHandler(volunteerService services.VolunteerService, sessions *session.Manager, logger utils.Logger) *VolunteerHandler {
	return &VolunteerHandler{
		BaseHandler:      NewBaseHandler(logger),
		volunteerService: volunteerService,
		sessions:         sessions,
	}
}

// Register creates a volunteer awaiting approval
func (h *VolunteerHandler) Register(c *gin.Context) {
	var req services.VolunteerRegisterRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.volunteerService.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "registered (pending approval)",
		"volunteer_id": result.VolunteerID,
		"approval_id":  result.ApprovalID,
	})
}

// Login signs in an approved volunteer
func (h *VolunteerHandler) Login(c *gin.Context) {
	var req services.VolunteerLoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	volunteer, err := h.volunteerService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	sess := session.Get(c)
	if err := h.sessions.Regenerate(c, sess); err != nil {
		h.handleServiceError(c, err)
		return
	}
	sess.Data.VolunteerID = volunteer.ID
	sess.Data.VolunteerName = derefString(volunteer.Name)
	if err := h.sessions.Save(c, sess); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "login successful",
		"volunteer_id": volunteer.ID,
		"name":         volunteer.Name,
	})
}

// Logout fails with 400 when no volunteer is signed in, unlike employee
// logout.
func (h *VolunteerHandler) Logout(c *gin.Context) {
	sess := session.Get(c)
	volunteerID := sess.Data.VolunteerID
	if volunteerID == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no active session found"})
		return
	}

	sess.Data.ClearVolunteer()
	if err := h.sessions.Save(c, sess); err != nil {
		h.LogError(c, err, "Failed to clear volunteer session", "volunteer_id", volunteerID)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "logout successful",
		"volunteer_id": volunteerID,
	})
}

// Decide approves or rejects a volunteer
func (h *VolunteerHandler) Decide(c *gin.Context) {
	var req services.DecisionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.volunteerService.Decide(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      fmt.Sprintf("volunteer %s", result.Status),
		"volunteer_id": result.VolunteerID,
		"approval_id":  result.ApprovalID,
	})
}

// ListPending lists volunteers whose latest approval is still pending
func (h *VolunteerHandler) ListPending(c *gin.Context) {
	resp, err := h.volunteerService.ListPending(c.Request.Context(),
		h.parseIntQuery(c, "page", 1),
		h.parseIntQuery(c, "size", 10))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListApprovals returns a volunteer's approval history, oldest first
func (h *VolunteerHandler) ListApprovals(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	approvals, err := h.volunteerService.ListApprovals(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"volunteer_id": id, "approvals": approvals})
}
