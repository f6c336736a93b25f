package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"approval-matrix-service/internal/middleware"
	"approval-matrix-service/internal/models"
	"approval-matrix-service/internal/services"
)

// MatrixHandler exposes the approval matrix over HTTP
type MatrixHandler struct {
	service *services.ApprovalMatrixService
}

// NewMatrixHandler creates a new MatrixHandler
func NewMatrixHandler(service *services.ApprovalMatrixService) *MatrixHandler {
	return &MatrixHandler{service: service}
}

// RegisterRoutes mounts the matrix endpoints on an /api/v1 group
func (h *MatrixHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/approval-types", h.ListApprovalTypes)
	api.GET("/approval-types/:type", h.GetApprovalType)
	api.GET("/roles", h.ListRoles)
	api.GET("/roles/:role", h.GetRole)

	approvals := api.Group("/approvals")
	{
		approvals.POST("/requirements", h.GetRequirements)
		approvals.POST("/authority", h.CheckAuthority)
		approvals.POST("/next-approver", h.GetNextApprover)
		approvals.POST("/progress", h.GetProgress)
		approvals.POST("/evaluate", h.EvaluateDecision)
	}
}

// ApprovalTypeSummary is one row of the approval type listing
type ApprovalTypeSummary struct {
	Type        models.ApprovalType `json:"type"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Thresholds  int                 `json:"thresholds"`
}

// RequirementsRequest asks for the requirement of one transaction
type RequirementsRequest struct {
	ApprovalType models.ApprovalType `json:"approvalType" binding:"required"`
	Amount       *float64            `json:"amount" binding:"required"`
	Conditions   []models.Condition  `json:"conditions"`
	SubmittedAt  *time.Time          `json:"submittedAt"`
}

// RequirementsResponse is a requirement plus its deadline when a submission time was given
type RequirementsResponse struct {
	*models.Requirement
	DueAt   *time.Time `json:"dueAt,omitempty"`
	Overdue *bool      `json:"overdue,omitempty"`
}

// AuthorityRequest asks whether a role takes part in a transaction's workflow
type AuthorityRequest struct {
	Role         models.Role         `json:"role" binding:"required"`
	ApprovalType models.ApprovalType `json:"approvalType" binding:"required"`
	Amount       *float64            `json:"amount" binding:"required"`
}

// AuthorityResponse reports workflow membership and the role's numeric limit separately
type AuthorityResponse struct {
	Role                models.Role         `json:"role"`
	ApprovalType        models.ApprovalType `json:"approvalType"`
	Amount              float64             `json:"amount"`
	HasAuthority        bool                `json:"hasAuthority"`
	WithinApprovalLimit bool                `json:"withinApprovalLimit"`
	CanDelegate         bool                `json:"canDelegate"`
}

// WorkflowRequest carries a transaction and its approval history
type WorkflowRequest struct {
	ApprovalType models.ApprovalType     `json:"approvalType" binding:"required"`
	Amount       *float64                `json:"amount" binding:"required"`
	Conditions   []models.Condition      `json:"conditions"`
	Approvals    []models.ApprovalRecord `json:"approvals" binding:"dive"`
}

// NextApproverResponse names the next role to act, empty once complete
type NextApproverResponse struct {
	NextApprover models.Role `json:"nextApprover"`
	IsComplete   bool        `json:"isComplete"`
}

// EvaluateRequest proposes a decision against an approval history
type EvaluateRequest struct {
	ApprovalType models.ApprovalType     `json:"approvalType" binding:"required"`
	Amount       *float64                `json:"amount" binding:"required"`
	Conditions   []models.Condition      `json:"conditions"`
	History      []models.ApprovalRecord `json:"history" binding:"dive"`
	Decision     models.Decision         `json:"decision"`
}

// ListApprovalTypes lists the configured approval types
// @Summary List approval types
// @Tags Matrix
// @Produce json
// @Success 200 {array} ApprovalTypeSummary
// @Router /approval-types [get]
func (h *MatrixHandler) ListApprovalTypes(c *gin.Context) {
	matrix := h.service.Matrix()
	summaries := make([]ApprovalTypeSummary, 0, len(matrix.ApprovalTypes()))
	for _, approvalType := range matrix.ApprovalTypes() {
		entry, err := matrix.Entry(approvalType)
		if err != nil {
			_ = c.Error(err)
			return
		}
		summaries = append(summaries, ApprovalTypeSummary{
			Type:        approvalType,
			Name:        entry.Name,
			Description: entry.Description,
			Thresholds:  len(entry.Thresholds),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  summaries,
		"total": len(summaries),
	})
}

// GetApprovalType returns the thresholds and special conditions of one type
// @Summary Get approval type matrix
// @Tags Matrix
// @Produce json
// @Param type path string true "Approval type"
// @Success 200 {object} models.MatrixEntry
// @Failure 404 {object} middleware.ErrorResponse
// @Router /approval-types/{type} [get]
func (h *MatrixHandler) GetApprovalType(c *gin.Context) {
	entry, err := h.service.Matrix().Entry(models.ApprovalType(c.Param("type")))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// ListRoles returns the role hierarchy in declaration order
// @Summary List roles
// @Tags Matrix
// @Produce json
// @Success 200 {array} models.RoleProfile
// @Router /roles [get]
func (h *MatrixHandler) ListRoles(c *gin.Context) {
	roles := h.service.Matrix().Roles()
	c.JSON(http.StatusOK, gin.H{
		"data":  roles,
		"total": len(roles),
	})
}

// GetRole returns the authority profile of one role
// @Summary Get role
// @Tags Matrix
// @Produce json
// @Param role path string true "Role name"
// @Success 200 {object} models.RoleProfile
// @Failure 404 {object} middleware.ErrorResponse
// @Router /roles/{role} [get]
func (h *MatrixHandler) GetRole(c *gin.Context) {
	role := models.Role(c.Param("role"))
	profile, ok := h.service.Matrix().Role(role)
	if !ok {
		_ = c.Error(middleware.NewNotFoundError(fmt.Sprintf("role %q not found", role)))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":        profile,
		"canDelegate": h.service.CanDelegate(role),
		"advisory":    profile.IsAdvisory(),
		"unlimited":   profile.IsUnlimited(),
	})
}

// GetRequirements resolves the approval requirement for a transaction
// @Summary Resolve approval requirement
// @Tags Approvals
// @Accept json
// @Produce json
// @Param request body RequirementsRequest true "Transaction"
// @Success 200 {object} RequirementsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /approvals/requirements [post]
func (h *MatrixHandler) GetRequirements(c *gin.Context) {
	var req RequirementsRequest
	if !bind(c, &req) {
		return
	}

	requirement, err := h.service.Requirements(req.ApprovalType, *req.Amount, req.Conditions...)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response := RequirementsResponse{Requirement: requirement}
	if req.SubmittedAt != nil {
		dueAt := requirement.DueAt(*req.SubmittedAt)
		overdue := requirement.IsOverdue(*req.SubmittedAt, time.Now())
		response.DueAt = &dueAt
		response.Overdue = &overdue
	}

	c.JSON(http.StatusOK, response)
}

// CheckAuthority reports whether a role is part of a transaction's workflow
// @Summary Check approval authority
// @Tags Approvals
// @Accept json
// @Produce json
// @Param request body AuthorityRequest true "Role and transaction"
// @Success 200 {object} AuthorityResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /approvals/authority [post]
func (h *MatrixHandler) CheckAuthority(c *gin.Context) {
	var req AuthorityRequest
	if !bind(c, &req) {
		return
	}

	hasAuthority, err := h.service.HasAuthority(req.Role, req.ApprovalType, *req.Amount)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, AuthorityResponse{
		Role:                req.Role,
		ApprovalType:        req.ApprovalType,
		Amount:              *req.Amount,
		HasAuthority:        hasAuthority,
		WithinApprovalLimit: h.service.WithinApprovalLimit(req.Role, *req.Amount),
		CanDelegate:         h.service.CanDelegate(req.Role),
	})
}

// GetNextApprover returns the most senior role still to approve
// @Summary Next approver
// @Tags Approvals
// @Accept json
// @Produce json
// @Param request body WorkflowRequest true "Transaction and history"
// @Success 200 {object} NextApproverResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /approvals/next-approver [post]
func (h *MatrixHandler) GetNextApprover(c *gin.Context) {
	var req WorkflowRequest
	if !bind(c, &req) || !validHistory(c, req.Approvals) {
		return
	}

	next, err := h.service.NextApprover(req.ApprovalType, *req.Amount, req.Approvals, req.Conditions...)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, NextApproverResponse{
		NextApprover: next,
		IsComplete:   next == "",
	})
}

// GetProgress folds approval history into progress figures
// @Summary Approval progress
// @Tags Approvals
// @Accept json
// @Produce json
// @Param request body WorkflowRequest true "Transaction and history"
// @Success 200 {object} models.Progress
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /approvals/progress [post]
func (h *MatrixHandler) GetProgress(c *gin.Context) {
	var req WorkflowRequest
	if !bind(c, &req) || !validHistory(c, req.Approvals) {
		return
	}

	progress, err := h.service.Progress(req.ApprovalType, *req.Amount, req.Approvals, req.Conditions...)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// EvaluateDecision validates a proposed decision and previews the resulting progress
// @Summary Evaluate a decision
// @Tags Approvals
// @Accept json
// @Produce json
// @Param request body EvaluateRequest true "Decision and history"
// @Success 200 {object} models.DecisionOutcome
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /approvals/evaluate [post]
func (h *MatrixHandler) EvaluateDecision(c *gin.Context) {
	var req EvaluateRequest
	if !bind(c, &req) || !validHistory(c, req.History) {
		return
	}

	outcome, err := h.service.EvaluateDecision(req.ApprovalType, *req.Amount, req.Conditions, req.History, req.Decision)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// --- Helper Methods ---

func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		_ = c.Error(middleware.NewBadRequestError("invalid request body", map[string]interface{}{
			"reason": err.Error(),
		}))
		return false
	}
	return true
}

func validHistory(c *gin.Context, records []models.ApprovalRecord) bool {
	for i, record := range records {
		if !record.Status.IsValid() {
			_ = c.Error(middleware.NewBadRequestError("invalid approval status", map[string]interface{}{
				"index":  i,
				"status": string(record.Status),
			}))
			return false
		}
	}
	return true
}
