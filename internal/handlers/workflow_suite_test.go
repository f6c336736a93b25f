package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"approval-matrix-service/internal/models"
)

// WorkflowTestSuite drives one purchase order through its whole approval chain
type WorkflowTestSuite struct {
	suite.Suite
	router  *gin.Engine
	history []gin.H
	clock   time.Time
}

func (s *WorkflowTestSuite) SetupTest() {
	s.router = setupTestRouter(s.T())
	s.history = nil
	s.clock = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
}

func (s *WorkflowTestSuite) request(extra gin.H) gin.H {
	body := gin.H{
		"approvalType": "purchaseOrders",
		"amount":       800_000_000,
	}
	for k, v := range extra {
		body[k] = v
	}
	return body
}

func (s *WorkflowTestSuite) decide(role models.Role, status models.DecisionStatus) (int, models.DecisionOutcome) {
	s.clock = s.clock.Add(time.Hour)
	w := performRequest(s.router, http.MethodPost, "/api/v1/approvals/evaluate", s.request(gin.H{
		"history":  s.history,
		"decision": gin.H{"role": role, "status": status, "timestamp": s.clock},
	}))

	var outcome models.DecisionOutcome
	if w.Code == http.StatusOK {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &outcome))
		s.history = append(s.history, gin.H{
			"role":      outcome.Record.Role,
			"status":    outcome.Record.Status,
			"timestamp": outcome.Record.Timestamp,
		})
	}
	return w.Code, outcome
}

func (s *WorkflowTestSuite) nextApprover() models.Role {
	w := performRequest(s.router, http.MethodPost, "/api/v1/approvals/next-approver", s.request(gin.H{
		"approvals": s.history,
	}))
	s.Require().Equal(http.StatusOK, w.Code)

	var response NextApproverResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response.NextApprover
}

func (s *WorkflowTestSuite) requiredRoles() []models.Role {
	w := performRequest(s.router, http.MethodPost, "/api/v1/approvals/requirements", s.request(nil))
	s.Require().Equal(http.StatusOK, w.Code)

	var response RequirementsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response.RequiredRoles
}

func (s *WorkflowTestSuite) TestApproveInSeniorityOrder() {
	required := s.requiredRoles()
	s.Require().NotEmpty(required)

	for i := range required {
		next := s.nextApprover()
		s.Require().NotEmpty(next, "step %d", i)

		code, outcome := s.decide(next, models.StatusApproved)
		s.Require().Equal(http.StatusOK, code)
		s.Equal(i+1, outcome.Progress.ApprovedCount)
	}

	s.Empty(s.nextApprover())

	w := performRequest(s.router, http.MethodPost, "/api/v1/approvals/progress", s.request(gin.H{
		"approvals": s.history,
	}))
	s.Require().Equal(http.StatusOK, w.Code)

	var progress models.Progress
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &progress))
	s.True(progress.IsComplete)
	s.Equal(100, progress.Percentage)
	s.Equal(models.ProgressComplete, progress.State)
}

func (s *WorkflowTestSuite) TestRejectionBlocksUntilReapproved() {
	first := s.nextApprover()

	code, outcome := s.decide(first, models.StatusRejected)
	s.Require().Equal(http.StatusOK, code)
	s.True(outcome.Progress.IsBlocked)
	s.Equal([]models.Role{first}, outcome.Progress.RejectedBy)
	s.Equal(first, outcome.NextApprover)

	code, outcome = s.decide(first, models.StatusApproved)
	s.Require().Equal(http.StatusOK, code)
	s.False(outcome.Progress.IsBlocked)
	s.NotEqual(first, outcome.NextApprover)

	code, _ = s.decide(first, models.StatusApproved)
	s.Equal(http.StatusConflict, code)
}

func TestWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(WorkflowTestSuite))
}
