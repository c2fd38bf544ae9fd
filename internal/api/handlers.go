package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/quizup/internal/auth"
	"github.com/abhisek/quizup/internal/quiz"
	"github.com/abhisek/quizup/internal/store"
)

func (h *handler) me(c *gin.Context) {
	u, err := h.svc.Me(c.Request.Context(), auth.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *handler) createQuiz(c *gin.Context) {
	var in quiz.CreateQuizInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	created, err := h.svc.CreateQuiz(c.Request.Context(), auth.UserID(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handler) generateQuiz(c *gin.Context) {
	var in quiz.GenerateQuizInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	created, err := h.svc.GenerateQuiz(c.Request.Context(), auth.UserID(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type practiceRequest struct {
	Subject string `json:"subject" binding:"required"`
	Topic   string `json:"topic" binding:"required"`
}

func (h *handler) practiceQuiz(c *gin.Context) {
	var in practiceRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	created, err := h.svc.GeneratePracticeQuiz(c.Request.Context(), auth.UserID(c), in.Subject, in.Topic)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"quizId": created.Quiz.ID, "usedAI": created.UsedAI})
}

func (h *handler) getQuiz(c *gin.Context) {
	q, err := h.svc.QuizFor(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

type assignRequest struct {
	StudentIDs []string `json:"studentIds" binding:"required"`
}

func (h *handler) assignQuiz(c *gin.Context) {
	var in assignRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.svc.AssignQuiz(c.Request.Context(), auth.UserID(c), c.Param("id"), in.StudentIDs); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quiz assigned successfully", "studentIds": in.StudentIDs})
}

func (h *handler) quizResults(c *gin.Context) {
	report, err := h.svc.QuizResults(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *handler) submit(c *gin.Context) {
	var in quiz.SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.svc.Submit(c.Request.Context(), auth.UserID(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *handler) myResults(c *gin.Context) {
	list, err := h.svc.MyResults(c.Request.Context(), auth.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handler) result(c *gin.Context) {
	res, err := h.svc.Result(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *handler) assignedQuizzes(c *gin.Context) {
	list, err := h.svc.AssignedQuizzes(c.Request.Context(), auth.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handler) dashboard(c *gin.Context) {
	d, err := h.svc.TeacherDashboard(c.Request.Context(), auth.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *handler) students(c *gin.Context) {
	list, err := h.svc.Students(c.Request.Context(), auth.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type linkRequest struct {
	StudentID string `json:"studentId" binding:"required"`
}

func (h *handler) linkStudent(c *gin.Context) {
	var in linkRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.svc.LinkStudent(c.Request.Context(), auth.UserID(c), in.StudentID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) leaderboard(c *gin.Context) {
	board, err := h.svc.Leaderboard(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *handler) users(c *gin.Context) {
	list, err := h.svc.Users(c.Request.Context(), auth.UserID(c), store.Role(c.Query("role")))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type roleRequest struct {
	Role store.Role `json:"role" binding:"required"`
}

func (h *handler) updateRole(c *gin.Context) {
	var in roleRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.svc.UpdateRole(c.Request.Context(), auth.UserID(c), c.Param("id"), in.Role); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "role": in.Role})
}
