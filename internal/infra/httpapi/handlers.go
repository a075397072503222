package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fardannozami/ecoplay/internal/app/usecase"
	"github.com/fardannozami/ecoplay/internal/domain"
)

type handler struct {
	svc Services
}

type signInRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type adminSignInRequest struct {
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at,omitempty"`
	Admin     bool         `json:"admin"`
	User      *domain.User `json:"user,omitempty"`
}

type wateringRequest struct {
	PhotoRef string `json:"photo_ref"`
	Note     string `json:"note"`
}

type quizAttemptRequest struct {
	Answers []int `json:"answers"`
}

type activityRequest struct {
	Type     string `json:"type"`
	Note     string `json:"note"`
	PhotoRef string `json:"photo_ref"`
}

type redeemRequest struct {
	RewardName string `json:"reward_name" binding:"required"`
}

type verifyRequest struct {
	FinalAward *int `json:"final_award" binding:"required"`
}

// bind decodes the JSON body, answering 400 on failure.
func bind(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, http.StatusBadRequest, 40000, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// public strips the credential before a user leaves the process.
func public(u domain.User) domain.User {
	u.PasswordHash = ""
	return u
}

func publicOutcome(out domain.Outcome) domain.Outcome {
	out.User = public(out.User)
	return out
}

func newSessionResponse(sess domain.Session, u *domain.User) sessionResponse {
	resp := sessionResponse{Token: sess.Token, Admin: sess.Admin}
	if !sess.ExpiresAt.IsZero() {
		resp.ExpiresAt = sess.ExpiresAt.UTC().Format(time.RFC3339)
	}
	if u != nil {
		pu := public(*u)
		resp.User = &pu
	}
	return resp
}

func (h *handler) signUp(c *gin.Context) {
	var req usecase.SignUpInput
	if !bind(c, &req) {
		return
	}
	u, err := h.svc.Auth.SignUp(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, 0, "success", public(u))
}

func (h *handler) signIn(c *gin.Context) {
	var req signInRequest
	if !bind(c, &req) {
		return
	}
	sess, u, err := h.svc.Auth.SignIn(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	success(c, newSessionResponse(sess, &u))
}

func (h *handler) signInAdmin(c *gin.Context) {
	var req adminSignInRequest
	if !bind(c, &req) {
		return
	}
	sess, err := h.svc.Auth.SignInAdmin(req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	success(c, newSessionResponse(sess, nil))
}

func (h *handler) signOut(c *gin.Context) {
	h.svc.Auth.SignOut(currentSession(c).Token)
	success(c, nil)
}

func (h *handler) me(c *gin.Context) {
	p, err := h.svc.Profile.Execute(c.Request.Context(), currentSession(c))
	if err != nil {
		writeError(c, err)
		return
	}
	p.User = public(p.User)
	success(c, p)
}

func (h *handler) submitWatering(c *gin.Context) {
	var req wateringRequest
	if !bind(c, &req) {
		return
	}
	out, err := h.svc.Watering.Execute(c.Request.Context(), currentSession(c), req.PhotoRef, req.Note)
	if err != nil {
		writeError(c, err)
		return
	}
	success(c, publicOutcome(out))
}

func (h *handler) submitQuizAttempt(c *gin.Context) {
	var req quizAttemptRequest
	if !bind(c, &req) {
		return
	}
	out, err := h.svc.Quiz.Execute(c.Request.Context(), currentSession(c), c.Param("id"), req.Answers)
	if err != nil {
		writeError(c, err)
		return
	}
	success(c, publicOutcome(out))
}

func (h *handler) submitActivity(c *gin.Context) {
	var req activityRequest
	if !bind(c, &req) {
		return
	}
	out, err := h.svc.Activity.Execute(c.Request.Context(), currentSession(c), req.Type, req.Note, req.PhotoRef)
	if err != nil {
		writeError(c, err)
		return
	}
	success(c, publicOutcome(out))
}

func (h *handler) redeem(c *gin.Context) {
	var req redeemRequest
	if !bind(c, &req) {
		return
	}
	reward, ok := domain.FindReward(req.RewardName)
	if !ok {
		writeError(c, domain.Invalid("reward_name", "unknown reward"))
		return
	}
	out, err := h.svc.Redeem.Execute(c.Request.Context(), currentSession(c), reward.Name, reward.Cost)
	if err != nil {
		writeError(c, err)
		return
	}
	success(c, publicOutcome(out))
}

func (h *handler) joinEvent(c *gin.Context) {
	out, err := h.svc.JoinEvent.Execute(c.Request.Context(), currentSession(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	success(c, publicOutcome(out))
}

func (h *handler) listRewards(c *gin.Context) {
	success(c, h.svc.Catalog.Rewards())
}

func (h *handler) listQuizzes(c *gin.Context) {
	quizzes, err := h.svc.Catalog.Quizzes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	success(c, quizzes)
}

func (h *handler) listEvents(c *gin.Context) {
	events, err := h.svc.Catalog.Events(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	success(c, events)
}

func (h *handler) leaderboard(c *gin.Context) {
	entries, err := h.svc.Leaderboard.Entries(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	success(c, entries)
}

func (h *handler) createQuiz(c *gin.Context) {
	var req usecase.QuizInput
	if !bind(c, &req) {
		return
	}
	q, err := h.svc.Admin.CreateQuiz(c.Request.Context(), currentSession(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, 0, "success", q)
}

func (h *handler) deleteQuiz(c *gin.Context) {
	if err := h.svc.Admin.DeleteQuiz(c.Request.Context(), currentSession(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	success(c, nil)
}

func (h *handler) createEvent(c *gin.Context) {
	var req usecase.EventInput
	if !bind(c, &req) {
		return
	}
	e, err := h.svc.Admin.CreateEvent(c.Request.Context(), currentSession(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, 0, "success", e)
}

func (h *handler) verifySubmission(c *gin.Context) {
	var req verifyRequest
	if !bind(c, &req) {
		return
	}
	out, err := h.svc.Admin.VerifySubmission(c.Request.Context(), currentSession(c), c.Param("id"), *req.FinalAward)
	if err != nil {
		writeError(c, err)
		return
	}
	success(c, publicOutcome(out))
}
