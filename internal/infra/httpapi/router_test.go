package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"github.com/fardannozami/ecoplay/internal/app/usecase"
	"github.com/fardannozami/ecoplay/internal/infra/httpapi"
	"github.com/fardannozami/ecoplay/internal/infra/memory"
	"github.com/fardannozami/ecoplay/internal/session"
	"github.com/fardannozami/ecoplay/internal/store"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newRouter(t *testing.T, perMinute int) http.Handler {
	t.Helper()

	logger := zaptest.NewLogger(t)
	st := store.New(memory.NewCollectionBackend(), logger)
	require.NoError(t, st.Init(context.Background()))

	d := usecase.Deps{Store: st, Log: logger, Location: time.UTC}
	svc := httpapi.Services{
		Auth:        usecase.NewAuthUsecase(d, session.NewRegistry(time.Hour), "s3cret").WithHashCost(bcrypt.MinCost),
		Watering:    usecase.NewSubmitWateringUsecase(d),
		Quiz:        usecase.NewSubmitQuizAttemptUsecase(d),
		Activity:    usecase.NewSubmitActivityUsecase(d),
		Redeem:      usecase.NewRedeemRewardUsecase(d),
		JoinEvent:   usecase.NewJoinEventUsecase(d),
		Admin:       usecase.NewAdminUsecase(d),
		Leaderboard: usecase.NewGetLeaderboardUsecase(d),
		Profile:     usecase.NewGetProfileUsecase(d),
		Catalog:     usecase.NewCatalogUsecase(d),
	}
	return httpapi.NewRouter(httpapi.Options{RateLimitPerMinute: perMinute}, svc, logger)
}

func do(t *testing.T, h http.Handler, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func signUpAndIn(t *testing.T, h http.Handler, username string) string {
	t.Helper()

	status, env := do(t, h, http.MethodPost, "/auth/signup", "", map[string]string{
		"full_name":        "Test " + username,
		"username":         username,
		"email":            username + "@example.com",
		"password":         "secret1",
		"confirm_password": "secret1",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	require.NotContains(t, string(env.Data), "password_hash")

	status, env = do(t, h, http.MethodPost, "/auth/signin", "", map[string]string{
		"login":    username,
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, status, env.Message)

	var sess struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sess))
	require.NotEmpty(t, sess.Token)
	return sess.Token
}

func adminToken(t *testing.T, h http.Handler) string {
	t.Helper()

	status, env := do(t, h, http.MethodPost, "/auth/admin", "", map[string]string{"password": "s3cret"})
	require.Equal(t, http.StatusOK, status)
	var sess struct {
		Token string `json:"token"`
		Admin bool   `json:"admin"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sess))
	require.True(t, sess.Admin)
	return sess.Token
}

func TestHealth(t *testing.T) {
	h := newRouter(t, 100)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestWateringFlow(t *testing.T) {
	h := newRouter(t, 100)
	token := signUpAndIn(t, h, "alice")

	status, env := do(t, h, http.MethodPost, "/watering", token, map[string]string{"photo_ref": "upload/1.jpg", "note": "basil"})
	require.Equal(t, http.StatusOK, status, env.Message)
	require.Equal(t, 0, env.Code)

	var out struct {
		PointsAwarded int `json:"points_awarded"`
		User          struct {
			Points         int `json:"points"`
			WateringStreak int `json:"watering_streak"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.Equal(t, 15, out.PointsAwarded)
	require.Equal(t, 15, out.User.Points)
	require.Equal(t, 1, out.User.WateringStreak)

	status, env = do(t, h, http.MethodPost, "/watering", token, map[string]string{"photo_ref": "upload/2.jpg"})
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, 40901, env.Code)

	status, env = do(t, h, http.MethodGet, "/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NotContains(t, string(env.Data), "password_hash")

	var profile struct {
		Streak         int  `json:"streak"`
		WateredToday   bool `json:"watered_today"`
		LedgerBalanced bool `json:"ledger_balanced"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	require.Equal(t, 1, profile.Streak)
	require.True(t, profile.WateredToday)
	require.True(t, profile.LedgerBalanced)
}

func TestQuizAttempt(t *testing.T) {
	h := newRouter(t, 100)
	token := signUpAndIn(t, h, "alice")

	status, env := do(t, h, http.MethodPost, "/quizzes/"+store.DemoQuizID+"/attempts", token, map[string][]int{"answers": {0, 3, 0, 1, 1}})
	require.Equal(t, http.StatusOK, status, env.Message)
	var out struct {
		PointsAwarded int `json:"points_awarded"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.Equal(t, 25, out.PointsAwarded)

	status, env = do(t, h, http.MethodPost, "/quizzes/nope/attempts", token, map[string][]int{"answers": {0}})
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, 40402, env.Code)
}

func TestAuthRequired(t *testing.T) {
	h := newRouter(t, 100)

	status, env := do(t, h, http.MethodGet, "/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, 40102, env.Code)

	status, env = do(t, h, http.MethodGet, "/me", "not-a-session", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, 40103, env.Code)

	status, env = do(t, h, http.MethodPost, "/auth/signin", "", map[string]string{"login": "ghost", "password": "whatever"})
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, 40101, env.Code)
}

func TestSignOut(t *testing.T) {
	h := newRouter(t, 100)
	token := signUpAndIn(t, h, "alice")

	status, _ := do(t, h, http.MethodPost, "/auth/signout", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = do(t, h, http.MethodGet, "/me", token, nil)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestAdminEventsAndJoin(t *testing.T) {
	h := newRouter(t, 100)
	user := signUpAndIn(t, h, "alice")

	event := map[string]string{"title": "Beach Cleanup", "date": "2026-04-22T08:00:00Z"}
	status, env := do(t, h, http.MethodPost, "/admin/events", user, event)
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, 40301, env.Code)

	admin := adminToken(t, h)
	status, env = do(t, h, http.MethodPost, "/admin/events", admin, event)
	require.Equal(t, http.StatusCreated, status, env.Message)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	status, _ = do(t, h, http.MethodPost, "/events/"+created.ID+"/join", user, nil)
	require.Equal(t, http.StatusOK, status)

	status, env = do(t, h, http.MethodPost, "/events/"+created.ID+"/join", user, nil)
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, 40902, env.Code)

	status, env = do(t, h, http.MethodGet, "/events", "", nil)
	require.Equal(t, http.StatusOK, status)
	var events []struct {
		Participants []string `json:"participants"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &events))
	require.Len(t, events, 1)
	require.Len(t, events[0].Participants, 1)
}

func TestAdminQuizLifecycle(t *testing.T) {
	h := newRouter(t, 100)
	admin := adminToken(t, h)

	quiz := map[string]interface{}{
		"title": "Recycling 101",
		"questions": []map[string]interface{}{
			{"prompt": "Glass is recyclable?", "options": []string{"Yes", "No"}, "correct": 0},
		},
	}
	status, env := do(t, h, http.MethodPost, "/admin/quizzes", admin, quiz)
	require.Equal(t, http.StatusCreated, status, env.Message)
	var created struct {
		ID        string `json:"id"`
		Questions []struct {
			Points int `json:"points"`
		} `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.Equal(t, 10, created.Questions[0].Points)

	bad := map[string]interface{}{
		"title":     "Broken",
		"questions": []map[string]interface{}{{"prompt": "?", "options": []string{"only one"}, "correct": 0}},
	}
	status, env = do(t, h, http.MethodPost, "/admin/quizzes", admin, bad)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, 40001, env.Code)

	status, _ = do(t, h, http.MethodDelete, "/admin/quizzes/"+created.ID, admin, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = do(t, h, http.MethodDelete, "/admin/quizzes/"+created.ID, admin, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestActivityVerification(t *testing.T) {
	h := newRouter(t, 100)
	user := signUpAndIn(t, h, "alice")
	admin := adminToken(t, h)

	status, env := do(t, h, http.MethodPost, "/activities", user, map[string]string{"type": "planting", "photo_ref": "upload/3.jpg"})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, 40003, env.Code)

	status, env = do(t, h, http.MethodPost, "/activities", user, map[string]string{"type": "planting", "note": "Planted a mango tree", "photo_ref": "upload/3.jpg"})
	require.Equal(t, http.StatusOK, status, env.Message)
	var out struct {
		User struct {
			Submissions []string `json:"submissions"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.Len(t, out.User.Submissions, 1)

	status, env = do(t, h, http.MethodPost, "/admin/submissions/"+out.User.Submissions[0]+"/verify", admin, map[string]int{"final_award": 30})
	require.Equal(t, http.StatusOK, status, env.Message)
	var verified struct {
		PointsAwarded int `json:"points_awarded"`
		User          struct {
			Points int `json:"points"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &verified))
	require.Equal(t, 20, verified.PointsAwarded)
	require.Equal(t, 30, verified.User.Points)
}

func TestRedemptions(t *testing.T) {
	h := newRouter(t, 100)
	token := signUpAndIn(t, h, "alice")

	status, env := do(t, h, http.MethodPost, "/redemptions", token, map[string]string{"reward_name": "Golden Yacht"})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, 40001, env.Code)

	status, env = do(t, h, http.MethodPost, "/redemptions", token, map[string]string{"reward_name": "Digital Plant Care Guide"})
	require.Equal(t, http.StatusUnprocessableEntity, status)
	require.Equal(t, 42201, env.Code)

	status, env = do(t, h, http.MethodGet, "/rewards", "", nil)
	require.Equal(t, http.StatusOK, status)
	var rewards []struct {
		Name string `json:"name"`
		Cost int    `json:"cost"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rewards))
	require.Len(t, rewards, 9)
	require.Equal(t, 50, rewards[0].Cost)
}

func TestLeaderboardRoute(t *testing.T) {
	h := newRouter(t, 100)
	token := signUpAndIn(t, h, "alice")
	signUpAndIn(t, h, "bob")

	status, _ := do(t, h, http.MethodPost, "/watering", token, map[string]string{"photo_ref": "upload/1.jpg"})
	require.Equal(t, http.StatusOK, status)

	status, env := do(t, h, http.MethodGet, "/leaderboard", "", nil)
	require.Equal(t, http.StatusOK, status)
	var entries []struct {
		Rank     int    `json:"rank"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	require.Len(t, entries, 2)
	require.Equal(t, "alice", entries[0].Username)
	require.Equal(t, 1, entries[0].Rank)
}

func TestRateLimit(t *testing.T) {
	h := newRouter(t, 2) // burst of one

	status, _ := do(t, h, http.MethodGet, "/rewards", "", nil)
	require.Equal(t, http.StatusOK, status)

	status, env := do(t, h, http.MethodGet, "/rewards", "", nil)
	require.Equal(t, http.StatusTooManyRequests, status)
	require.Equal(t, 42901, env.Code)

	// Health checks are not limited
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
