// Package httpapi is the JSON front-end over the activity services.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fardannozami/ecoplay/internal/app/usecase"
)

type Options struct {
	AllowedOrigins     []string
	RateLimitPerMinute int
}

type Services struct {
	Auth        *usecase.AuthUsecase
	Watering    *usecase.SubmitWateringUsecase
	Quiz        *usecase.SubmitQuizAttemptUsecase
	Activity    *usecase.SubmitActivityUsecase
	Redeem      *usecase.RedeemRewardUsecase
	JoinEvent   *usecase.JoinEventUsecase
	Admin       *usecase.AdminUsecase
	Leaderboard *usecase.GetLeaderboardUsecase
	Profile     *usecase.GetProfileUsecase
	Catalog     *usecase.CatalogUsecase
}

// NewRouter wires middleware and routes.
func NewRouter(opts Options, svc Services, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(recovery(log))
	r.Use(requestLogger(log))

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(opts.AllowedOrigins) == 0 || (len(opts.AllowedOrigins) == 1 && opts.AllowedOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = opts.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	h := &handler{svc: svc}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/")
	api.Use(rateLimit(opts.RateLimitPerMinute))

	api.POST("/auth/signup", h.signUp)
	api.POST("/auth/signin", h.signIn)
	api.POST("/auth/admin", h.signInAdmin)
	api.GET("/rewards", h.listRewards)
	api.GET("/quizzes", h.listQuizzes)
	api.GET("/events", h.listEvents)
	api.GET("/leaderboard", h.leaderboard)

	authed := api.Group("/")
	authed.Use(sessionRequired(svc.Auth))
	authed.POST("/auth/signout", h.signOut)
	authed.GET("/me", h.me)
	authed.POST("/watering", h.submitWatering)
	authed.POST("/quizzes/:id/attempts", h.submitQuizAttempt)
	authed.POST("/activities", h.submitActivity)
	authed.POST("/redemptions", h.redeem)
	authed.POST("/events/:id/join", h.joinEvent)

	admin := authed.Group("/admin")
	admin.Use(adminRequired())
	admin.POST("/quizzes", h.createQuiz)
	admin.DELETE("/quizzes/:id", h.deleteQuiz)
	admin.POST("/events", h.createEvent)
	admin.POST("/submissions/:id/verify", h.verifySubmission)

	return r
}
