package server

import (
	"fmt"
	"os"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = 32 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{Rate: time.Minute, Limit: 10})
	authLimiter := limitRateByClientIP(store)

	apirouter := router.Group("/api/v1")
	apirouter.GET("/health", s.handleHealth())
	apirouter.POST("/auth/register", authLimiter, s.handleRegister())
	apirouter.POST("/auth/login", authLimiter, s.handleLogin())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/auth/me", s.handleShowProfile())
	authorized.POST("/auth/logout", s.handleLogout())

	authorized.POST("/reports", s.handleCreateReport())
	authorized.GET("/reports", s.handleListReports())
	authorized.GET("/reports/:id", s.handleGetReport())
	authorized.PATCH("/reports/:id/status", s.handleUpdateReportStatus())
	authorized.GET("/stats/reports", s.handleReportStats())

	authorized.GET("/rewards", s.handleGetRewards())
	authorized.POST("/rewards", s.handleCreateReward())
	authorized.PUT("/rewards/:id", s.handleUpdateReward())
	authorized.POST("/rewards/:id/redeem", s.handleRedeemReward())
	authorized.GET("/rewards/redemptions", s.handleGetUserRedemptions())

	authorized.GET("/users/points", s.handleGetUserPoints())
	authorized.GET("/users", s.handleListUsers())
	authorized.PATCH("/users/:id/role", s.handleUpdateUserRole())
	authorized.PATCH("/users/:id/deactivate", s.handleDeactivateUser())

	authorized.GET("/hotspots", s.handleGetHotspots())
	authorized.GET("/hotspots/:id", s.handleGetHotspot())
}
