/* router.go
 * Contains NewRouter, which builds the gin engine with the middleware and routes. Kept separate from Start so the
 * routes can be exercised with httptest
 * Authors: Zachary Bower
 */

package web

import (
	"cpr-backend/logger"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine for cfg
// Preconditions: Receives Config with a non nil API
// Postconditions: Returns the engine with CORS, request id, request logging and recovery applied to every route
func NewRouter(cfg Config) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.NewNop()
	}
	s := &Server{api: cfg.API, log: log}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(CORS(cfg.CORSOrigins))

	r.GET("/get-all", s.getAll)
	r.POST("/save", s.save)
	r.GET("/get-user-data/:userId", s.getUserData)
	r.POST("/create-user", s.createUser)
	r.GET("/get-last/:userId", s.getLast)
	r.POST("/create-trainer", s.createTrainer)
	r.POST("/add-user", s.addUser)
	r.GET("/get-users/:trainerId", s.getUsers)

	r.POST("/save-game", s.saveGame)
	r.GET("/get-top-score/:userId", s.getTopScore)
	r.GET("/get-recent-score/:userId", s.getRecentScore)
	r.GET("/get-top-scores", s.getTopScores)

	r.GET("/healthcheck", s.healthcheck)

	return r
}
