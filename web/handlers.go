/* handlers.go
 * Contains the route handlers. Each handler decodes the request, calls one api method and writes the response
 * Authors: Zachary Bower
 */

package web

import (
	"net/http"
	"strconv"

	"cpr-backend/api/api"

	"github.com/gin-gonic/gin"
)

const (
	userNotFound    = "User not found"
	trainerNotFound = "Trainer not found"
)

// GET /get-all
func (s *Server) getAll(c *gin.Context) {
	users, err := s.api.ListAllUsers(c.Request.Context())
	if err != nil {
		s.respondError(c, err, userNotFound)
		return
	}
	respondData(c, users)
}

// POST /save
func (s *Server) save(c *gin.Context) {
	var req SaveRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := s.api.AppendCprSession(c.Request.Context(), req.UserID, req.CprSessionInput); err != nil {
		s.respondError(c, err, userNotFound)
		return
	}
	respondMessage(c, http.StatusOK, true, "Data saved successfully")
}

// GET /get-user-data/:userId
func (s *Server) getUserData(c *gin.Context) {
	user, err := s.api.GetUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		s.respondError(c, err, userNotFound)
		return
	}
	respondData(c, user)
}

// POST /create-user
func (s *Server) createUser(c *gin.Context) {
	var req UserRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := s.api.CreateUser(c.Request.Context(), req.UserID); err != nil {
		s.respondError(c, err, userNotFound)
		return
	}
	respondMessage(c, http.StatusOK, true, "User created successfully")
}

// GET /get-last/:userId
func (s *Server) getLast(c *gin.Context) {
	sessions, err := s.api.LastNCprSessions(c.Request.Context(), c.Param("userId"), api.DefaultSessionCount)
	if err != nil {
		s.respondError(c, err, userNotFound)
		return
	}
	respondData(c, sessions)
}

// POST /create-trainer
func (s *Server) createTrainer(c *gin.Context) {
	var req TrainerRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := s.api.CreateTrainer(c.Request.Context(), req.TrainerID, req.Name); err != nil {
		s.respondError(c, err, trainerNotFound)
		return
	}
	respondMessage(c, http.StatusOK, true, "Trainer created successfully")
}

// POST /add-user
func (s *Server) addUser(c *gin.Context) {
	var req AddUserRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := s.api.AttachUserToTrainer(c.Request.Context(), req.TrainerID, req.UserID); err != nil {
		s.respondError(c, err, trainerNotFound)
		return
	}
	respondMessage(c, http.StatusOK, true, "User added to trainer successfully")
}

// GET /get-users/:trainerId
func (s *Server) getUsers(c *gin.Context) {
	ids, err := s.api.ListTrainerUsers(c.Request.Context(), c.Param("trainerId"))
	if err != nil {
		s.respondError(c, err, trainerNotFound)
		return
	}
	c.JSON(http.StatusOK, UsersResponse{Success: true, Users: ids})
}

// POST /save-game
func (s *Server) saveGame(c *gin.Context) {
	var req SaveGameRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := s.api.AppendGameResult(c.Request.Context(), req.UserID, req.GameName, req.GameScore); err != nil {
		s.respondError(c, err, userNotFound)
		return
	}
	respondMessage(c, http.StatusOK, true, "Game result saved successfully")
}

// GET /get-top-score/:userId
func (s *Server) getTopScore(c *gin.Context) {
	userID := c.Param("userId")
	score, err := s.api.TopScore(c.Request.Context(), userID)
	if err != nil {
		s.respondError(c, err, "No game results found")
		return
	}
	respondData(c, TopScoreData{UserID: userID, TopScore: score})
}

// GET /get-recent-score/:userId
func (s *Server) getRecentScore(c *gin.Context) {
	result, err := s.api.RecentScore(c.Request.Context(), c.Param("userId"))
	if err != nil {
		s.respondError(c, err, "No game results found")
		return
	}
	respondData(c, result)
}

// GET /get-top-scores?limit=N
func (s *Server) getTopScores(c *gin.Context) {
	limit := api.DefaultTopScoresLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondMessage(c, http.StatusBadRequest, false, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	entries, err := s.api.TopScoresAcrossUsers(c.Request.Context(), limit)
	if err != nil {
		s.respondError(c, err, userNotFound)
		return
	}
	respondData(c, entries)
}

// GET /healthcheck
func (s *Server) healthcheck(c *gin.Context) {
	if err := s.api.Ping(c.Request.Context()); err != nil {
		s.log.Warn("healthcheck failed", "error", err)
		respondMessage(c, http.StatusServiceUnavailable, false, "database unreachable")
		return
	}
	respondMessage(c, http.StatusOK, true, "ok")
}
