/* models.go
 * Contains the server configuration and the request / response bodies for the HTTP routes. Responses keep the
 * {success, message|data|users} shape the React client already reads
 * Authors: Zachary Bower
 */

package web

import (
	"cpr-backend/api/api"
	"cpr-backend/api/shared"
	"cpr-backend/logger"
)

// Config holds the configuration for the web server
type Config struct {
	Addr        string
	API         *api.API
	Log         *logger.Logger
	CORSOrigins []string
}

// Server holds the dependencies the route handlers need
type Server struct {
	api *api.API
	log *logger.Logger
}

// SaveRequest is the body of POST /save. The session fields sit next to userId at the top level
type SaveRequest struct {
	UserID string `json:"userId" binding:"required"`
	shared.CprSessionInput
}

// UserRequest is the body of POST /create-user
type UserRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// TrainerRequest is the body of POST /create-trainer
type TrainerRequest struct {
	TrainerID string `json:"trainerId" binding:"required"`
	Name      string `json:"name"`
}

// AddUserRequest is the body of POST /add-user
type AddUserRequest struct {
	TrainerID string `json:"trainerId" binding:"required"`
	UserID    string `json:"userId" binding:"required"`
}

// SaveGameRequest is the body of POST /save-game
type SaveGameRequest struct {
	UserID string `json:"userId" binding:"required"`
	shared.GameResultInput
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type UsersResponse struct {
	Success bool     `json:"success"`
	Users   []string `json:"users"`
}

// TopScoreData is the data field of GET /get-top-score/:userId
type TopScoreData struct {
	UserID   string  `json:"userId"`
	TopScore float64 `json:"topScore"`
}
