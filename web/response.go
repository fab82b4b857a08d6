/* response.go
 * Contains the helpers that write JSON responses and map api errors to status codes
 * Authors: Zachary Bower
 */

package web

import (
	"errors"
	"net/http"

	"cpr-backend/api/shared"

	"github.com/gin-gonic/gin"
)

const genericErrorMessage = "An error occurred"

func respondMessage(c *gin.Context, status int, success bool, message string) {
	c.JSON(status, MessageResponse{Success: success, Message: message})
}

func respondData(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, DataResponse{Success: true, Data: data})
}

// respondError maps err to a status code and writes a {success:false, message} body.
// Duplicates are reported as 200 with success false. notFound is the message used for a 404
func (s *Server) respondError(c *gin.Context, err error, notFound string) {
	switch {
	case errors.Is(err, shared.ErrInvalidArgument):
		respondMessage(c, http.StatusBadRequest, false, err.Error())
	case errors.Is(err, shared.ErrNotFound):
		respondMessage(c, http.StatusNotFound, false, notFound)
	case errors.Is(err, shared.ErrAlreadyExists):
		respondMessage(c, http.StatusOK, false, "User already exists")
	default:
		s.log.Error("request failed", "path", c.FullPath(), "request_id", c.GetString(requestIDKey), "error", err)

		var remoteErr *shared.RemoteError
		if errors.As(err, &remoteErr) {
			respondMessage(c, http.StatusInternalServerError, false, "Error creating user")
			return
		}
		respondMessage(c, http.StatusInternalServerError, false, genericErrorMessage)
	}
}

// bindJSON decodes the body into req. Writes a 400 and returns false if it could not
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondMessage(c, http.StatusBadRequest, false, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
