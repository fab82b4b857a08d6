/* models.go
 * This file contains the request and response bodies exchanged with the provisioning service
 * Authors: Zachary Bower
 */

package external

// CreateUserRequest is the body sent to {base}/create-user
type CreateUserRequest struct {
	UserID string `json:"userId"`
}

// CreateUserResponse is the body the provisioning service replies with. Message is only set on failure
type CreateUserResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
