/* provisioner.go
 * Contains the client used to tell the provisioning service that a user has been attached to a trainer
 * Authors: Zachary Bower
 */

package external

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"cpr-backend/api/shared"
	"cpr-backend/logger"

	"golang.org/x/time/rate"
)

const notifyOp = "notify user created"

// Provisioner posts user creation events to the sibling provisioning service
type Provisioner struct {
	BaseURL string
	Client  *http.Client
	Limiter *rate.Limiter
	Log     *logger.Logger
}

// NewProvisioner creates a Provisioner
// Preconditions: Receives the provisioning service base url, a request timeout, the number of requests per second
// allowed and a logger. A ratePerSec <= 0 disables limiting
// Postconditions: Returns pointer to the Provisioner
func NewProvisioner(baseURL string, timeout time.Duration, ratePerSec float64, log *logger.Logger) *Provisioner {
	limit := rate.Inf
	burst := 1
	if ratePerSec > 0 {
		limit = rate.Limit(ratePerSec)
		burst = int(ratePerSec)
		if burst < 1 {
			burst = 1
		}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Provisioner{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
		Limiter: rate.NewLimiter(limit, burst),
		Log:     log,
	}
}

// NotifyUserCreated tells the provisioning service about a new user.
// Preconditions: Receives context and the user id
// Postconditions: Returns nil if the service replied 2xx with success true. Any other outcome returns a
// *shared.RemoteError. Status is set when a response was received
func (p *Provisioner) NotifyUserCreated(ctx context.Context, userID string) error {
	endpoint, err := url.JoinPath(p.BaseURL, "create-user")
	if err != nil {
		return &shared.RemoteError{Op: notifyOp, Err: fmt.Errorf("invalid base url %q: %w", p.BaseURL, err)}
	}

	if err := p.Limiter.Wait(ctx); err != nil {
		return &shared.RemoteError{Op: notifyOp, Err: fmt.Errorf("rate limiter: %w", err)}
	}

	payload, err := json.Marshal(CreateUserRequest{UserID: userID})
	if err != nil {
		return &shared.RemoteError{Op: notifyOp, Err: err}
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return &shared.RemoteError{Op: notifyOp, Err: err}
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	start := time.Now()
	response, err := p.Client.Do(request)
	if err != nil {
		p.Log.Warn("provisioning request failed", "userId", userID, "url", endpoint, "error", err)
		return &shared.RemoteError{Op: notifyOp, Err: err}
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return &shared.RemoteError{Op: notifyOp, Status: response.StatusCode, Err: fmt.Errorf("error reading response body: %w", err)}
	}

	p.Log.Debug("provisioning response", "userId", userID, "status", response.StatusCode, "duration", time.Since(start))

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return &shared.RemoteError{Op: notifyOp, Status: response.StatusCode, Err: fmt.Errorf("unexpected status code %d", response.StatusCode)}
	}

	var reply CreateUserResponse
	if err := json.Unmarshal(body, &reply); err != nil {
		return &shared.RemoteError{Op: notifyOp, Status: response.StatusCode, Err: fmt.Errorf("error decoding response: %w", err)}
	}

	if !reply.Success {
		msg := reply.Message
		if msg == "" {
			msg = "provisioning service reported failure"
		}
		return &shared.RemoteError{Op: notifyOp, Status: response.StatusCode, Err: errors.New(msg)}
	}

	return nil
}
