package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/localnerve/authorizer-go"
	"github.com/localnerve/pcnodetree/internal/config"
	"github.com/localnerve/pcnodetree/internal/utils"
	"go.uber.org/zap"
)

// ErrSessionInvalid is returned when the Authorizer rejects a session
var ErrSessionInvalid = errors.New("session is not valid")

var (
	authMu     sync.Mutex
	authClient *authorizer.AuthorizerClient
)

// IsAuthorizerInitialized returns true if the Authorizer client is initialized
func IsAuthorizerInitialized() bool {
	authMu.Lock()
	defer authMu.Unlock()
	return authClient != nil
}

// InitAuthorizer creates the Authorizer client once. A failed attempt is
// retried by the next caller.
func InitAuthorizer(ctx context.Context, cfg *config.Config, requestProtocol, requestHost string, log *zap.Logger) error {
	authMu.Lock()
	defer authMu.Unlock()

	if authClient != nil {
		return nil
	}

	if err := utils.PingAuthorizer(ctx, cfg.AuthzURL); err != nil {
		return fmt.Errorf("authorizer ping failed: %w", err)
	}

	redirectURL := fmt.Sprintf("%s://%s", requestProtocol, requestHost)
	client, err := authorizer.NewAuthorizerClient(cfg.AuthzClientID, cfg.AuthzURL, redirectURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create authorizer client: %w", err)
	}

	if log != nil {
		log.Info("authorizer initialized",
			zap.String("authorizer_url", cfg.AuthzURL),
			zap.String("client_id", cfg.AuthzClientID),
			zap.String("redirect_url", redirectURL))
	}
	authClient = client
	return nil
}

// ValidateSession validates a session cookie for the given roles and returns the user
func ValidateSession(cookie string, roles []string) (*authorizer.User, error) {
	authMu.Lock()
	client := authClient
	authMu.Unlock()

	if client == nil {
		return nil, fmt.Errorf("authorizer client not initialized")
	}

	rolesPtrs := make([]*string, len(roles))
	for i := range roles {
		rolesPtrs[i] = &roles[i]
	}

	res, err := client.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: cookie,
		Roles:  rolesPtrs,
	})
	if err != nil {
		return nil, fmt.Errorf("session validation failed: %w", err)
	}
	if res == nil || !res.IsValid {
		return nil, ErrSessionInvalid
	}
	return res.User, nil
}
