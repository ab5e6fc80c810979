package service

import (
	"context"

	"github.com/rs/zerolog"

	"crm/internal/auth"
	"crm/internal/metrics"
	"crm/internal/repository"
	"crm/internal/result"
)

// MsgInvalidCredentials is the only failure a caller sees for a bad login,
// whether the username or the password was wrong.
const MsgInvalidCredentials = "invalid username or password"

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) result.Result[LoginResponse]
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
	log        zerolog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService, log zerolog.Logger) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		log:        log.With().Str("component", "auth_service").Logger(),
	}
}

// Login checks the credentials and issues a token.
func (s *authService) Login(ctx context.Context, username, password string) result.Result[LoginResponse] {
	log := s.log.With().Str("username", username).Logger()
	log.Info().Msg("login requested")

	found := s.users.GetByUsername(ctx, username)
	if found.IsFailure() {
		log.Warn().Str("reason", found.Error()).Msg("login failed: user not found")
		return loginFailed(MsgInvalidCredentials)
	}

	user := found.Value()
	if !auth.VerifyPassword(password, user.PasswordHash) {
		log.Warn().Msg("login failed: wrong password")
		return loginFailed(MsgInvalidCredentials)
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		log.Error().Err(err).Msg("login failed: token not issued")
		return loginFailed("could not issue token")
	}

	metrics.LoginAttemptsTotal.WithLabelValues(metrics.Outcome(true)).Inc()
	log.Info().Str("role", user.Role).Msg("login succeeded")
	return result.Success(LoginResponse{
		Token:    token,
		Username: user.Username,
		Role:     user.Role,
	})
}

func loginFailed(msg string) result.Result[LoginResponse] {
	metrics.LoginAttemptsTotal.WithLabelValues(metrics.Outcome(false)).Inc()
	return result.Failure[LoginResponse](msg)
}
