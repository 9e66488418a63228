package profile

import (
	"fmt"
	"strings"

	"fixkaro/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Login authenticates by email and password. A suspended account is refused
// before the password is even checked: suspension bars the whole protected
// area, not just bad credentials.
func (s *DefaultProfileService) Login(email, password string) (*AuthResponse, error) {
	rec, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		utils.GetLogger().Error("Login: failed to fetch profile", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if rec == nil {
		return nil, ErrInvalidCredentials
	}
	if rec.Suspended() {
		return nil, ErrSuspended
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(rec)
}

// RevokeToken ends the session carried by the token.
func (s *DefaultProfileService) RevokeToken(token string) error {
	return utils.RevokeAuthToken(token)
}
