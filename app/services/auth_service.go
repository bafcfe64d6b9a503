package services

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/Wege0921/prodev-be-ecommerce/app/jobs"
	"github.com/Wege0921/prodev-be-ecommerce/app/models"
	"github.com/Wege0921/prodev-be-ecommerce/app/repositories"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/apperr"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/auth"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/logger"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/queue"
)

// RegisterInput is the payload for creating an account. Phone is accepted
// in local or international form and normalized before storage.
type RegisterInput struct {
	Name  string `json:"name"  validate:"required,max=255"`
	Phone string `json:"phone" validate:"required"`
	Email string `json:"email" validate:"nullable,email"`
	PIN   string `json:"pin"   validate:"required,digits=6"`
}

type LoginInput struct {
	Phone string `json:"phone" validate:"required"`
	PIN   string `json:"pin"   validate:"required,digits=6"`
}

// TokenPair is the issued access and refresh token set.
type TokenPair struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
}

type AuthService struct {
	users            *repositories.UserRepository
	dispatch         func(queue.Job) error
	tokeninfoBaseURL string // swapped out in tests
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{
		users:            users,
		dispatch:         queue.Dispatch,
		tokeninfoBaseURL: "https://oauth2.googleapis.com/tokeninfo",
	}
}

// localPhone matches the national part of an Ethiopian mobile number:
// nine digits starting with 9 or 7.
var localPhone = regexp.MustCompile(`^[97]\d{8}$`)

// NormalizePhone canonicalizes a phone number to E.164 with the +251
// country code. Accepts "0911234567", "911234567", "251911234567" and
// "+251911234567" as the same number.
func NormalizePhone(raw string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)

	switch {
	case strings.HasPrefix(cleaned, "251") && len(cleaned) == 12:
		cleaned = cleaned[3:]
	case strings.HasPrefix(cleaned, "0") && len(cleaned) == 10:
		cleaned = cleaned[1:]
	}

	if !localPhone.MatchString(cleaned) {
		return "", apperr.ValidationField("phone", "not a valid Ethiopian mobile number")
	}
	return "+251" + cleaned, nil
}

func validPIN(pin string) bool {
	if len(pin) != 6 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Register creates an account keyed by normalized phone number.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*TokenPair, error) {
	phone, err := NormalizePhone(in.Phone)
	if err != nil {
		return nil, err
	}
	if !validPIN(in.PIN) {
		return nil, apperr.ValidationField("pin", "PIN must be exactly 6 digits")
	}

	existing, err := s.users.FindByPhone(phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("an account with phone %s already exists", phone)
	}

	hash, err := auth.HashPIN(in.PIN)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:     in.Name,
		Phone:    phone,
		Email:    in.Email,
		Password: hash,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	logger.WithCtx(ctx).Info("user registered", "user_id", user.ID)
	return s.issueTokens(user)
}

// Login authenticates by phone and PIN. Wrong phone and wrong PIN produce
// the same error so the endpoint does not leak which accounts exist.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*TokenPair, error) {
	phone, err := NormalizePhone(in.Phone)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByPhone(phone)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPIN(user.Password, in.PIN) {
		return nil, apperr.ValidationField("credentials", "invalid phone or PIN")
	}
	return s.issueTokens(user)
}

// ResetPIN generates a fresh random PIN, stores its hash and queues the
// plain value for delivery over Telegram. The response never contains the
// PIN.
func (s *AuthService) ResetPIN(ctx context.Context, rawPhone string) error {
	phone, err := NormalizePhone(rawPhone)
	if err != nil {
		return err
	}
	user, err := s.users.FindByPhone(phone)
	if err != nil {
		return err
	}
	if user == nil {
		// same outcome as a real reset, so the endpoint cannot be used
		// to probe for registered numbers
		return nil
	}

	pin, err := generatePIN()
	if err != nil {
		return err
	}
	hash, err := auth.HashPIN(pin)
	if err != nil {
		return err
	}
	user.Password = hash
	if err := s.users.Update(user); err != nil {
		return err
	}

	if err := s.dispatch(&jobs.PasswordResetNotification{Phone: phone, PIN: pin}); err != nil {
		logger.WithCtx(ctx).Error("pin reset dispatch failed", "user_id", user.ID, "error", err)
	}
	return nil
}

// googleTokenInfo is the subset of Google's tokeninfo response we use.
type googleTokenInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
}

// LoginWithGoogle validates an ID token against Google's tokeninfo
// endpoint and signs the user in, linking by Google subject id first and
// by verified email second. New identities get a passwordless account.
func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (*TokenPair, error) {
	if idToken == "" {
		return nil, apperr.ValidationField("id_token", "id_token is required")
	}

	info, err := s.verifyGoogleToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByGoogleID(info.Sub)
	if err != nil {
		return nil, err
	}
	if user == nil && info.Email != "" && info.EmailVerified == "true" {
		user, err = s.users.FindSoleByEmail(info.Email)
		if err != nil {
			return nil, err
		}
		if user != nil {
			sub := info.Sub
			user.GoogleID = &sub
			if err := s.users.Update(user); err != nil {
				return nil, err
			}
		}
	}
	if user == nil {
		sub := info.Sub
		user = &models.User{
			Name:     info.Name,
			Email:    info.Email,
			Phone:    "google:" + info.Sub, // placeholder until the user adds a phone
			GoogleID: &sub,
		}
		if err := s.users.Create(user); err != nil {
			return nil, err
		}
		logger.WithCtx(ctx).Info("google account created", "user_id", user.ID)
	}
	return s.issueTokens(user)
}

func (s *AuthService) verifyGoogleToken(ctx context.Context, idToken string) (*googleTokenInfo, error) {
	endpoint := fmt.Sprintf("%s?id_token=%s", s.tokeninfoBaseURL, url.QueryEscape(idToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google tokeninfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.ValidationField("id_token", "google token is invalid or expired")
	}

	var info googleTokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("google tokeninfo: decode: %w", err)
	}
	if info.Sub == "" {
		return nil, apperr.ValidationField("id_token", "google token is missing a subject")
	}
	return &info, nil
}

func (s *AuthService) issueTokens(user *models.User) (*TokenPair, error) {
	access, err := auth.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateRefreshToken(user.ID, user.IsAdmin)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

func generatePIN() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
