package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noah-isme/alumnet-go-api/internal/dto"
	"github.com/noah-isme/alumnet-go-api/internal/models"
	"github.com/noah-isme/alumnet-go-api/internal/repository"
)

var (
	// ErrInvalidCredentials indicates the email/password pair did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrEnrollmentNotFound indicates no enrollment allows this signup.
	ErrEnrollmentNotFound = errors.New("enrollment record not found")
	// ErrNotVerified indicates the account has not completed OTP verification.
	ErrNotVerified = errors.New("email not verified")
	// ErrAlreadyVerified indicates the account is already verified.
	ErrAlreadyVerified = errors.New("email already verified")
	// ErrInvalidOTP indicates the one-time code is wrong or expired.
	ErrInvalidOTP = errors.New("invalid or expired verification code")
	// ErrInvalidResetToken indicates the password reset token is unknown or expired.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)

// MailDelivery defines a transport to deliver outbound email.
type MailDelivery interface {
	Send(ctx context.Context, to, subject, body string) error
}

// RequestMeta carries per-request client details recorded with audit entries.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// AuthConfig groups the tunables of the authentication flows.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	OTPTTL    time.Duration
	ResetTTL  time.Duration
}

// AuthService exposes signup, login and account verification flows.
type AuthService interface {
	Signup(ctx context.Context, req dto.SignupRequest) (dto.AuthUserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest, meta RequestMeta) (dto.LoginResponse, error)
	Logout(ctx context.Context, userID uint, meta RequestMeta)
	VerifyOTP(ctx context.Context, req dto.VerifyOTPRequest) error
	ResendOTP(ctx context.Context, req dto.ResendOTPRequest) error
	ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
}

type authService struct {
	users       repository.UserRepository
	enrollments repository.EnrollmentRepository
	recorder    ActivityRecorder
	cache       *redis.Client
	mailer      MailDelivery
	validator   *validator.Validate
	logger      zerolog.Logger
	cfg         AuthConfig
	now         func() time.Time
}

// NewAuthService constructs the authentication service.
func NewAuthService(
	users repository.UserRepository,
	enrollments repository.EnrollmentRepository,
	recorder ActivityRecorder,
	cache *redis.Client,
	mailer MailDelivery,
	validate *validator.Validate,
	cfg AuthConfig,
	logger zerolog.Logger,
) AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.OTPTTL <= 0 {
		cfg.OTPTTL = 10 * time.Minute
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = 30 * time.Minute
	}

	return &authService{
		users:       users,
		enrollments: enrollments,
		recorder:    recorder,
		cache:       cache,
		mailer:      mailer,
		validator:   validate,
		logger:      logger.With().Str("component", "auth_service").Logger(),
		cfg:         cfg,
		now:         time.Now,
	}
}

func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) (dto.AuthUserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AuthUserResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	role := strings.ToLower(strings.TrimSpace(req.Role))

	// The enrollment allow-list gates who may register; the lookup is
	// case-sensitive on the enrollment ID.
	if _, err := s.enrollments.FindByKey(ctx, req.EnrollmentID, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AuthUserResponse{}, ErrEnrollmentNotFound
		}
		return dto.AuthUserResponse{}, err
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return dto.AuthUserResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AuthUserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AuthUserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		EnrollmentID: req.EnrollmentID,
		Profile:      &models.Profile{},
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return dto.AuthUserResponse{}, err
	}

	if err := s.issueOTP(ctx, user); err != nil {
		s.logger.Warn().Err(err).Str("email", maskEmail(email)).Msg("failed to send verification code")
	}

	return dto.NewAuthUserResponse(user), nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest, meta RequestMeta) (dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LoginResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	if !user.IsVerified {
		return dto.LoginResponse{}, ErrNotVerified
	}

	token, err := s.issueToken(user)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	// The audit write is a best-effort side effect; a failure never blocks the login.
	if err := s.recorder.Record(ctx, ActivityEntry{
		Action:    models.ActionLogin,
		UserID:    user.ID,
		UserEmail: user.Email,
		UserRole:  user.Role,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}); err != nil {
		s.logger.Warn().Err(err).Uint("user_id", user.ID).Msg("login audit write failed")
	}

	return dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.cfg.TokenTTL.Seconds()),
		User:      dto.NewAuthUserResponse(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, userID uint, meta RequestMeta) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Uint("user_id", userID).Msg("logout audit skipped, user lookup failed")
		return
	}

	if err := s.recorder.Record(ctx, ActivityEntry{
		Action:    models.ActionLogout,
		UserID:    user.ID,
		UserEmail: user.Email,
		UserRole:  user.Role,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}); err != nil {
		s.logger.Warn().Err(err).Uint("user_id", user.ID).Msg("logout audit write failed")
	}
}

func (s *authService) VerifyOTP(ctx context.Context, req dto.VerifyOTPRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	stored, err := s.cache.Get(ctx, otpKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrInvalidOTP
		}
		return err
	}

	if stored != req.Code {
		return ErrInvalidOTP
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidOTP
		}
		return err
	}

	if err := s.users.SetVerified(ctx, user.ID); err != nil {
		return err
	}

	if err := s.cache.Del(ctx, otpKey(email)).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear used verification code")
	}

	return nil
}

func (s *authService) ResendOTP(ctx context.Context, req dto.ResendOTPRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Do not reveal whether the address exists.
			return nil
		}
		return err
	}

	if user.IsVerified {
		return ErrAlreadyVerified
	}

	return s.issueOTP(ctx, user)
}

func (s *authService) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Do not reveal whether the address exists.
			return nil
		}
		return err
	}

	token := uuid.NewString()
	if err := s.cache.Set(ctx, resetKey(token), user.ID, s.cfg.ResetTTL).Err(); err != nil {
		return err
	}

	body := fmt.Sprintf("Hello %s,\n\nUse this token to reset your password: %s\n\nThe token expires in %d minutes.",
		user.Name, token, int(s.cfg.ResetTTL.Minutes()))
	if err := s.mailer.Send(ctx, user.Email, "Password reset", body); err != nil {
		s.logger.Warn().Err(err).Str("email", maskEmail(user.Email)).Msg("failed to send reset email")
	}

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	stored, err := s.cache.GetDel(ctx, resetKey(req.Token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrInvalidResetToken
		}
		return err
	}

	userID, err := strconv.ParseUint(stored, 10, 64)
	if err != nil {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.UpdatePassword(ctx, uint(userID), string(hash))
}

func (s *authService) issueOTP(ctx context.Context, user models.User) error {
	code, err := generateOTP()
	if err != nil {
		return err
	}

	if err := s.cache.Set(ctx, otpKey(user.Email), code, s.cfg.OTPTTL).Err(); err != nil {
		return err
	}

	body := fmt.Sprintf("Hello %s,\n\nYour verification code is %s. It expires in %d minutes.",
		user.Name, code, int(s.cfg.OTPTTL.Minutes()))
	return s.mailer.Send(ctx, user.Email, "Verify your account", body)
}

func (s *authService) issueToken(user models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(user.ID), 10),
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func generateOTP() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func otpKey(email string) string {
	return fmt.Sprintf("auth:otp:%s", email)
}

func resetKey(token string) string {
	return fmt.Sprintf("auth:reset:%s", token)
}

func maskEmail(email string) string {
	if email == "" {
		return ""
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "***"
	}
	local := parts[0]
	if len(local) <= 2 {
		local = local[:1] + "***"
	} else {
		local = local[:1] + "***" + local[len(local)-1:]
	}
	return local + "@" + parts[1]
}
