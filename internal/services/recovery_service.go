package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/InSantoshMahto/login-system/domain"
)

// otpMessage is the instruction sent alongside every one-time code
const otpMessage = "submit your otp to move towards next step."

// RecoveryConfig holds tunables for the recovery flow
type RecoveryConfig struct {
	Brand         string
	DomainName    string
	CodeLength    int
	ProofTokenTTL time.Duration
	NotifyTimeout time.Duration
}

// RecoveryServiceImpl implements domain.RecoveryService
type RecoveryServiceImpl struct {
	userRepo        domain.UserRepository
	codeRepo        domain.OneTimeCodeRepository
	codeGen         domain.CodeGenerator
	passwordSvc     domain.PasswordService
	tokenSvc        domain.TokenService
	notificationSvc domain.NotificationService
	config          RecoveryConfig
	logger          zerolog.Logger
}

// NewRecoveryService creates a new recovery service
func NewRecoveryService(
	userRepo domain.UserRepository,
	codeRepo domain.OneTimeCodeRepository,
	codeGen domain.CodeGenerator,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	notificationSvc domain.NotificationService,
	config RecoveryConfig,
	logger zerolog.Logger,
) domain.RecoveryService {
	return &RecoveryServiceImpl{
		userRepo:        userRepo,
		codeRepo:        codeRepo,
		codeGen:         codeGen,
		passwordSvc:     passwordSvc,
		tokenSvc:        tokenSvc,
		notificationSvc: notificationSvc,
		config:          config,
		logger:          logger,
	}
}

// RequestReset implements domain.RecoveryService. It issues a fresh one-time
// code for the user, superseding any outstanding code for the same purpose,
// and dispatches it out-of-band. Delivery is best-effort: a notification
// failure is logged and never fails the request.
func (s *RecoveryServiceImpl) RequestReset(ctx context.Context, userName string) (*domain.OneTimeCode, error) {
	user, err := s.userRepo.FindByUserName(ctx, userName)
	if err != nil {
		return nil, err
	}

	code, err := s.codeGen.Generate(s.config.CodeLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate one-time code: %w", err)
	}

	record := &domain.OneTimeCode{
		ID:        uuid.NewString(),
		Code:      code,
		Purpose:   domain.PurposeForgetPassword,
		UserID:    user.ID,
		Receivers: []string{user.Email},
		Type:      domain.ChannelEmail,
		CreatedAt: time.Now(),
	}

	if err := s.codeRepo.Insert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store one-time code: %w", err)
	}

	s.dispatch(user, record)

	return record, nil
}

// dispatch delivers the one-time code on its own goroutine, detached from
// the request context and bounded by the configured notify timeout
func (s *RecoveryServiceImpl) dispatch(user *domain.User, record *domain.OneTimeCode) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.config.NotifyTimeout)
		defer cancel()

		err := s.notificationSvc.SendOneTimeCode(ctx, s.config.Brand, s.config.DomainName,
			user.FirstName, record.Receivers[0], otpMessage, record.Code)
		if err != nil {
			s.logger.Warn().Err(err).
				Uint("user_id", user.ID).
				Str("type", string(record.Type)).
				Msg("one-time code delivery failed")
			return
		}
		s.logger.Info().
			Uint("user_id", user.ID).
			Str("otp_id", record.ID).
			Msg("one-time code dispatched")
	}()
}

// VerifyReset implements domain.RecoveryService. It checks the presented
// code against the latest stored record, consumes the record so the code
// cannot be replayed, and returns a proof token scoped to the user and the
// forget-password purpose.
func (s *RecoveryServiceImpl) VerifyReset(ctx context.Context, userID uint, code string) (string, error) {
	record, err := s.codeRepo.FindLatest(ctx, userID, domain.PurposeForgetPassword)
	if err != nil {
		return "", err
	}

	if record.Purpose != domain.PurposeForgetPassword {
		return "", domain.ErrCodeInvalid
	}
	if subtle.ConstantTimeCompare([]byte(record.Code), []byte(code)) != 1 {
		return "", domain.ErrCodeInvalid
	}

	if err := s.codeRepo.Consume(ctx, userID, domain.PurposeForgetPassword); err != nil {
		return "", fmt.Errorf("failed to consume one-time code: %w", err)
	}

	token, err := s.tokenSvc.Issue(userID, domain.PurposeForgetPassword, s.config.ProofTokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to issue proof token: %w", err)
	}

	return token, nil
}

// CommitReset implements domain.RecoveryService. The proof token must carry
// the forget-password purpose and the exact user id of the request; any
// mismatch yields the same ErrTokenInvalid so a caller cannot learn which
// check failed. The password hash write is the only mutation and happens
// last.
func (s *RecoveryServiceImpl) CommitReset(ctx context.Context, userID uint, password, proofToken string) error {
	claims, err := s.tokenSvc.Verify(proofToken)
	if err != nil {
		return domain.ErrTokenInvalid
	}
	if claims.UserID != userID || claims.Purpose != domain.PurposeForgetPassword {
		return domain.ErrTokenInvalid
	}

	hash, err := s.passwordSvc.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// ChangePassword implements domain.RecoveryService for the authenticated
// in-session change. A wrong old password yields ErrOldPasswordMismatch and
// leaves the stored hash untouched.
func (s *RecoveryServiceImpl) ChangePassword(ctx context.Context, userID uint, oldPassword, password string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.passwordSvc.Verify(user.PasswordHash, oldPassword) {
		return domain.ErrOldPasswordMismatch
	}

	hash, err := s.passwordSvc.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
