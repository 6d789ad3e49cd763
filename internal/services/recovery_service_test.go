package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/InSantoshMahto/login-system/domain"
	"github.com/InSantoshMahto/login-system/internal/mocks"
)

type recoveryMocks struct {
	userRepo        *mocks.MockUserRepository
	codeRepo        *mocks.MockOneTimeCodeRepository
	codeGen         *mocks.MockCodeGenerator
	passwordSvc     *mocks.MockPasswordService
	tokenSvc        *mocks.MockTokenService
	notificationSvc *mocks.MockNotificationService
}

func newRecoveryService(t *testing.T) (domain.RecoveryService, *recoveryMocks) {
	t.Helper()

	m := &recoveryMocks{
		userRepo:        mocks.NewMockUserRepository(),
		codeRepo:        mocks.NewMockOneTimeCodeRepository(),
		codeGen:         mocks.NewMockCodeGenerator(),
		passwordSvc:     mocks.NewMockPasswordService(),
		tokenSvc:        mocks.NewMockTokenService(),
		notificationSvc: mocks.NewMockNotificationService(),
	}

	svc := NewRecoveryService(
		m.userRepo,
		m.codeRepo,
		m.codeGen,
		m.passwordSvc,
		m.tokenSvc,
		m.notificationSvc,
		RecoveryConfig{
			Brand:         "LoginSystem",
			DomainName:    "login-system.example.com",
			CodeLength:    4,
			ProofTokenTTL: 10 * time.Minute,
			NotifyTimeout: time.Second,
		},
		zerolog.Nop(),
	)

	return svc, m
}

func aliceUser() *domain.User {
	return &domain.User{
		ID:           42,
		UserName:     "alice",
		FirstName:    "Alice",
		Email:        "alice@example.com",
		PasswordHash: "hashed_OldPass1@",
	}
}

func TestRecoveryServiceImpl_RequestReset(t *testing.T) {
	t.Run("successful request stores code and dispatches it", func(t *testing.T) {
		svc, m := newRecoveryService(t)

		m.userRepo.FindByUserNameFunc = func(ctx context.Context, userName string) (*domain.User, error) {
			if userName != "alice" {
				return nil, domain.ErrUserNotFound
			}
			return aliceUser(), nil
		}

		var stored *domain.OneTimeCode
		m.codeRepo.InsertFunc = func(ctx context.Context, code *domain.OneTimeCode) error {
			stored = code
			return nil
		}

		record, err := svc.RequestReset(context.Background(), "alice")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if stored == nil {
			t.Fatal("expected a one-time code to be stored")
		}
		if stored.UserID != 42 {
			t.Errorf("expected subject 42, got %d", stored.UserID)
		}
		if stored.Purpose != domain.PurposeForgetPassword {
			t.Errorf("expected purpose FORGET_PASSWORD, got %s", stored.Purpose)
		}
		if stored.Type != domain.ChannelEmail {
			t.Errorf("expected EMAIL channel, got %s", stored.Type)
		}
		if len(stored.Receivers) != 1 || stored.Receivers[0] != "alice@example.com" {
			t.Errorf("expected receiver alice@example.com, got %v", stored.Receivers)
		}
		if stored.ID == "" {
			t.Error("expected a record id")
		}
		if record.Code != "1234" {
			t.Errorf("expected generated code 1234, got %s", record.Code)
		}

		select {
		case sent := <-m.notificationSvc.Sent:
			if sent != "1234" {
				t.Errorf("expected dispatched code 1234, got %s", sent)
			}
		case <-time.After(time.Second):
			t.Fatal("expected the code to be dispatched")
		}
	})

	t.Run("unknown user never creates a code", func(t *testing.T) {
		svc, m := newRecoveryService(t)

		_, err := svc.RequestReset(context.Background(), "nobody")
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
		if m.codeRepo.InsertCalls != 0 {
			t.Error("no one-time code should be stored for an unknown user")
		}
	})

	t.Run("generator failure aborts the request", func(t *testing.T) {
		svc, m := newRecoveryService(t)

		m.userRepo.FindByUserNameFunc = func(ctx context.Context, userName string) (*domain.User, error) {
			return aliceUser(), nil
		}
		m.codeGen.GenerateFunc = func(length int) (string, error) {
			return "", errors.New("entropy exhausted")
		}

		if _, err := svc.RequestReset(context.Background(), "alice"); err == nil {
			t.Fatal("expected an error")
		}
		if m.codeRepo.InsertCalls != 0 {
			t.Error("no one-time code should be stored when generation fails")
		}
	})

	t.Run("store failure aborts the request", func(t *testing.T) {
		svc, m := newRecoveryService(t)

		m.userRepo.FindByUserNameFunc = func(ctx context.Context, userName string) (*domain.User, error) {
			return aliceUser(), nil
		}
		m.codeRepo.InsertFunc = func(ctx context.Context, code *domain.OneTimeCode) error {
			return errors.New("redis unavailable")
		}

		if _, err := svc.RequestReset(context.Background(), "alice"); err == nil {
			t.Fatal("expected an error")
		}
		select {
		case <-m.notificationSvc.Sent:
			t.Error("no code should be dispatched when the store write fails")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("delivery failure does not fail the request", func(t *testing.T) {
		svc, m := newRecoveryService(t)

		m.userRepo.FindByUserNameFunc = func(ctx context.Context, userName string) (*domain.User, error) {
			return aliceUser(), nil
		}
		m.notificationSvc.SendOneTimeCodeFunc = func(ctx context.Context, brand, domainName, recipientName, recipientAddress, message, code string) error {
			return errors.New("smtp down")
		}

		record, err := svc.RequestReset(context.Background(), "alice")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record == nil {
			t.Fatal("expected a record despite the delivery failure")
		}

		select {
		case <-m.notificationSvc.Sent:
		case <-time.After(time.Second):
			t.Fatal("expected the dispatch to have been attempted")
		}
	})
}

func TestRecoveryServiceImpl_VerifyReset(t *testing.T) {
	storedCode := func() *domain.OneTimeCode {
		return &domain.OneTimeCode{
			ID:      "otp-1",
			Code:    "4321",
			Purpose: domain.PurposeForgetPassword,
			UserID:  42,
		}
	}

	t.Run("matching code is consumed and exchanged for a proof token", func(t *testing.T) {
		svc, m := newRecoveryService(t)

		m.codeRepo.FindLatestFunc = func(ctx context.Context, userID uint, purpose domain.Purpose) (*domain.OneTimeCode, error) {
			if userID != 42 || purpose != domain.PurposeForgetPassword {
				return nil, domain.ErrCodeNotFound
			}
			return storedCode(), nil
		}
		m.tokenSvc.IssueFunc = func(userID uint, purpose domain.Purpose, ttl time.Duration) (string, error) {
			if userID != 42 {
				t.Errorf("expected token for user 42, got %d", userID)
			}
			if purpose != domain.PurposeForgetPassword {
				t.Errorf("expected FORGET_PASSWORD purpose, got %s", purpose)
			}
			return "proof-token", nil
		}

		token, err := svc.VerifyReset(context.Background(), 42, "4321")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "proof-token" {
			t.Errorf("expected proof-token, got %s", token)
		}
		if m.codeRepo.ConsumeCalls != 1 {
			t.Errorf("expected the code to be consumed once, got %d", m.codeRepo.ConsumeCalls)
		}
	})

	t.Run("wrong code is rejected without consuming", func(t *testing.T) {
		svc, m := newRecoveryService(t)

		m.codeRepo.FindLatestFunc = func(ctx context.Context, userID uint, purpose domain.Purpose) (*domain.OneTimeCode, error) {
			return storedCode(), nil
		}

		_, err := svc.VerifyReset(context.Background(), 42, "0000")
		if !errors.Is(err, domain.ErrCodeInvalid) {
			t.Fatalf("expected ErrCodeInvalid, got %v", err)
		}
		if m.codeRepo.ConsumeCalls != 0 {
			t.Error("a mismatched code must not consume the record")
		}
	})

	t.Run("missing code yields not found", func(t *testing.T) {
		svc, _ := newRecoveryService(t)

		_, err := svc.VerifyReset(context.Background(), 42, "4321")
		if !errors.Is(err, domain.ErrCodeNotFound) {
			t.Fatalf("expected ErrCodeNotFound, got %v", err)
		}
	})
}

func TestRecoveryServiceImpl_CommitReset(t *testing.T) {
	validClaims := func() *domain.TokenClaims {
		return &domain.TokenClaims{
			UserID:  42,
			Purpose: domain.PurposeForgetPassword,
		}
	}

	tests := []struct {
		name          string
		userID        uint
		setupMocks    func(m *recoveryMocks)
		expectedError error
		expectFailure bool
		expectUpdate  bool
	}{
		{
			name:   "successful commit persists the new hash",
			userID: 42,
			setupMocks: func(m *recoveryMocks) {
				m.tokenSvc.VerifyFunc = func(token string) (*domain.TokenClaims, error) {
					return validClaims(), nil
				}
				m.userRepo.UpdatePasswordFunc = func(ctx context.Context, id uint, passwordHash string) error {
					if id != 42 {
						t.Errorf("expected update for user 42, got %d", id)
					}
					if passwordHash != "hashed_Abc123@#" {
						t.Errorf("expected the hashed password to be persisted, got %s", passwordHash)
					}
					return nil
				}
			},
			expectedError: nil,
			expectFailure: false,
			expectUpdate:  true,
		},
		{
			name:   "invalid token yields unauthorized",
			userID: 42,
			setupMocks: func(m *recoveryMocks) {
				m.tokenSvc.VerifyFunc = func(token string) (*domain.TokenClaims, error) {
					return nil, domain.ErrTokenInvalid
				}
			},
			expectedError: domain.ErrTokenInvalid,
			expectUpdate:  false,
		},
		{
			name:   "subject mismatch yields the same error as a bad signature",
			userID: 7,
			setupMocks: func(m *recoveryMocks) {
				m.tokenSvc.VerifyFunc = func(token string) (*domain.TokenClaims, error) {
					return validClaims(), nil
				}
			},
			expectedError: domain.ErrTokenInvalid,
			expectUpdate:  false,
		},
		{
			name:   "purpose mismatch yields the same error as a bad signature",
			userID: 42,
			setupMocks: func(m *recoveryMocks) {
				m.tokenSvc.VerifyFunc = func(token string) (*domain.TokenClaims, error) {
					return &domain.TokenClaims{UserID: 42, Purpose: domain.PurposeSession}, nil
				}
			},
			expectedError: domain.ErrTokenInvalid,
			expectUpdate:  false,
		},
		{
			name:   "hash failure aborts before any write",
			userID: 42,
			setupMocks: func(m *recoveryMocks) {
				m.tokenSvc.VerifyFunc = func(token string) (*domain.TokenClaims, error) {
					return validClaims(), nil
				}
				m.passwordSvc.HashFunc = func(password string) (string, error) {
					return "", errors.New("hashing failed")
				}
			},
			expectFailure: true,
			expectUpdate:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newRecoveryService(t)
			tt.setupMocks(m)

			err := svc.CommitReset(context.Background(), tt.userID, "Abc123@#", "proof-token")

			if tt.expectedError != nil && !errors.Is(err, tt.expectedError) {
				t.Fatalf("expected %v, got %v", tt.expectedError, err)
			}
			if tt.expectFailure && err == nil {
				t.Fatal("expected an error")
			}
			if tt.expectedError == nil && !tt.expectFailure && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.expectUpdate && m.userRepo.UpdatePasswordCalls != 0 {
				t.Error("no password write should happen on a failed commit")
			}
			if tt.expectUpdate && m.userRepo.UpdatePasswordCalls != 1 {
				t.Errorf("expected exactly one password write, got %d", m.userRepo.UpdatePasswordCalls)
			}
		})
	}
}

func TestRecoveryServiceImpl_ChangePassword(t *testing.T) {
	t.Run("successful change persists the new hash", func(t *testing.T) {
		svc, m := newRecoveryService(t)

		m.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
			return aliceUser(), nil
		}

		var persisted string
		m.userRepo.UpdatePasswordFunc = func(ctx context.Context, id uint, passwordHash string) error {
			persisted = passwordHash
			return nil
		}

		err := svc.ChangePassword(context.Background(), 42, "OldPass1@", "GoodPass1@")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if persisted != "hashed_GoodPass1@" {
			t.Errorf("expected new hash to be persisted, got %s", persisted)
		}
	})

	t.Run("wrong old password leaves the stored hash unchanged", func(t *testing.T) {
		svc, m := newRecoveryService(t)

		m.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
			return aliceUser(), nil
		}

		err := svc.ChangePassword(context.Background(), 42, "wrong", "GoodPass1@")
		if !errors.Is(err, domain.ErrOldPasswordMismatch) {
			t.Fatalf("expected ErrOldPasswordMismatch, got %v", err)
		}
		if m.userRepo.UpdatePasswordCalls != 0 {
			t.Error("no password write should happen when the old password mismatches")
		}
	})

	t.Run("unknown user yields not found", func(t *testing.T) {
		svc, _ := newRecoveryService(t)

		err := svc.ChangePassword(context.Background(), 99, "old", "GoodPass1@")
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}
