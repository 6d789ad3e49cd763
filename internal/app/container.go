package app

import (
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/InSantoshMahto/login-system/domain"
	"github.com/InSantoshMahto/login-system/internal/config"
	"github.com/InSantoshMahto/login-system/internal/infrastructure/auth"
	"github.com/InSantoshMahto/login-system/internal/infrastructure/database"
	"github.com/InSantoshMahto/login-system/internal/infrastructure/notifications"
	"github.com/InSantoshMahto/login-system/internal/infrastructure/repositories"
	"github.com/InSantoshMahto/login-system/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Logger zerolog.Logger

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client

	// Repositories
	UserRepo domain.UserRepository
	CodeRepo domain.OneTimeCodeRepository

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	CodeGen         domain.CodeGenerator
	NotificationSvc domain.NotificationService
	RecoverySvc     domain.RecoveryService
	Policy          *services.PasswordPolicy
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config, logger zerolog.Logger) (*Container, error) {
	container := &Container{Config: cfg, Logger: logger}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	container.initRedis()
	container.initRepositories()
	if err := container.initServices(); err != nil {
		return nil, err
	}

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

func (c *Container) initRedis() {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.CodeRepo = repositories.NewOneTimeCodeRepository(c.RedisClient, c.Config.OTP_TTL)
}

func (c *Container) initServices() error {
	keyring, err := auth.NewKeyring(c.Config.JWTCurrentKey, c.Config.JWTSecrets)
	if err != nil {
		return err
	}

	c.PasswordSvc = auth.NewPasswordService(c.Config.BcryptCost)
	c.TokenSvc = auth.NewJWTService(keyring, c.Config.JWTIssuer)
	c.CodeGen = auth.NewCodeGenerator()
	c.NotificationSvc = notifications.NewTwilioService(
		c.Config.TwilioSID,
		c.Config.TwilioToken,
		c.Config.TwilioFrom,
		c.Logger,
	)
	c.Policy = services.NewPasswordPolicy()

	c.RecoverySvc = services.NewRecoveryService(
		c.UserRepo,
		c.CodeRepo,
		c.CodeGen,
		c.PasswordSvc,
		c.TokenSvc,
		c.NotificationSvc,
		services.RecoveryConfig{
			Brand:         c.Config.Brand,
			DomainName:    c.Config.Domain,
			CodeLength:    c.Config.OTP_Length,
			ProofTokenTTL: c.Config.ProofTTL,
			NotifyTimeout: c.Config.NotifyTimeout,
		},
		c.Logger,
	)

	return nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
