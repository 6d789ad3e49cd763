package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
	Brand   string `yaml:"brand"`
	Domain  string `yaml:"domain"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secrets    map[int]string `yaml:"secrets"`
	CurrentKey int            `yaml:"current_key"`
	Issuer     string         `yaml:"issuer"`
	SessionTTL string         `yaml:"session_ttl"`
	ProofTTL   string         `yaml:"proof_ttl"`
}

type OTPConfig struct {
	TTL    string `yaml:"ttl"`
	Length int    `yaml:"length"`
}

type PasswordConfig struct {
	BcryptCost int `yaml:"bcrypt_cost"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type NotifyConfig struct {
	Timeout string `yaml:"timeout"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Password PasswordConfig `yaml:"password"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	Notify   NotifyConfig   `yaml:"notify"`
}

type Config struct {
	Port          string
	GinMode       string
	Brand         string
	Domain        string
	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	JWTSecrets    map[int]string
	JWTCurrentKey int
	JWTIssuer     string
	SessionTTL    time.Duration
	ProofTTL      time.Duration
	OTP_TTL       time.Duration
	OTP_Length    int
	BcryptCost    int
	TwilioSID     string
	TwilioToken   string
	TwilioFrom    string
	NotifyTimeout time.Duration
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml, falling back to environment variables for
// every setting the file does not provide
func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	sessionTTL, err := time.ParseDuration(configFile.JWT.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT session TTL: %w", err)
	}

	proofTTL, err := time.ParseDuration(configFile.JWT.ProofTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT proof TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(configFile.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	notifyTimeout, err := time.ParseDuration(configFile.Notify.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid notify timeout: %w", err)
	}

	secrets := configFile.JWT.Secrets
	if len(secrets) == 0 {
		secrets = map[int]string{1: env("JWT_SECRET", "")}
		configFile.JWT.CurrentKey = 1
	}

	cfg := &Config{
		Port:          strconv.Itoa(configFile.App.Port),
		GinMode:       configFile.App.GinMode,
		Brand:         env("BRAND", configFile.App.Brand),
		Domain:        env("DOMAIN", configFile.App.Domain),
		DSN:           env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:     env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword: env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:       configFile.Redis.DB,
		JWTSecrets:    secrets,
		JWTCurrentKey: configFile.JWT.CurrentKey,
		JWTIssuer:     configFile.JWT.Issuer,
		SessionTTL:    sessionTTL,
		ProofTTL:      proofTTL,
		OTP_TTL:       otpTTL,
		OTP_Length:    configFile.OTP.Length,
		BcryptCost:    configFile.Password.BcryptCost,
		TwilioSID:     env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken:   env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:    env("TWILIO_FROM_NUMBER", configFile.Twilio.FromNumber),
		NotifyTimeout: notifyTimeout,
	}

	if cfg.OTP_Length <= 0 {
		cfg.OTP_Length = 4
	}

	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var configFile ConfigFile
	if err := yaml.Unmarshal(data, &configFile); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &configFile, nil
}
