package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FIELDOPS_APP_ENV" required:"true"`
	Port         string `envconfig:"FIELDOPS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FIELDOPS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FIELDOPS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FIELDOPS_DB_DSN"`
	Driver string `envconfig:"FIELDOPS_DB_DRIVER" default:"mysql"`

	LegacyHost     string `envconfig:"FIELDOPS_DB_HOST"`
	LegacyPort     int    `envconfig:"FIELDOPS_DB_PORT" default:"3306"`
	LegacyUser     string `envconfig:"FIELDOPS_DB_USER"`
	LegacyPassword string `envconfig:"FIELDOPS_DB_PASSWORD"`
	LegacyName     string `envconfig:"FIELDOPS_DB_NAME"`

	MaxOpenConns    int           `envconfig:"FIELDOPS_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"FIELDOPS_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"FIELDOPS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FIELDOPS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FIELDOPS_REDIS_URL"`
	Address      string        `envconfig:"FIELDOPS_REDIS_ADDR"`
	Password     string        `envconfig:"FIELDOPS_REDIS_PASSWORD"`
	DB           int           `envconfig:"FIELDOPS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FIELDOPS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FIELDOPS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FIELDOPS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FIELDOPS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FIELDOPS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FIELDOPS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FIELDOPS_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"FIELDOPS_JWT_EXPIRATION_MINUTES" default:"60"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FIELDOPS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FIELDOPS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FIELDOPS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FIELDOPS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FIELDOPS_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow           time.Duration `envconfig:"FIELDOPS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit    int           `envconfig:"FIELDOPS_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit          int           `envconfig:"FIELDOPS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow        time.Duration `envconfig:"FIELDOPS_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterUsernameLimit int           `envconfig:"FIELDOPS_AUTH_RATE_LIMIT_REGISTER_USERNAME_LIMIT" default:"3"`
	RegisterIPLimit       int           `envconfig:"FIELDOPS_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FIELDOPS_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	mc := mysql.NewConfig()
	mc.User = db.LegacyUser
	mc.Passwd = db.LegacyPassword
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort)
	mc.DBName = db.LegacyName
	mc.ParseTime = true
	mc.Loc = time.UTC

	db.DSN = mc.FormatDSN()
	return nil
}
