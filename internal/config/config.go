package config

import (
	"time"

	pkgconfig "github.com/AleksMarkov/LumenTask-server/pkg/config"
	"github.com/AleksMarkov/LumenTask-server/pkg/storage"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Media    MediaConfig
	Email    EmailConfig
	Profile  ProfileConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string `mapstructure:"sslmode"`
	FilePath        string `mapstructure:"file_path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	Prefix string        `mapstructure:"prefix"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// StorageConfig selects the object storage backend for uploaded media.
type StorageConfig struct {
	Backend string              `mapstructure:"backend"` // s3, local
	S3      storage.S3Config    `mapstructure:"s3"`
	Local   storage.LocalConfig `mapstructure:"local"`
}

// MediaConfig controls avatar upload and transformation.
type MediaConfig struct {
	AvatarNamespace string `mapstructure:"avatar_namespace"`
	AvatarWidth     int    `mapstructure:"avatar_width"`
	AvatarHeight    int    `mapstructure:"avatar_height"`
	AvatarGravity   string `mapstructure:"avatar_gravity"`
	AvatarRadius    string `mapstructure:"avatar_radius"`
	AvatarBorder    string `mapstructure:"avatar_border"`
}

type EmailConfig struct {
	SMTPHost       string `mapstructure:"smtp_host"`
	SMTPPort       int    `mapstructure:"smtp_port"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	From           string `mapstructure:"from"`
	SupportAddress string `mapstructure:"support_address"`
}

// ProfileConfig tunes the profile update pipeline. HashDelay is an optional
// minimum latency applied before credential hashing to smooth load spikes;
// zero disables it.
type ProfileConfig struct {
	BcryptCost int           `mapstructure:"bcrypt_cost"`
	HashDelay  time.Duration `mapstructure:"hash_delay"`
}

type LogConfig struct {
	Level  string
	Pretty bool
}

func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "lumentask")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.file_path", "./data/lumentask.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cache.prefix", "user")
	v.SetDefault("cache.ttl", "30s")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("storage.backend", "s3")
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.bucket", "lumentask-media")
	v.SetDefault("storage.s3.use_path_style", false)
	v.SetDefault("storage.local.base_path", "./data/media")
	v.SetDefault("storage.local.base_url", "")
	v.SetDefault("media.avatar_namespace", "avatars")
	v.SetDefault("media.avatar_width", 300)
	v.SetDefault("media.avatar_height", 300)
	v.SetDefault("media.avatar_gravity", "face")
	v.SetDefault("media.avatar_radius", "max")
	v.SetDefault("media.avatar_border", "2px_solid_white")
	v.SetDefault("email.smtp_host", "localhost")
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.from", "noreply@lumentask.app")
	v.SetDefault("email.support_address", "aleks.markov@hotmail.com")
	v.SetDefault("profile.bcrypt_cost", 10)
	v.SetDefault("profile.hash_delay", "0s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// Bind environment variables
	v.BindEnv("server.port", "PORT")
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.dbname", "DB_NAME")
	v.BindEnv("database.sslmode", "DB_SSLMODE")
	v.BindEnv("database.file_path", "DB_FILE_PATH")
	v.BindEnv("redis.address", "REDIS_ADDRESS")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("storage.backend", "STORAGE_BACKEND")
	v.BindEnv("storage.s3.endpoint", "S3_ENDPOINT")
	v.BindEnv("storage.s3.region", "S3_REGION")
	v.BindEnv("storage.s3.bucket", "S3_BUCKET")
	v.BindEnv("storage.s3.access_key_id", "S3_ACCESS_KEY_ID")
	v.BindEnv("storage.s3.secret_access_key", "S3_SECRET_ACCESS_KEY")
	v.BindEnv("storage.s3.public_url", "S3_PUBLIC_URL")
	v.BindEnv("email.smtp_host", "SMTP_HOST")
	v.BindEnv("email.smtp_port", "SMTP_PORT")
	v.BindEnv("email.username", "SMTP_USERNAME")
	v.BindEnv("email.password", "SMTP_PASSWORD")
	v.BindEnv("email.from", "SMTP_FROM")
	v.BindEnv("email.support_address", "SUPPORT_ADDRESS")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
