package config

import (
	"net"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/joules19/chowmate-web-sub002/log"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

const envPrefix = "CHOWMATE_"

type Config struct {
	// server
	Host        string
	Port        uint
	DBUrl       string
	RedisURL    string
	CacheTTL    time.Duration
	TokenSecret string
	Debug       bool

	// respondent client
	ServerURL        string
	Token            string
	SubmitTimeout    time.Duration
	AutoAdvanceDelay time.Duration
	StrictTypes      bool
	LogFile          string
	PublicURL        string
}

// LoadEnv reads a .env file from the working directory when there is one.
// Variables already set in the environment win.
func LoadEnv() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Warnf("config.env: %s", err)
	}
}

// BindCommon registers the flags every command shares.
func BindCommon(fs *pflag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.Debug, "debug", envBool("DEBUG", false), "log at DEBUG level")
	fs.StringVar(&cfg.DBUrl, "db-url", envOr("DB_URL", "chowmate.sqlite"), "path to SQLite3 DB file")
	fs.StringVar(&cfg.RedisURL, "redis-url", envOr("REDIS_URL", ""), "redis:// URL of the survey cache (in-process cache when empty)")
	fs.StringVar(&cfg.TokenSecret, "token-secret", envOr("TOKEN_SECRET", ""), "secret key for signing and verifying tokens")
}

// BindServer registers the flags of the HTTP service.
func BindServer(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Host, "host", envOr("HOST", "0.0.0.0"), "listen host name")
	fs.UintVar(&cfg.Port, "port", envUint("PORT", 8080), "listen port number")
	fs.DurationVar(&cfg.CacheTTL, "cache-ttl", envDuration("CACHE_TTL", 5*time.Minute), "how long a served survey stays cached")
}

// BindClient registers the flags of the respondent wizard.
func BindClient(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.ServerURL, "server", envOr("SERVER_URL", "http://localhost:8080"), "base URL of the survey service")
	fs.StringVar(&cfg.Token, "token", envOr("TOKEN", ""), "bearer token identifying the respondent (anonymous when empty)")
	fs.DurationVar(&cfg.SubmitTimeout, "submit-timeout", envDuration("SUBMIT_TIMEOUT", 30*time.Second), "give up on a submission after this long")
	fs.DurationVar(&cfg.AutoAdvanceDelay, "auto-advance-delay", envDuration("AUTO_ADVANCE_DELAY", 800*time.Millisecond), "pause before a choice moves to the next question")
	fs.BoolVar(&cfg.StrictTypes, "strict-types", envBool("STRICT_TYPES", false), "refuse surveys with unknown question types instead of showing them as short text")
	fs.StringVar(&cfg.LogFile, "log-file", envOr("LOG_FILE", ""), "write logs to this file (discarded when empty)")
	fs.StringVar(&cfg.PublicURL, "public-url", envOr("PUBLIC_URL", ""), "base of the share link (defaults to the server URL)")
}

func (cfg Config) Addr() string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(int(cfg.Port)))
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr()
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}

// ShareBase is where share links point.
func (cfg Config) ShareBase() string {
	if cfg.PublicURL != "" {
		return cfg.PublicURL
	}
	return cfg.ServerURL
}

func (cfg Config) ValidateServer() error {
	if cfg.TokenSecret == "" {
		return errors.New("missing parameter --token-secret (or " + envPrefix + "TOKEN_SECRET)")
	}
	if cfg.Port == 0 || cfg.Port > 65535 {
		return errors.Errorf("invalid port %d", cfg.Port)
	}
	return nil
}

func envOr(k, def string) string {
	v := os.Getenv(envPrefix + k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(envPrefix + k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envUint(k string, def uint) uint {
	n, err := strconv.ParseUint(os.Getenv(envPrefix+k), 10, 32)
	if err != nil {
		return def
	}
	return uint(n)
}

func envDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(envPrefix + k))
	if err != nil {
		return def
	}
	return d
}
