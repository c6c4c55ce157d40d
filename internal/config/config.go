package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"HomeworkWatcher/internal/domain"
)

const (
	configPathEnv     = "HOMEWORK_WATCHER_CONFIG"
	envFileEnv        = "HOMEWORK_WATCHER_ENV_FILE"
	practicumTokenEnv = "PRACTICUM_TOKEN"
	endpointEnv       = "PRACTICUM_ENDPOINT"
	telegramTokenEnv  = "TELEGRAM_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
	pollIntervalEnv   = "POLL_INTERVAL"
	emptyPolicyEnv    = "EMPTY_POLICY"
	journalPathEnv    = "JOURNAL_PATH"
	lockPathEnv       = "LOCK_PATH"
	logLevelEnv       = "LOG_LEVEL"

	defaultEnvFile        = ".env"
	defaultEndpoint       = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	defaultTelegramAPI    = "https://api.telegram.org"
	defaultPollInterval   = 6 * time.Second
	defaultRequestTimeout = 30 * time.Second
	defaultSendTimeout    = 5 * time.Second
)

// EmptyPolicy decides how an empty homeworks list is treated.
type EmptyPolicy string

const (
	// EmptyStrict reports an empty list as a schema anomaly.
	EmptyStrict EmptyPolicy = "strict"
	// EmptyLenient treats an empty list as "no news".
	EmptyLenient EmptyPolicy = "lenient"
)

// Config holds every setting the watcher needs; built once in main and passed down.
type Config struct {
	Upstream      UpstreamConfig     `yaml:"upstream"`
	Notifications NotificationConfig `yaml:"notifications"`
	Poller        PollerConfig       `yaml:"poller"`
	Journal       JournalConfig      `yaml:"journal"`
	Lock          LockConfig         `yaml:"lock"`
	Logging       LoggingConfig      `yaml:"logging"`
}

// UpstreamConfig describes the homework status endpoint.
type UpstreamConfig struct {
	Endpoint       string        `yaml:"endpoint"`
	Token          string        `yaml:"token"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	APIURL         string        `yaml:"apiUrl"`
	BotToken       string        `yaml:"botToken"`
	ChatID         string        `yaml:"chatId"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

// PollerConfig controls the poll loop cadence and response strictness.
type PollerConfig struct {
	Interval    time.Duration `yaml:"interval"`
	EmptyPolicy EmptyPolicy   `yaml:"emptyPolicy"`
}

// JournalConfig points at the optional SQLite delivery journal.
type JournalConfig struct {
	Path string `yaml:"path"`
}

// LockConfig points at the optional single-instance lock file.
type LockConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig selects the log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present), the .env file (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	loadEnvFile()
	cfg.applyEnvOverrides()
	cfg.normalize()

	return cfg
}

// Validate reports a StartupError when any credential is absent.
func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Upstream.Token) == "" {
		missing = append(missing, practicumTokenEnv)
	}
	if strings.TrimSpace(c.Notifications.Telegram.BotToken) == "" {
		missing = append(missing, telegramTokenEnv)
	}
	if strings.TrimSpace(c.Notifications.Telegram.ChatID) == "" {
		missing = append(missing, telegramChatIDEnv)
	}
	if len(missing) > 0 {
		return &domain.StartupError{Missing: missing}
	}
	return nil
}

// ParseEmptyPolicy maps a string to a known policy.
func ParseEmptyPolicy(value string) (EmptyPolicy, bool) {
	switch EmptyPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case EmptyStrict:
		return EmptyStrict, true
	case EmptyLenient:
		return EmptyLenient, true
	default:
		return "", false
	}
}

func loadEnvFile() {
	path := os.Getenv(envFileEnv)
	if path == "" {
		path = defaultEnvFile
	}
	// existing environment variables win over the file
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("config: cannot load %s: %v", path, err)
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(practicumTokenEnv); v != "" {
		c.Upstream.Token = v
	}
	if v := os.Getenv(endpointEnv); v != "" {
		c.Upstream.Endpoint = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}

	if v := os.Getenv(pollIntervalEnv); v != "" {
		if d, err := time.ParseDuration(v); err != nil {
			log.Printf("config: invalid %s %q: %v", pollIntervalEnv, v, err)
		} else {
			c.Poller.Interval = d
		}
	}
	if v := os.Getenv(emptyPolicyEnv); v != "" {
		c.Poller.EmptyPolicy = EmptyPolicy(v)
	}

	if v := os.Getenv(journalPathEnv); v != "" {
		c.Journal.Path = v
	}
	if v := os.Getenv(lockPathEnv); v != "" {
		c.Lock.Path = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) normalize() {
	if c.Poller.Interval <= 0 {
		log.Printf("config: non-positive poll interval %s, reverting to %s", c.Poller.Interval, defaultPollInterval)
		c.Poller.Interval = defaultPollInterval
	}

	policy, ok := ParseEmptyPolicy(string(c.Poller.EmptyPolicy))
	if !ok {
		log.Printf("config: unknown empty policy %q, reverting to %s", c.Poller.EmptyPolicy, EmptyStrict)
		policy = EmptyStrict
	}
	c.Poller.EmptyPolicy = policy

	c.Upstream.Endpoint = strings.TrimSpace(c.Upstream.Endpoint)
	c.Notifications.Telegram.APIURL = strings.TrimRight(strings.TrimSpace(c.Notifications.Telegram.APIURL), "/")
}

func mergeConfig(base, override Config) Config {
	if override.Upstream.Endpoint != "" {
		base.Upstream.Endpoint = override.Upstream.Endpoint
	}
	if override.Upstream.Token != "" {
		base.Upstream.Token = override.Upstream.Token
	}
	if override.Upstream.RequestTimeout != 0 {
		base.Upstream.RequestTimeout = override.Upstream.RequestTimeout
	}

	tg := override.Notifications.Telegram
	if tg.APIURL != "" {
		base.Notifications.Telegram.APIURL = tg.APIURL
	}
	if tg.BotToken != "" {
		base.Notifications.Telegram.BotToken = tg.BotToken
	}
	if tg.ChatID != "" {
		base.Notifications.Telegram.ChatID = tg.ChatID
	}
	if tg.RequestTimeout != 0 {
		base.Notifications.Telegram.RequestTimeout = tg.RequestTimeout
	}

	if override.Poller.Interval != 0 {
		base.Poller.Interval = override.Poller.Interval
	}
	if override.Poller.EmptyPolicy != "" {
		base.Poller.EmptyPolicy = override.Poller.EmptyPolicy
	}

	if override.Journal.Path != "" {
		base.Journal = override.Journal
	}
	if override.Lock.Path != "" {
		base.Lock = override.Lock
	}
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Upstream: UpstreamConfig{
			Endpoint:       defaultEndpoint,
			RequestTimeout: defaultRequestTimeout,
		},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{
				APIURL:         defaultTelegramAPI,
				RequestTimeout: defaultSendTimeout,
			},
		},
		Poller: PollerConfig{
			Interval:    defaultPollInterval,
			EmptyPolicy: EmptyStrict,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
