package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	REST     RESTConfig     `yaml:"rest"`
	Identity IdentityConfig `yaml:"identity"`
	Security SecurityConfig `yaml:"security"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Logging  LoggingConfig  `yaml:"logging"`
	Views    ViewsConfig    `yaml:"views"`
}

type ServerConfig struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
	SecureCookies  bool     `yaml:"secureCookies"`
	CookieName     string   `yaml:"cookieName"`
}

type RESTConfig struct {
	BaseURL string        `yaml:"baseURL"`
	Timeout time.Duration `yaml:"timeout"`
}

type IdentityConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"apiKey"`
}

type SecurityConfig struct {
	JWTSecret    string `yaml:"jwtSecret"`
	JWTPublicKey string `yaml:"jwtPublicKey"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	GroupID string   `yaml:"groupID"`
	// Topics maps a canonical entity to the topics carrying its change events.
	Topics map[string][]string `yaml:"topics"`
}

type LoggingConfig struct {
	Directory string `yaml:"directory"`
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
}

type ViewsConfig struct {
	Currency string `yaml:"currency"`
	// PageSizes maps view names (products, orders, ...) to rows per page.
	PageSizes map[string]int `yaml:"pageSizes"`
	// IdleTTL evicts the views and state of sessions unused for this long. Zero disables it.
	IdleTTL time.Duration `yaml:"idleTTL"`
}

// SweepInterval is how often idle sessions are looked for.
func (v ViewsConfig) SweepInterval() time.Duration {
	return max(time.Minute, v.IdleTTL/4)
}

// PageSize returns the configured page size for view, falling back to 8.
func (v ViewsConfig) PageSize(view string) int {
	if size, ok := v.PageSizes[strings.ToLower(view)]; ok && size > 0 {
		return size
	}
	return 8
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:       "8080",
			CookieName: "sb-access-token",
		},
		REST: RESTConfig{
			BaseURL: "http://localhost:3000",
			Timeout: 10 * time.Second,
		},
		Kafka: KafkaConfig{
			GroupID: "storeadmin",
			Topics: map[string][]string{
				"products": {"products.events"},
				"coupons":  {"coupons.events"},
				"messages": {"messages.events"},
			},
		},
		Logging: LoggingConfig{
			Directory: "./logs",
			Level:     "info",
			Format:    "text",
		},
		Views: ViewsConfig{
			Currency: "$",
			PageSizes: map[string]int{
				"products":   8,
				"orders":     10,
				"coupons":    10,
				"newsletter": 10,
				"messages":   10,
				"inventory":  10,
			},
			IdleTTL: 30 * time.Minute,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// STOREADMIN_CONFIG, and finally the environment.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := strings.TrimSpace(os.Getenv("STOREADMIN_CONFIG")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Port, "PORT")
	setList(&cfg.Server.AllowedOrigins, "ALLOWED_ORIGINS")
	setBool(&cfg.Server.SecureCookies, "SECURE_COOKIES")
	setString(&cfg.Server.CookieName, "SESSION_COOKIE")

	setString(&cfg.REST.BaseURL, "REST_BASE_URL")
	setDuration(&cfg.REST.Timeout, "REST_TIMEOUT")

	setString(&cfg.Identity.URL, "IDENTITY_URL")
	setString(&cfg.Identity.APIKey, "IDENTITY_API_KEY")

	setString(&cfg.Security.JWTSecret, "JWT_SECRET")
	setString(&cfg.Security.JWTPublicKey, "JWT_PUBLIC_KEY")

	setList(&cfg.Kafka.Brokers, "KAFKA_BROKERS")
	if len(cfg.Kafka.Brokers) == 0 {
		setList(&cfg.Kafka.Brokers, "KAFKA_BROKER")
	}
	setString(&cfg.Kafka.GroupID, "KAFKA_GROUP_ID")
	if raw := strings.TrimSpace(os.Getenv("KAFKA_TOPICS")); raw != "" {
		cfg.Kafka.Topics = parseTopics(raw)
	}

	setString(&cfg.Logging.Directory, "LOG_DIR")
	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setString(&cfg.Logging.Format, "LOG_FORMAT")

	setString(&cfg.Views.Currency, "CURRENCY")
	setDuration(&cfg.Views.IdleTTL, "SESSION_IDLE_TTL")
}

// parseTopics reads "products=products.events|products.audit,messages=messages.events".
func parseTopics(raw string) map[string][]string {
	topics := make(map[string][]string)
	for _, pair := range strings.Split(raw, ",") {
		entity, list, found := strings.Cut(pair, "=")
		entity = strings.ToLower(strings.TrimSpace(entity))
		if !found || entity == "" {
			continue
		}
		for _, topic := range strings.Split(list, "|") {
			if topic = strings.TrimSpace(topic); topic != "" {
				topics[entity] = append(topics[entity], topic)
			}
		}
	}
	return topics
}

// Validate reports configuration that would make the server unusable.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.REST.BaseURL) == "" {
		errs = append(errs, errors.New("rest base url is required"))
	}
	if strings.TrimSpace(c.Security.JWTSecret) == "" && strings.TrimSpace(c.Security.JWTPublicKey) == "" {
		errs = append(errs, errors.New("jwt secret or public key is required"))
	}
	if c.REST.Timeout <= 0 {
		errs = append(errs, errors.New("rest timeout must be positive"))
	}
	return errors.Join(errs...)
}

func setString(target *string, key string) {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		*target = strings.TrimSpace(value)
	}
}

func setList(target *[]string, key string) {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return
	}
	items := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	*target = items
}

func setBool(target *bool, key string) {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			*target = parsed
		}
	}
}

func setDuration(target *time.Duration, key string) {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return
	}
	if parsed, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
		*target = parsed
		return
	}
	if seconds, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		*target = time.Duration(seconds) * time.Second
	}
}
