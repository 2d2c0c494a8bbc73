package initializers

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
)

type Config struct {
	Port              string
	GinMode           string
	DBDriver          string
	DBURL             string
	JWTSecret         string
	TokenTTL          time.Duration
	AdminUsername     string
	AdminPassword     string
	BasicAuthUsers    map[string]string
	CORSOrigins       []string
	ImagesDir         string
	FrontendDir       string
	S3Bucket          string
	S3PublicBase      string
	SMTPHost          string
	SMTPPort          int
	FromEmail         string
	FromEmailPassword string
	OrderNotifyEmail  string
	OrderWebhookURL   string
	ReportCron        string
	ReportEmail       string
	ChromePath        string
	LogMode           string
	LogFile           string
	Location          string
}

// Cfg is the active configuration. LoadConfig replaces it at startup; tests assign it directly.
var Cfg = DefaultConfig()

func DefaultConfig() *Config {
	return &Config{
		Port:           "5000",
		GinMode:        "debug",
		DBDriver:       "mysql",
		TokenTTL:       30 * 24 * time.Hour,
		BasicAuthUsers: map[string]string{},
		CORSOrigins:    []string{"http://localhost:3000"},
		ImagesDir:      "images",
		SMTPPort:       587,
		LogMode:        "development",
		Location:       "Europe/Bucharest",
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// parseUsers reads "alice:secret,bob:pass" pairs.
func parseUsers(raw string) map[string]string {
	users := map[string]string{}
	for _, pair := range strings.Split(raw, ",") {
		name, pass, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || name == "" {
			continue
		}
		users[name] = pass
	}
	return users
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func LoadConfig() *Config {
	def := DefaultConfig()
	cfg := &Config{
		Port:              strings.TrimPrefix(getenv("PORT", def.Port), ":"),
		GinMode:           getenv("GIN_MODE", def.GinMode),
		DBDriver:          strings.ToLower(getenv("DB_DRIVER", def.DBDriver)),
		DBURL:             os.Getenv("DB_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTL:          time.Duration(cast.ToInt(getenv("TOKEN_TTL_HOURS", "720"))) * time.Hour,
		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		BasicAuthUsers:    parseUsers(os.Getenv("BASIC_AUTH_USERS")),
		CORSOrigins:       def.CORSOrigins,
		ImagesDir:         getenv("IMAGES_DIR", def.ImagesDir),
		FrontendDir:       os.Getenv("FRONTEND_DIR"),
		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3PublicBase:      os.Getenv("S3_PUBLIC_BASE"),
		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPPort:          cast.ToInt(getenv("SMTP_PORT", "587")),
		FromEmail:         os.Getenv("FROM_EMAIL"),
		FromEmailPassword: os.Getenv("FROM_EMAIL_PASSWORD"),
		OrderNotifyEmail:  os.Getenv("ORDER_NOTIFY_EMAIL"),
		OrderWebhookURL:   os.Getenv("ORDER_WEBHOOK_URL"),
		ReportCron:        os.Getenv("REPORT_CRON"),
		ReportEmail:       os.Getenv("REPORT_EMAIL"),
		ChromePath:        os.Getenv("CHROME_PATH"),
		LogMode:           getenv("LOG_MODE", def.LogMode),
		LogFile:           os.Getenv("LOG_FILE"),
		Location:          getenv("APP_LOCATION", def.Location),
	}
	if origins := splitList(os.Getenv("CORS_ORIGINS")); len(origins) > 0 {
		cfg.CORSOrigins = origins
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = def.TokenTTL
	}
	Cfg = cfg
	return cfg
}

// MailEnabled reports whether SMTP settings are complete.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.FromEmail != ""
}
