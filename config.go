package instaframe

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for an instaframe server.
type Config struct {
	Name string // Site name shown in the page header (default "Instaframe")
	Addr string // Listen address (default ":3000")

	SessionSecret string // Session cookie secret; random per boot when empty
	CookieSecure  bool   // Set true behind HTTPS

	MaxUploadBytes int64         // Upload size cap (default 20MB)
	StudioTTL      time.Duration // Idle time before a session's studio is dropped (default 30min)
}

func (c *Config) setDefaults() {
	if c.Name == "" {
		c.Name = "Instaframe"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.SessionSecret == "" {
		// All studio state is volatile anyway: a per-boot secret just means
		// a restart starts everyone with a fresh studio.
		c.SessionSecret = randomSecret()
	}
	if c.MaxUploadBytes == 0 {
		c.MaxUploadBytes = 20 << 20
	}
	if c.StudioTTL == 0 {
		c.StudioTTL = 30 * time.Minute
	}
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("instaframe: cannot read random bytes: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// ConfigFromEnv builds a Config from environment variables, leaving zero
// values for setDefaults to fill in.
func ConfigFromEnv() Config {
	cfg := Config{
		Name:          os.Getenv("SITE_NAME"),
		Addr:          os.Getenv("ADDR"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		CookieSecure:  os.Getenv("COOKIE_SECURE") == "true",
	}
	if v, err := strconv.Atoi(os.Getenv("MAX_UPLOAD_MB")); err == nil && v > 0 {
		cfg.MaxUploadBytes = int64(v) << 20
	}
	if v, err := time.ParseDuration(os.Getenv("STUDIO_TTL")); err == nil && v > 0 {
		cfg.StudioTTL = v
	}
	return cfg
}
