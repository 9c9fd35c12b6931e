package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppEnv        string
	AppPort       string
	AppBaseURL    string
	DBDSN         string
	JWTSecret     string
	JWTExpiresMin int
	SecureCookies bool

	GoogleClientID string
	GoogleSecret   string
	GoogleRedirect string

	RedisAddr     string
	RedisPassword string

	BunnyStorageZone     string
	BunnyStoragePassword string
	BunnyPullZoneURL     string
	BunnyStorageHostname string

	HomeSlug       string
	UploadMaxBytes int64
}

// Load reads the process environment. DB_DSN and JWT_SECRET are mandatory.
func Load() Config {
	expires, _ := strconv.Atoi(get("JWT_EXPIRES_MIN", "10080"))
	maxUpload, _ := strconv.ParseInt(get("UPLOAD_MAX_BYTES", "10485760"), 10, 64)
	env := get("APP_ENV", "development")
	return Config{
		AppEnv:        env,
		AppPort:       get("APP_PORT", "8080"),
		AppBaseURL:    get("APP_BASE_URL", "http://localhost:8080"),
		DBDSN:         must("DB_DSN"),
		JWTSecret:     must("JWT_SECRET"),
		JWTExpiresMin: expires,
		SecureCookies: env == "production",

		GoogleClientID: get("GOOGLE_CLIENT_ID", ""),
		GoogleSecret:   get("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirect: get("GOOGLE_REDIRECT_URL", ""),

		RedisAddr:     get("REDIS_ADDR", ""),
		RedisPassword: get("REDIS_PASSWORD", ""),

		BunnyStorageZone:     get("BUNNY_STORAGE_ZONE", ""),
		BunnyStoragePassword: get("BUNNY_STORAGE_PASSWORD", ""),
		BunnyPullZoneURL:     get("BUNNY_PULL_ZONE_URL", ""),
		BunnyStorageHostname: get("BUNNY_STORAGE_HOSTNAME", "storage.bunnycdn.com"),

		HomeSlug:       get("HOME_SLUG", "home"),
		UploadMaxBytes: maxUpload,
	}
}

// GoogleEnabled reports whether Google sign-in is configured.
func (c Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleSecret != "" && c.GoogleRedirect != ""
}

// CDNEnabled reports whether the Bunny storage credentials are present.
func (c Config) CDNEnabled() bool {
	return c.BunnyStorageZone != "" && c.BunnyStoragePassword != "" && c.BunnyPullZoneURL != ""
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
