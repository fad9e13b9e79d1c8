package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host            string
		Port            string
		ShutdownTimeout time.Duration
	}

	MongoConfig struct {
		URL      string
		Database string
		Timeout  time.Duration
	}

	Config struct {
		Debug    bool
		TestMode bool
		Env      string
		AppName  string
		Build    string // code version, set at deploy time

		// SecretKey signs session tokens. Loaded once at startup and never
		// rotated at runtime.
		SecretKey          string
		JWTExpirationDelta time.Duration

		DefaultFromEmail mail.Address
		SendgridAPIKey   string
		RollbarToken     string

		Server ServerConfig
		Mongo  MongoConfig
	}
)

func (c ServerConfig) Address() string { return c.Host + ":" + c.Port }

// NewConfig loads the process configuration from the environment (and an
// optional config/.env.<env> file) exactly once. The returned Config is
// treated as immutable and passed to constructors.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "BuildBytes LMS")
	v.SetDefault("build", "localdev")
	v.SetDefault("secretKey", "q2w)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("jwtExpirationHours", 24)
	v.SetDefault("serverHost", "0.0.0.0")
	v.SetDefault("serverPort", "8000")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("mongoUrl", "mongodb://localhost:27017")
	v.SetDefault("mongoDbName", "buildbytes")
	v.SetDefault("mongoTimeout", 10*time.Second)

	env := os.Getenv("ENV") // DEV (default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Debug:              v.GetBool("debug"),
		TestMode:           env == "TEST",
		Env:                env,
		AppName:            v.GetString("appName"),
		Build:              v.GetString("build"),
		SecretKey:          v.GetString("secretKey"),
		JWTExpirationDelta: time.Duration(v.GetInt("jwtExpirationHours")) * time.Hour,
		DefaultFromEmail:   mail.Address{Address: v.GetString("defaultFromEmail")},
		SendgridAPIKey:     v.GetString("sendgridApiKey"),
		RollbarToken:       v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:            v.GetString("serverHost"),
			Port:            v.GetString("serverPort"),
			ShutdownTimeout: v.GetDuration("serverShutdownTimeout"),
		},
		Mongo: MongoConfig{
			URL:      v.GetString("mongoUrl"),
			Database: v.GetString("mongoDbName"),
			Timeout:  v.GetDuration("mongoTimeout"),
		},
	}
}
