package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// QUOTA_UNLIMITED marca um plano sem limite de treinos ativos.
const QUOTA_UNLIMITED = -1

type Configuration struct {
	ApiPort string `json:"api_port"`
	LogPath string `json:"log_path"`
	SqlLog  bool   `json:"sql_log"`

	Database  string `json:"database"` // "sqlite3" ou "postgres"
	DbHost    string `json:"db_host"`
	DbPort    string `json:"db_port"`
	DbUser    string `json:"db_user"`
	DbName    string `json:"db_name"`
	DbPass    string `json:"db_pass"`
	DbSSLMode string `json:"db_sslmode"`
	DbPath    string `json:"db_path"` // sqlite3 only

	CorsOrigins []string `json:"cors_origins"`

	// WorkoutQuotas maps a plan slug to the max number of active workouts
	// a student on that plan may hold. QUOTA_UNLIMITED disables the check.
	WorkoutQuotas map[string]int `json:"workout_quotas"`

	Security struct {
		SecretKey       string `json:"secret_key"`
		SessionTTLHours int    `json:"session_ttl_hours"`
		TokenTTLHours   int    `json:"token_ttl_hours"`
		BcryptCost      int    `json:"bcrypt_cost"`
	} `json:"security"`
}

// Get loads the configuration or stops the process, like the rest of the
// bootstrap code does for unrecoverable setup errors.
func Get(path string) Configuration {
	c, err := Load(path)
	if err != nil {
		log.Fatal(err)
	}
	return c
}

// Load reads .env (when present), the JSON file at path (when present) and
// the environment overrides, then fills defaults.
func Load(path string) (Configuration, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: error loading .env file: %v", err)
	}

	var c Configuration
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(b, &c); err != nil {
				return Configuration{}, err
			}
		case os.IsNotExist(err):
			log.Printf("config: %s not found, using defaults", path)
		default:
			return Configuration{}, err
		}
	}

	c.applyEnv()
	c.applyDefaults()
	return c, nil
}

func (c *Configuration) applyEnv() {
	overrides := map[string]*string{
		"API_PORT":   &c.ApiPort,
		"DATABASE":   &c.Database,
		"DB_HOST":    &c.DbHost,
		"DB_PORT":    &c.DbPort,
		"DB_USER":    &c.DbUser,
		"DB_NAME":    &c.DbName,
		"DB_PASS":    &c.DbPass,
		"DB_SSLMODE": &c.DbSSLMode,
		"DB_PATH":    &c.DbPath,
		"SECRET_KEY": &c.Security.SecretKey,
	}
	for key, dst := range overrides {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}

	if v := strings.TrimSpace(os.Getenv("CORS_ORIGINS")); v != "" {
		c.CorsOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				c.CorsOrigins = append(c.CorsOrigins, origin)
			}
		}
	}
	if v := strings.TrimSpace(os.Getenv("SQL_LOG")); v != "" {
		c.SqlLog, _ = strconv.ParseBool(v)
	}
}

func (c *Configuration) applyDefaults() {
	// defaults (pra evitar nil/zero chato)
	if c.ApiPort == "" {
		c.ApiPort = "8080"
	}
	if c.LogPath == "" {
		c.LogPath = "logs/server.log"
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.DbPath == "" {
		c.DbPath = "db/database.db"
	}
	if c.DbSSLMode == "" {
		c.DbSSLMode = "disable"
	}
	if len(c.CorsOrigins) == 0 {
		c.CorsOrigins = []string{"*"}
	}
	if c.WorkoutQuotas == nil {
		c.WorkoutQuotas = DefaultWorkoutQuotas()
	}
	if c.Security.SecretKey == "" {
		c.Security.SecretKey = "CHANGE_ME"
	}
	if c.Security.SessionTTLHours <= 0 {
		c.Security.SessionTTLHours = 24
	}
	if c.Security.TokenTTLHours < 0 {
		c.Security.TokenTTLHours = 0
	}
	if c.Security.BcryptCost <= 0 {
		c.Security.BcryptCost = 10
	}
}

// DefaultWorkoutQuotas is the tier table used when the config file has none.
func DefaultWorkoutQuotas() map[string]int {
	return map[string]int{
		"starter":  4,
		"dumbbell": QUOTA_UNLIMITED,
	}
}
