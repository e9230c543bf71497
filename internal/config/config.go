package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  The allocation knobs are policy, not
// correctness: MaxSeatsPerRequest caps how many seats one booking may ask
// for and AllocRetryAttempts bounds the replanning loop under contention.
type Config struct {
	Env                string // application environment (e.g. "dev", "prod")
	Port               string // HTTP port to listen on
	DBUser             string // database username
	DBPass             string // database password (optional)
	DBHost             string // database host address
	DBPort             string // database port number
	DBName             string // database name
	DBMaxOpenConns     int    // connection pool: max open connections
	DBMaxIdleConns     int    // connection pool: max idle connections
	DBConnMaxLifeMin   int    // connection pool: max connection lifetime in minutes
	JWTSecret          string // secret used to sign JWTs
	AccessTTLMin       int    // access token time-to-live in minutes
	BcryptCost         int    // bcrypt cost for password hashing
	MaxSeatsPerRequest int    // per-request seat cap enforced before planning
	AllocRetryAttempts int    // snapshot/plan/commit rounds before giving up
	SeatRows           int    // coach layout: number of rows to seed
	SeatsPerRow        int    // coach layout: seats per row to seed
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Layout and
// allocation knobs are optional and default to a standard coach
// (rows of 7 seats, up to 7 seats per booking).
func Load() Config {
	return Config{
		Env:                must("APP_ENV"),                   // environment (dev/test/prod)
		Port:               must("APP_PORT"),                  // port to bind the HTTP server
		DBUser:             must("DB_USER"),                   // database user
		DBPass:             os.Getenv("DB_PASS"),              // database password (empty allowed)
		DBHost:             must("DB_HOST"),                   // database host
		DBPort:             must("DB_PORT"),                   // database port
		DBName:             must("DB_NAME"),                   // database name
		DBMaxOpenConns:     intOr("DB_MAX_OPEN_CONNS", 25),    // pool size cap
		DBMaxIdleConns:     intOr("DB_MAX_IDLE_CONNS", 5),     // idle connections kept warm
		DBConnMaxLifeMin:   intOr("DB_CONN_MAX_LIFE_MIN", 30), // recycle connections after this long
		JWTSecret:          must("JWT_SECRET"),                // secret used for signing JWTs
		AccessTTLMin:       mustInt("ACCESS_TOKEN_TTL_MIN"),   // TTL for access tokens in minutes
		BcryptCost:         mustInt("BCRYPT_COST"),            // bcrypt cost factor
		MaxSeatsPerRequest: intOr("MAX_SEATS_PER_REQUEST", 7), // booking size cap
		AllocRetryAttempts: intOr("ALLOC_RETRY_ATTEMPTS", 3),  // allocation retry bound
		SeatRows:           intOr("SEAT_ROWS", 12),            // rows seeded on first start
		SeatsPerRow:        intOr("SEATS_PER_ROW", 7),         // seats per seeded row
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// intOr reads an optional integer variable, returning the default when it
// is unset or malformed.
func intOr(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
