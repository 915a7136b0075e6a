package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	return os.Getenv(key)
}

// SchedulingConfig holds the tunable durations of the booking engine.
// Read once at startup, read-only afterwards.
type SchedulingConfig struct {
	AppointmentDuration time.Duration
	MinBookLead         time.Duration
	MinCancelLead       time.Duration
	MaxOutstanding      int
}

const (
	defaultAppointmentMinutes = 25
	defaultBookLeadMinutes    = 30
	defaultCancelLeadMinutes  = 30
	defaultMaxOutstanding     = 2
)

func Scheduling() SchedulingConfig {
	return SchedulingConfig{
		AppointmentDuration: minutes("APPOINTMENT_DURATION", defaultAppointmentMinutes),
		MinBookLead:         minutes("MIN_BOOK_LEAD", defaultBookLeadMinutes),
		MinCancelLead:       minutes("MIN_CANCEL_LEAD", defaultCancelLeadMinutes),
		MaxOutstanding:      integer("MAX_OUTSTANDING_APPOINTMENTS_PER_USER", defaultMaxOutstanding),
	}
}

func minutes(key string, fallback int) time.Duration {
	return time.Duration(integer(key, fallback)) * time.Minute
}

func integer(key string, fallback int) int {
	raw := Config(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid value %q for %s, using default %d", raw, key, fallback)
		return fallback
	}
	return n
}
