package config

import (
	"fmt"
	"os"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

// Dates are stored the way the booking calendar renders them ("Jan 2, 2006");
// request bodies may also carry ISO dates. See utils.ParseDate.
const DATE_STORE_FORMAT = "Jan 2, 2006"
const DATE_INPUT_FORMAT = "2006-01-02"
const TIME_PARSE_FORMAT = "15:04"

const BOOKING_ID_PREFIX = "JCR01"
const BOOKING_ID_SEED = "JCR010001"

// User ID with ownership-check bypass on mutating routes.
const SUPER_ADMIN_ID uint = 1
