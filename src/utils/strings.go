package utils

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
)

const DATE_FORMAT = "2006-01-02"

func VendorSlug(name string) string {
	return slug.Make(name)
}

// FutureDate validates that a YYYY-MM-DD string is today or later.
func FutureDate(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	d, err := time.ParseInLocation(DATE_FORMAT, value, time.UTC)
	if err != nil {
		return false
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	return !d.Before(today)
}
