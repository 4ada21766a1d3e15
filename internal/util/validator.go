package util

import (
	"fmt"
	"regexp"
	"time"
)

var phoneRe = regexp.MustCompile(`^[6-9]\d{9}$`)

// ValidateAmount checks that a currency amount is positive and sane.
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %v", amount)
	}
	if amount >= 10000000 {
		return fmt.Errorf("amount too large, got %v", amount)
	}
	return nil
}

// ValidateDate checks a YYYY-MM-DD date string.
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}

// ValidateShift checks a collection shift value.
func ValidateShift(shift string) error {
	if shift != "morning" && shift != "evening" {
		return fmt.Errorf("shift must be morning or evening, got %q", shift)
	}
	return nil
}

// ValidatePaymentMode checks a payment mode value.
func ValidatePaymentMode(mode string) error {
	switch mode {
	case "cash", "upi", "bank", "cheque":
		return nil
	}
	return fmt.Errorf("unknown payment mode %q", mode)
}

// ValidatePhone checks a 10-digit Indian mobile number.
func ValidatePhone(phone string) error {
	if !phoneRe.MatchString(phone) {
		return fmt.Errorf("invalid phone number %q", phone)
	}
	return nil
}
