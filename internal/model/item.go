package model

import (
	"fmt"
	"sort"
	"time"
)

// Item represents a single grocery item in a user's inventory.
// Expiration dates are date-only strings; no timezone is stored.
type Item struct {
	ID             string    `json:"id"`
	OwnerID        int64     `json:"-"`
	Name           string    `json:"name"`
	Quantity       int       `json:"quantity"`
	Unit           string    `json:"unit"`
	Category       string    `json:"category"`
	ExpirationDate string    `json:"expiration_date"`
	ImageMime      string    `json:"image_mime,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Units.
const (
	UnitPieces     = "pcs"
	UnitKilogram   = "kg"
	UnitGram       = "g"
	UnitLiter      = "l"
	UnitMilliliter = "ml"
	UnitOunce      = "oz"
	UnitPound      = "lb"
)

// DefaultUnit is used when no unit is supplied.
const DefaultUnit = UnitPieces

// Units lists the accepted quantity units.
var Units = []string{UnitPieces, UnitKilogram, UnitGram, UnitLiter, UnitMilliliter, UnitOunce, UnitPound}

// Categories lists the accepted item categories.
var Categories = []string{
	"Vegetables", "Fruits", "Dairy", "Grains", "Meat", "Beverages", "Snacks", "Other",
}

// ValidUnit reports whether u is an accepted unit.
func ValidUnit(u string) bool {
	for _, unit := range Units {
		if u == unit {
			return true
		}
	}
	return false
}

// ValidCategory reports whether c is an accepted category.
func ValidCategory(c string) bool {
	for _, cat := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// DateLayout is the wire format for expiration dates.
const DateLayout = "2006-01-02"

// ParseDate parses a date-only string. Malformed input is an error, never
// a silently-wrong comparison value.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return d, nil
}

// Today returns the current date truncated to date-only UTC, suitable for
// comparison against parsed expiration dates.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Urgency classifies how soon an item expires.
type Urgency string

// Urgency levels, most to least severe.
const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyLow      Urgency = "low"
)

// DaysUntil returns the number of days from today until date. Both values
// are date-only, so the difference is an exact whole number of days.
// Expired items yield a non-positive result.
func DaysUntil(date, today time.Time) int {
	return int(date.Sub(today).Hours() / 24)
}

// UrgencyFor classifies a days-until-expiration count. Already-expired
// items classify the same as those expiring within a day.
func UrgencyFor(daysLeft int) Urgency {
	switch {
	case daysLeft <= 1:
		return UrgencyCritical
	case daysLeft <= 3:
		return UrgencyHigh
	case daysLeft <= 7:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// DefaultExpiringHorizonDays is the default window for ExpiringWithin.
const DefaultExpiringHorizonDays = 7

// ExpiringWithin filters items to those expiring between today and
// today+horizonDays, inclusive on both ends. Already-expired items are
// excluded. The result is sorted by expiration date, nearest first.
func ExpiringWithin(items []Item, today time.Time, horizonDays int) ([]Item, error) {
	cutoff := today.AddDate(0, 0, horizonDays)

	var expiring []Item
	for _, item := range items {
		date, err := ParseDate(item.ExpirationDate)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", item.ID, err)
		}
		if date.Before(today) || date.After(cutoff) {
			continue
		}
		expiring = append(expiring, item)
	}

	sort.SliceStable(expiring, func(i, j int) bool {
		return expiring[i].ExpirationDate < expiring[j].ExpirationDate
	})
	return expiring, nil
}

// Expired filters items to those whose expiration date is strictly before
// today. An item expiring today is not yet expired.
func Expired(items []Item, today time.Time) ([]Item, error) {
	var expired []Item
	for _, item := range items {
		date, err := ParseDate(item.ExpirationDate)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", item.ID, err)
		}
		if date.Before(today) {
			expired = append(expired, item)
		}
	}
	return expired, nil
}
