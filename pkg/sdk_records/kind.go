// Package sdk_records declares the stored record types, their partial forms
// and the defaults applied when a field is omitted on create.
package sdk_records

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Patch is the partial form of a record R. Every field is optional.
type Patch[R any] interface {
	// Resolve fills every absent field with its default.
	Resolve(now time.Time) R
	// Changes returns the present, updatable fields keyed by stored field name.
	Changes() map[string]any
}

// Kind describes how a record type is exposed and stored.
type Kind struct {
	// Name is the lower-case singular used in error messages ("user").
	Name string
	// Display is the capitalised name used in messages ("User").
	Display string
	// ResponseKey holds the record in the create response.
	ResponseKey string
	// Path is the URL segment the collection is mounted on.
	Path string
	// Collection is the MongoDB collection name.
	Collection string
}

var (
	Users = Kind{
		Name:        "user",
		Display:     "User",
		ResponseKey: "user",
		Path:        "users",
		Collection:  "users",
	}
	Blogs = Kind{
		Name:        "blog",
		Display:     "Blog",
		ResponseKey: "blog",
		Path:        "blogs",
		Collection:  "blogs",
	}
	HotelRatings = Kind{
		Name:        "rating",
		Display:     "Rating",
		ResponseKey: "rating",
		Path:        "hotelRatings",
		Collection:  "hotelratings",
	}
)

// timestamp normalises t to what the store keeps: UTC, millisecond precision.
func timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// Number is a numeric input field. Besides JSON numbers it takes numeric
// strings such as "30", which the store would coerce anyway.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = Number(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("cannot use %s as a number", data)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("cannot use %q as a number", s)
	}
	*n = Number(f)
	return nil
}

func numberOr(p *Number, def float64) float64 {
	if p == nil {
		return def
	}
	return float64(*p)
}

func setNumberIfPresent(changes map[string]any, key string, p *Number) {
	if p != nil {
		changes[key] = float64(*p)
	}
}

func setIfPresent[T any](changes map[string]any, key string, p *T) {
	if p != nil {
		changes[key] = *p
	}
}
