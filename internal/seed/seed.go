// Package seed inserts the sample records shipped with the service.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/mattiabonardi/endor-records/internal/repository"
	"github.com/mattiabonardi/endor-records/pkg/sdk_records"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// Document lists the partial records to insert per kind.
type Document struct {
	Users        []sdk_records.UserPatch        `yaml:"users"`
	Blogs        []sdk_records.BlogPatch        `yaml:"blogs"`
	HotelRatings []sdk_records.HotelRatingPatch `yaml:"hotelRatings"`
}

// Repositories groups the targets of a seed run.
type Repositories struct {
	Users        repository.RecordRepository[sdk_records.User]
	Blogs        repository.RecordRepository[sdk_records.Blog]
	HotelRatings repository.RecordRepository[sdk_records.HotelRating]
}

// Parse decodes a seed document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse seed document: %w", err)
	}
	return &doc, nil
}

// Default returns the embedded seed document.
func Default() (*Document, error) {
	return Parse(defaultSeed)
}

// Run inserts every record of doc, applying registry defaults, and returns
// how many records were inserted. It stops at the first failure.
func Run(ctx context.Context, doc *Document, repos Repositories, now time.Time) (int, error) {
	inserted := 0

	n, err := insertAll(ctx, repos.Users, doc.Users, now)
	inserted += n
	if err != nil {
		return inserted, fmt.Errorf("failed to seed %s: %w", sdk_records.Users.Collection, err)
	}

	n, err = insertAll(ctx, repos.Blogs, doc.Blogs, now)
	inserted += n
	if err != nil {
		return inserted, fmt.Errorf("failed to seed %s: %w", sdk_records.Blogs.Collection, err)
	}

	n, err = insertAll(ctx, repos.HotelRatings, doc.HotelRatings, now)
	inserted += n
	if err != nil {
		return inserted, fmt.Errorf("failed to seed %s: %w", sdk_records.HotelRatings.Collection, err)
	}

	return inserted, nil
}

func insertAll[R any, P sdk_records.Patch[R]](ctx context.Context, repo repository.RecordRepository[R], patches []P, now time.Time) (int, error) {
	for i, patch := range patches {
		if _, err := repo.Insert(ctx, patch.Resolve(now)); err != nil {
			return i, err
		}
	}
	return len(patches), nil
}
