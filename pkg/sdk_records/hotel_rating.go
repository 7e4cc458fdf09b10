package sdk_records

import (
	"time"

	"github.com/mattiabonardi/endor-records/pkg/sdk"
)

const (
	DefaultHotelRatingName     = "Default Hotel Name"
	DefaultHotelRatingRating   = 3
	DefaultHotelRatingCountry  = "Default Country"
	DefaultHotelRatingComments = "Default comments."
)

type HotelRating struct {
	ID       sdk.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name     string       `json:"name" bson:"name"`
	Rating   float64      `json:"rating" bson:"rating"`
	Country  string       `json:"country" bson:"country"`
	Comments string       `json:"comments" bson:"comments"`
}

type HotelRatingPatch struct {
	Name     *string  `json:"name,omitempty" yaml:"name"`
	Rating   *Number  `json:"rating,omitempty" yaml:"rating"`
	Country  *string  `json:"country,omitempty" yaml:"country"`
	Comments *string  `json:"comments,omitempty" yaml:"comments"`
}

func (p HotelRatingPatch) Resolve(_ time.Time) HotelRating {
	return HotelRating{
		Name:     valueOr(p.Name, DefaultHotelRatingName),
		Rating:   numberOr(p.Rating, DefaultHotelRatingRating),
		Country:  valueOr(p.Country, DefaultHotelRatingCountry),
		Comments: valueOr(p.Comments, DefaultHotelRatingComments),
	}
}

func (p HotelRatingPatch) Changes() map[string]any {
	changes := map[string]any{}
	setIfPresent(changes, "name", p.Name)
	setNumberIfPresent(changes, "rating", p.Rating)
	setIfPresent(changes, "country", p.Country)
	setIfPresent(changes, "comments", p.Comments)
	return changes
}

var _ Patch[HotelRating] = HotelRatingPatch{}
