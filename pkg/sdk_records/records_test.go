package sdk_records_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/AlekSi/pointer"
	"github.com/mattiabonardi/endor-records/pkg/sdk_records"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2024, 3, 14, 15, 9, 26, 535897932, time.FixedZone("CET", 3600))

func number(f float64) *sdk_records.Number {
	n := sdk_records.Number(f)
	return &n
}

func TestUserPatchResolveDefaults(t *testing.T) {
	user := sdk_records.UserPatch{}.Resolve(now)

	assert.Equal(t, sdk_records.User{
		Name:        "Default Name",
		Email:       "default@example.com",
		Username:    "defaultUsername",
		Password:    "defaultPassword",
		Age:         30,
		Phone:       "+1234567890",
		Nationality: "Default Nationality",
	}, user)
}

func TestUserPatchResolveKeepsProvidedFields(t *testing.T) {
	user := sdk_records.UserPatch{Name: pointer.ToString("Ana"), Age: number(0)}.Resolve(now)

	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, 0.0, user.Age, "explicit zero is not replaced by the default")
	assert.Equal(t, "default@example.com", user.Email)
	assert.True(t, user.ID.IsEmpty(), "identifiers are assigned by the store")
}

func TestUserPatchChanges(t *testing.T) {
	assert.Empty(t, sdk_records.UserPatch{}.Changes())

	changes := sdk_records.UserPatch{Email: pointer.ToString("ana@example.com"), Age: number(41)}.Changes()
	assert.Equal(t, map[string]any{"email": "ana@example.com", "age": 41.0}, changes)
}

func TestBlogPatchResolve(t *testing.T) {
	t.Run("defaults stamp creation time", func(t *testing.T) {
		blog := sdk_records.BlogPatch{}.Resolve(now)

		assert.Equal(t, 0.0, blog.AuthorID)
		assert.Equal(t, "Default Blog Title", blog.Title)
		assert.Equal(t, "Default blog content.", blog.Content)
		assert.Equal(t, time.UTC, blog.CreatedDate.Location())
		assert.True(t, blog.CreatedDate.Equal(now.Truncate(time.Millisecond)))
	})

	t.Run("provided creation time is kept", func(t *testing.T) {
		created := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
		blog := sdk_records.BlogPatch{AuthorID: number(12), CreatedDate: &created}.Resolve(now)

		assert.Equal(t, 12.0, blog.AuthorID)
		assert.True(t, blog.CreatedDate.Equal(created))
	})
}

func TestBlogPatchChangesExcludeCreatedDate(t *testing.T) {
	created := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	changes := sdk_records.BlogPatch{Title: pointer.ToString("New Title"), CreatedDate: &created}.Changes()

	assert.Equal(t, map[string]any{"title": "New Title"}, changes)
}

func TestHotelRatingPatch(t *testing.T) {
	rating := sdk_records.HotelRatingPatch{Rating: number(4.7)}.Resolve(now)

	assert.Equal(t, sdk_records.HotelRating{
		Name:     "Default Hotel Name",
		Rating:   4.7,
		Country:  "Default Country",
		Comments: "Default comments.",
	}, rating)

	changes := sdk_records.HotelRatingPatch{Country: pointer.ToString("France")}.Changes()
	assert.Equal(t, map[string]any{"country": "France"}, changes)
}

func TestKindDescriptors(t *testing.T) {
	assert.Equal(t, "users", sdk_records.Users.Path)
	assert.Equal(t, "blogs", sdk_records.Blogs.Path)
	assert.Equal(t, "hotelRatings", sdk_records.HotelRatings.Path)
	assert.Equal(t, "Rating", sdk_records.HotelRatings.Display)
	assert.Equal(t, "hotelratings", sdk_records.HotelRatings.Collection)
}

func TestNumberUnmarshalJSON(t *testing.T) {
	for body, expected := range map[string]float64{
		`{"age":30}`:     30,
		`{"age":30.5}`:   30.5,
		`{"age":"30"}`:   30,
		`{"age":" 2.5"}`: 2.5,
		`{"age":-1e2}`:   -100,
	} {
		var patch sdk_records.UserPatch
		if assert.NoError(t, json.Unmarshal([]byte(body), &patch), body) && assert.NotNil(t, patch.Age, body) {
			assert.Equal(t, expected, float64(*patch.Age), body)
		}
	}

	for _, body := range []string{`{"age":"thirty"}`, `{"age":""}`, `{"age":"NaN"}`, `{"age":true}`, `{"age":[30]}`} {
		var patch sdk_records.UserPatch
		assert.Error(t, json.Unmarshal([]byte(body), &patch), body)
	}

	var patch sdk_records.UserPatch
	assert.NoError(t, json.Unmarshal([]byte(`{"age":null}`), &patch))
	assert.Nil(t, patch.Age)
}

func TestExplicitNullIsAbsent(t *testing.T) {
	var patch sdk_records.UserPatch
	assert.NoError(t, json.Unmarshal([]byte(`{"name":null,"email":"ana@example.com"}`), &patch))

	assert.Equal(t, map[string]any{"email": "ana@example.com"}, patch.Changes())
	assert.Equal(t, "Default Name", patch.Resolve(now).Name)
}
