package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }

func TestListingPayload_Validate(t *testing.T) {
	ok := ListingPayload{Title: "Cabin", Price: floatPtr(100)}
	assert.Empty(t, ok.Validate())

	noPrice := ListingPayload{Title: "Cabin"}
	assert.Empty(t, noPrice.Validate(), "price is optional")

	noTitle := ListingPayload{Price: floatPtr(100)}
	errs := noTitle.Validate()
	assert.Len(t, errs, 1)
	assert.Equal(t, "title", errs[0].Field)

	blankTitle := ListingPayload{Title: "   "}
	assert.Len(t, blankTitle.Validate(), 1)

	negative := ListingPayload{Title: "Cabin", Price: floatPtr(-1)}
	errs = negative.Validate()
	assert.Len(t, errs, 1)
	assert.Equal(t, "price", errs[0].Field)
}

func TestReviewPayload_Validate(t *testing.T) {
	assert.Empty(t, ReviewPayload{Rating: 1, Comment: "ok"}.Validate())
	assert.Empty(t, ReviewPayload{Rating: 5, Comment: "ok"}.Validate())

	for _, rating := range []int{0, -1, 6} {
		errs := ReviewPayload{Rating: rating, Comment: "ok"}.Validate()
		assert.Len(t, errs, 1, "rating %d", rating)
		assert.Equal(t, "rating", errs[0].Field)
	}

	errs := ReviewPayload{Rating: 3, Comment: " "}.Validate()
	assert.Len(t, errs, 1)
	assert.Equal(t, "comment", errs[0].Field)

	errs = ReviewPayload{Rating: 9, Comment: ""}.Validate()
	assert.Len(t, errs, 2)
}

func TestJoin(t *testing.T) {
	errs := []FieldError{
		{Field: "rating", Message: "rating must be between 1 and 5"},
		{Field: "comment", Message: "comment is required"},
	}
	assert.Equal(t, "rating must be between 1 and 5,comment is required", Join(errs))
	assert.Equal(t, "", Join(nil))
}
