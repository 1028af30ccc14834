package validation

import "strings"

// FieldError is one failed constraint on an incoming payload. Expected input
// errors are values, not exceptions: handlers reject on a non-empty slice.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Join flattens field errors into the single message used as the 400 body.
func Join(errs []FieldError) string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, ",")
}

// ListingPayload is the typed create/update listing body.
type ListingPayload struct {
	Title         string   `json:"title" form:"title"`
	Description   string   `json:"description" form:"description"`
	Price         *float64 `json:"price" form:"price"`
	Location      string   `json:"location" form:"location"`
	Country       string   `json:"country" form:"country"`
	ImageFilename string   `json:"image_filename" form:"image_filename"`
	ImageURL      string   `json:"image_url" form:"image_url"`
}

// Validate checks the structural constraints of a listing payload.
func (p ListingPayload) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(p.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	}
	if p.Price != nil && *p.Price < 0 {
		errs = append(errs, FieldError{Field: "price", Message: "price must not be negative"})
	}
	return errs
}

// ReviewPayload is the typed add-review body.
type ReviewPayload struct {
	Rating  int    `json:"rating" form:"rating"`
	Comment string `json:"comment" form:"comment"`
}

// Validate checks rating range and comment presence.
func (p ReviewPayload) Validate() []FieldError {
	var errs []FieldError
	if p.Rating < 1 || p.Rating > 5 {
		errs = append(errs, FieldError{Field: "rating", Message: "rating must be between 1 and 5"})
	}
	if strings.TrimSpace(p.Comment) == "" {
		errs = append(errs, FieldError{Field: "comment", Message: "comment is required"})
	}
	return errs
}
