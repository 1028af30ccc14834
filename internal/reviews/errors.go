package reviews

import "errors"

var ErrReviewNotFound = errors.New("Review not found")
