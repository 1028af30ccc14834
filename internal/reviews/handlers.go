package reviews

import (
	"errors"

	"wanderlust-backend/internal/listings"
	"wanderlust-backend/internal/middleware"
	"wanderlust-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers exposes the review sub-resource routes under /listings/:id.
type Handlers struct {
	Service *Service
}

// Add POST /listings/:id/reviews — validate, persist, redirect to the parent.
func (h *Handlers) Add(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return listingNotFoundRedirect(c)
	}

	var payload validation.ReviewPayload
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := payload.Validate(); len(errs) > 0 {
		return fiber.NewError(fiber.StatusBadRequest, validation.Join(errs))
	}

	if _, err := h.Service.Add(c.Context(), listingID, payload); err != nil {
		if errors.Is(err, listings.ErrListingNotFound) {
			return listingNotFoundRedirect(c)
		}
		return err
	}
	middleware.AddFlash(c, "success", "Review added successfully!")
	return c.Redirect("/listings/"+listingID.String(), fiber.StatusFound)
}

// Delete DELETE /listings/:id/reviews/:reviewId — redirect to the parent
// either way; only the flash differs when the review was not the listing's.
func (h *Handlers) Delete(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return listingNotFoundRedirect(c)
	}
	reviewID, err := uuid.Parse(c.Params("reviewId"))
	if err != nil {
		middleware.AddFlash(c, "error", ErrReviewNotFound.Error())
		return c.Redirect("/listings/"+listingID.String(), fiber.StatusFound)
	}

	if err := h.Service.Delete(c.Context(), listingID, reviewID); err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			middleware.AddFlash(c, "error", ErrReviewNotFound.Error())
			return c.Redirect("/listings/"+listingID.String(), fiber.StatusFound)
		}
		return err
	}
	middleware.AddFlash(c, "success", "Review deleted successfully!")
	return c.Redirect("/listings/"+listingID.String(), fiber.StatusFound)
}

func listingNotFoundRedirect(c *fiber.Ctx) error {
	middleware.AddFlash(c, "error", "Listing not found!")
	return c.Redirect("/listings", fiber.StatusFound)
}
