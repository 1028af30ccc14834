package listings

import (
	"errors"

	"wanderlust-backend/internal/middleware"
	"wanderlust-backend/internal/models"
	"wanderlust-backend/internal/pkg/response"
	"wanderlust-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers exposes the listing routes. Mutations answer with 302 redirects
// and a flash message; reads return the standard success envelope.
type Handlers struct {
	Service *Service
}

// Index GET /listings — public.
func (h *Handlers) Index(c *fiber.Ctx) error {
	listings, err := h.Service.GetAll(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, "All listings", listings, fiber.Map{"flash": middleware.PopFlash(c)})
}

// NewForm GET /listings/new — auth required (gated in app wiring).
func (h *Handlers) NewForm(c *fiber.Ctx) error {
	return response.Success(c, "New listing", nil, fiber.Map{"flash": middleware.PopFlash(c)})
}

// Create POST /listings — validate, persist, flash, redirect to index.
func (h *Handlers) Create(c *fiber.Ctx) error {
	payload, err := parseListingPayload(c)
	if err != nil {
		return err
	}

	if _, err := h.Service.Create(c.Context(), payload); err != nil {
		return err
	}
	middleware.AddFlash(c, "success", "Listing created successfully!")
	return c.Redirect("/listings", fiber.StatusFound)
}

// Show GET /listings/:id — public; a missing listing redirects to the index
// with a flash error instead of a bare 404.
func (h *Handlers) Show(c *fiber.Ctx) error {
	listing, redirected, err := h.fetchListing(c)
	if redirected || err != nil {
		return err
	}
	return response.Success(c, "Listing", listing, fiber.Map{"flash": middleware.PopFlash(c)})
}

// EditForm GET /listings/:id/edit — the update form, pre-filled.
func (h *Handlers) EditForm(c *fiber.Ctx) error {
	listing, redirected, err := h.fetchListing(c)
	if redirected || err != nil {
		return err
	}
	return response.Success(c, "Edit listing", listing, fiber.Map{"flash": middleware.PopFlash(c)})
}

// Update PUT /listings/:id — full field replacement, redirect to show.
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, ok := parseListingID(c)
	if !ok {
		return notFoundRedirect(c)
	}
	payload, err := parseListingPayload(c)
	if err != nil {
		return err
	}

	if _, err := h.Service.Update(c.Context(), id, payload); err != nil {
		if errors.Is(err, ErrListingNotFound) {
			return notFoundRedirect(c)
		}
		return err
	}
	middleware.AddFlash(c, "success", "Listing updated successfully!")
	return c.Redirect("/listings/"+id.String(), fiber.StatusFound)
}

// Delete DELETE /listings/:id — cascades to the listing's reviews.
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, ok := parseListingID(c)
	if !ok {
		return notFoundRedirect(c)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, ErrListingNotFound) {
			return notFoundRedirect(c)
		}
		return err
	}
	middleware.AddFlash(c, "success", "Listing deleted successfully!")
	return c.Redirect("/listings", fiber.StatusFound)
}

// fetchListing loads the :id listing; on a bad or unknown id it performs the
// flash+redirect itself and reports redirected=true.
func (h *Handlers) fetchListing(c *fiber.Ctx) (listing *models.Listing, redirected bool, err error) {
	id, ok := parseListingID(c)
	if !ok {
		return nil, true, notFoundRedirect(c)
	}
	l, err := h.Service.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrListingNotFound) {
			return nil, true, notFoundRedirect(c)
		}
		return nil, false, err
	}
	return l, false, nil
}

func parseListingID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

func parseListingPayload(c *fiber.Ctx) (validation.ListingPayload, error) {
	var payload validation.ListingPayload
	if err := c.BodyParser(&payload); err != nil {
		return payload, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := payload.Validate(); len(errs) > 0 {
		return payload, fiber.NewError(fiber.StatusBadRequest, validation.Join(errs))
	}
	return payload, nil
}

func notFoundRedirect(c *fiber.Ctx) error {
	middleware.AddFlash(c, "error", "Listing not found!")
	return c.Redirect("/listings", fiber.StatusFound)
}
