package controller

import (
	"errors"

	"civic-bridge-be/internal/pkg/serverutils"
	"civic-bridge-be/internal/service"
	"civic-bridge-be/pkg/navigation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type viewData struct {
	View string `json:"view"`
}

func callerOf(ctx *fiber.Ctx) service.Caller {
	s := serverutils.CurrentSession(ctx)
	return service.Caller{Class: s.Class, UserID: s.UserID, GuestID: s.GuestID}
}

func sessionID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}
	return id, nil
}

// writeError maps service errors to statuses. Unknown errors go to the
// error handler middleware as 500.
func writeError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrGuestLocked), errors.Is(err, service.ErrWebformRequiresAccount):
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponseWithData(
			fiber.StatusForbidden, err.Error(), viewData{View: navigation.ViewUpgrade.String()}))
	case errors.Is(err, service.ErrOnCooldown):
		return fail(ctx, fiber.StatusForbidden, err)
	case errors.Is(err, service.ErrRepresentativeNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return fail(ctx, fiber.StatusNotFound, err)
	case errors.Is(err, service.ErrAlreadySent):
		return fail(ctx, fiber.StatusConflict, err)
	case errors.Is(err, service.ErrAttachmentTooLarge):
		return fail(ctx, fiber.StatusRequestEntityTooLarge, err)
	case errors.Is(err, service.ErrNoRepresentatives),
		errors.Is(err, service.ErrStreetNumberRequired),
		errors.Is(err, service.ErrInvalidAddress),
		errors.Is(err, service.ErrAddressRequired),
		errors.Is(err, service.ErrNotEnoughContext),
		errors.Is(err, service.ErrNoDraft),
		errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrUnsupportedAttachment):
		return fail(ctx, fiber.StatusUnprocessableEntity, err)
	case errors.Is(err, service.ErrInvalidView), errors.Is(err, service.ErrUnsupportedProvider):
		return fail(ctx, fiber.StatusBadRequest, err)
	case errors.Is(err, service.ErrAutocompleteDisabled):
		return fail(ctx, fiber.StatusServiceUnavailable, err)
	}
	return err
}

func fail(ctx *fiber.Ctx, status int, err error) error {
	return ctx.Status(status).JSON(serverutils.ErrorResponse(status, err.Error()))
}

// sendPDF writes a rendered document as a download.
func sendPDF(ctx *fiber.Ctx, doc *service.Document) error {
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+doc.FileName+`"`)
	return ctx.Send(doc.Content)
}
