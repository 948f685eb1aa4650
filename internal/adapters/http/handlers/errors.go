package handlers

import (
	"errors"
	"strconv"

	"dispensary-loyalty/internal/core/domain"
	"dispensary-loyalty/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// errorStatus maps domain errors to an HTTP status and response code
var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrInsufficientPoints, fiber.StatusUnprocessableEntity, "insufficient_points"},
	{domain.ErrInvalidInvitationState, fiber.StatusUnprocessableEntity, "invalid_invitation_state"},
	{domain.ErrSelfInvitation, fiber.StatusUnprocessableEntity, "self_invitation"},
	{domain.ErrUnresolvedUser, fiber.StatusForbidden, "unresolved_user"},
	{domain.ErrDuplicateMembership, fiber.StatusConflict, "duplicate_membership"},
	{domain.ErrDuplicateInvitation, fiber.StatusConflict, "duplicate_invitation"},
	{domain.ErrMembershipNotFound, fiber.StatusNotFound, "membership_not_found"},
	{domain.ErrDealNotFound, fiber.StatusNotFound, "deal_not_found"},
	{domain.ErrDispensaryNotFound, fiber.StatusNotFound, "dispensary_not_found"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "user_not_found"},
	{domain.ErrNoDispensaries, fiber.StatusNotFound, "no_dispensaries"},
}

// respondError maps domain errors onto the response envelope. Anything
// unrecognized is logged and answered with 500.
func respondError(c *fiber.Ctx, log *zap.Logger, err error, action string) error {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return response.Fail(c, e.status, e.code, err.Error())
		}
	}

	log.Error("request failed",
		zap.String("action", action),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return response.InternalServerError(c, "Failed to "+action)
}

// paramID parses a positive numeric path parameter
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
