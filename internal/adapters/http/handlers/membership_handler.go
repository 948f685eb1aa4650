package handlers

import (
	"dispensary-loyalty/internal/adapters/http/middleware"
	"dispensary-loyalty/internal/core/services"
	"dispensary-loyalty/internal/pkg/pagination"
	"dispensary-loyalty/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MembershipHandler handles visit, signup, membership and redemption endpoints
type MembershipHandler struct {
	memberships *services.MembershipService
	visits      *services.VisitService
	log         *zap.Logger
}

// NewMembershipHandler creates a new membership handler
func NewMembershipHandler(memberships *services.MembershipService, visits *services.VisitService, log *zap.Logger) *MembershipHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &MembershipHandler{
		memberships: memberships,
		visits:      visits,
		log:         log,
	}
}

// SignupRequest represents in-store signup request body
type SignupRequest struct {
	UserID uint `json:"user_id"`
}

// RedeemRequest represents redemption request body
type RedeemRequest struct {
	DealID uint `json:"deal_id"`
}

// RecordVisit handles a patient check-in
// @Summary Record a visit
// @Description Awards visit points at a dispensary, creating the membership on first visit
// @Tags Memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Dispensary ID"
// @Success 200 {object} response.Response{data=domain.VisitOutcome}
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /dispensaries/{id}/visits [post]
func (h *MembershipHandler) RecordVisit(c *fiber.Ctx) error {
	dispensaryID, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid dispensary ID")
	}

	outcome, err := h.visits.RecordVisit(c.Context(), middleware.CurrentUserID(c), dispensaryID)
	if err != nil {
		return respondError(c, h.log, err, "record visit")
	}

	return response.Success(c, "Visit recorded", outcome)
}

// Signup handles in-store signup by dispensary staff
// @Summary In-store signup
// @Description Creates a membership with sign-up points for a patient registered at the counter (staff only)
// @Tags Memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Dispensary ID"
// @Param body body SignupRequest true "Patient"
// @Success 201 {object} response.Response{data=domain.Membership}
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /dispensaries/{id}/signup [post]
func (h *MembershipHandler) Signup(c *fiber.Ctx) error {
	dispensaryID, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid dispensary ID")
	}

	var req SignupRequest
	if err := c.BodyParser(&req); err != nil || req.UserID == 0 {
		return response.BadRequest(c, "user_id is required")
	}

	membership, err := h.memberships.CreateForInStoreSignup(c.Context(), req.UserID, dispensaryID)
	if err != nil {
		return respondError(c, h.log, err, "sign up patient")
	}

	return response.Created(c, "Membership created", membership)
}

// GetMembership handles reading the caller's membership at a dispensary
// @Summary Get membership
// @Tags Memberships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Dispensary ID"
// @Success 200 {object} response.Response{data=services.MembershipView}
// @Failure 404 {object} response.Response
// @Router /dispensaries/{id}/membership [get]
func (h *MembershipHandler) GetMembership(c *fiber.Ctx) error {
	dispensaryID, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid dispensary ID")
	}

	view, err := h.memberships.GetMembership(c.Context(), middleware.CurrentUserID(c), dispensaryID)
	if err != nil {
		return respondError(c, h.log, err, "get membership")
	}

	return response.Success(c, "Membership retrieved successfully", view)
}

// ListDeals handles listing a dispensary's active deals
// @Summary List deals
// @Tags Deals
// @Produce json
// @Param id path int true "Dispensary ID"
// @Success 200 {object} response.Response{data=[]domain.Deal}
// @Failure 404 {object} response.Response
// @Router /dispensaries/{id}/deals [get]
func (h *MembershipHandler) ListDeals(c *fiber.Ctx) error {
	dispensaryID, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid dispensary ID")
	}

	deals, err := h.memberships.ListDeals(c.Context(), dispensaryID)
	if err != nil {
		return respondError(c, h.log, err, "list deals")
	}

	return response.Success(c, "Deals retrieved successfully", deals)
}

// ListMemberships handles listing all of the caller's memberships
// @Summary List my memberships
// @Tags Memberships
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]services.MembershipView}
// @Router /memberships [get]
func (h *MembershipHandler) ListMemberships(c *fiber.Ctx) error {
	views, err := h.memberships.ListMemberships(c.Context(), middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, h.log, err, "list memberships")
	}

	return response.Success(c, "Memberships retrieved successfully", views)
}

// Redeem handles spending points on a deal
// @Summary Redeem a deal
// @Tags Redemptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Membership ID"
// @Param body body RedeemRequest true "Deal"
// @Success 201 {object} response.Response{data=domain.Redemption}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /memberships/{id}/redemptions [post]
func (h *MembershipHandler) Redeem(c *fiber.Ctx) error {
	membershipID, ok := h.ownedMembership(c)
	if !ok {
		return nil
	}

	var req RedeemRequest
	if err := c.BodyParser(&req); err != nil || req.DealID == 0 {
		return response.BadRequest(c, "deal_id is required")
	}

	redemption, err := h.visits.Redeem(c.Context(), membershipID, req.DealID)
	if err != nil {
		return respondError(c, h.log, err, "redeem deal")
	}

	return response.Created(c, "Deal redeemed", redemption)
}

// ListRedemptions handles the caller's redemption history for a membership
// @Summary List redemptions
// @Tags Redemptions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Membership ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response{data=pagination.Response}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /memberships/{id}/redemptions [get]
func (h *MembershipHandler) ListRedemptions(c *fiber.Ctx) error {
	membershipID, ok := h.ownedMembership(c)
	if !ok {
		return nil
	}

	params := pagination.GetParams(c)
	items, total, err := h.memberships.ListRedemptions(c.Context(), membershipID, params.Offset, params.Limit)
	if err != nil {
		return respondError(c, h.log, err, "list redemptions")
	}

	return response.Success(c, "Redemptions retrieved successfully", pagination.NewResponse(items, params, total))
}

// ownedMembership resolves the :id membership and checks that the caller
// owns it. On failure the response is already written.
func (h *MembershipHandler) ownedMembership(c *fiber.Ctx) (uint, bool) {
	membershipID, ok := paramID(c, "id")
	if !ok {
		_ = response.BadRequest(c, "Invalid membership ID")
		return 0, false
	}

	view, err := h.memberships.GetMembershipByID(c.Context(), membershipID)
	if err != nil {
		_ = respondError(c, h.log, err, "get membership")
		return 0, false
	}
	if view.UserID != middleware.CurrentUserID(c) {
		_ = response.Forbidden(c, "Membership belongs to another user")
		return 0, false
	}
	return membershipID, true
}
