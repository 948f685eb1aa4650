package handlers

import (
	"dispensary-loyalty/internal/adapters/http/middleware"
	"dispensary-loyalty/internal/core/services"
	"dispensary-loyalty/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// InvitationHandler handles referral endpoints
type InvitationHandler struct {
	referrals *services.ReferralService
	log       *zap.Logger
}

// NewInvitationHandler creates a new invitation handler
func NewInvitationHandler(referrals *services.ReferralService, log *zap.Logger) *InvitationHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &InvitationHandler{referrals: referrals, log: log}
}

// CreateInvitationRequest represents invitation request body
type CreateInvitationRequest struct {
	InviteeID uint `json:"invitee_id"`
}

// SignupReferralRequest represents referral signup request body
type SignupReferralRequest struct {
	InviteLink string `json:"invite_link"`
}

// RespondInvitationRequest represents invitation answer request body
type RespondInvitationRequest struct {
	InvitationState string `json:"invitation_state"`
}

// ResolveInviteLink handles an invite link opened by a prospective patient
// @Summary Resolve invite link
// @Description Returns the inviter behind a magic invite link
// @Tags Invitations
// @Produce json
// @Param link path string true "Magic link"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /invite/{link} [get]
func (h *InvitationHandler) ResolveInviteLink(c *fiber.Ctx) error {
	inviter, err := h.referrals.ResolveInviteLink(c.Context(), c.Params("link"))
	if err != nil {
		return respondError(c, h.log, err, "resolve invite link")
	}

	return response.Success(c, "Invite link resolved", fiber.Map{
		"inviter": fiber.Map{
			"id":   inviter.ID,
			"name": inviter.Name,
		},
	})
}

// CreateInvitation handles inviting an already registered user
// @Summary Invite a registered user
// @Tags Invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateInvitationRequest true "Invitee"
// @Success 201 {object} response.Response{data=domain.Invitation}
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /invitations [post]
func (h *InvitationHandler) CreateInvitation(c *fiber.Ctx) error {
	var req CreateInvitationRequest
	if err := c.BodyParser(&req); err != nil || req.InviteeID == 0 {
		return response.BadRequest(c, "invitee_id is required")
	}

	invitation, err := h.referrals.CreateInvitation(c.Context(), middleware.CurrentUserID(c), req.InviteeID)
	if err != nil {
		return respondError(c, h.log, err, "create invitation")
	}

	return response.Created(c, "Invitation sent", invitation)
}

// SignupReferral handles a new user who signed up through an invite link
// @Summary Apply signup referral
// @Description Grants free items to the caller and the inviter at the inviter's last visited dispensary
// @Tags Invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SignupReferralRequest true "Invite link the caller signed up through"
// @Success 200 {object} response.Response{data=services.ReferralOutcome}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /invitations/signup [post]
func (h *InvitationHandler) SignupReferral(c *fiber.Ctx) error {
	var req SignupReferralRequest
	if err := c.BodyParser(&req); err != nil || req.InviteLink == "" {
		return response.BadRequest(c, "invite_link is required")
	}

	outcome, err := h.referrals.AcceptSignupReferralByLink(c.Context(), req.InviteLink, middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, h.log, err, "apply referral")
	}

	return response.Success(c, "Referral applied", outcome)
}

// RespondToInvitation handles the invitee's answer to an invitation
// @Summary Answer an invitation
// @Tags Invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invitation ID"
// @Param body body RespondInvitationRequest true "New state (ACCEPTED or DECLINED)"
// @Success 200 {object} response.Response{data=domain.Invitation}
// @Failure 422 {object} response.Response
// @Router /invitations/{id} [patch]
func (h *InvitationHandler) RespondToInvitation(c *fiber.Ctx) error {
	invitationID, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid invitation ID")
	}

	var req RespondInvitationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	invitation, err := h.referrals.RespondToInvitation(c.Context(), invitationID, middleware.CurrentUserID(c), req.InvitationState)
	if err != nil {
		return respondError(c, h.log, err, "update invitation")
	}

	return response.Success(c, "Invitation updated", invitation)
}
