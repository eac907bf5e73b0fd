package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/memberd/memberd/internal/application/membership"
	"github.com/memberd/memberd/internal/domain"
	domerrors "github.com/memberd/memberd/internal/domain/errors"
	"github.com/memberd/memberd/internal/infrastructure/http/middleware"
)

// MembershipsHandler exposes the membership lifecycle under
// /organizations/{orgID}/memberships.
type MembershipsHandler struct {
	create      *membership.CreateMembership
	list        *membership.ListMemberships
	upsert      *membership.UpsertMembership
	remove      *membership.RemoveMembership
	invitations *membership.ListInvitations
	validate    *validator.Validate
	log         zerolog.Logger
}

func NewMembershipsHandler(
	create *membership.CreateMembership,
	list *membership.ListMemberships,
	upsert *membership.UpsertMembership,
	remove *membership.RemoveMembership,
	invitations *membership.ListInvitations,
	log zerolog.Logger,
) *MembershipsHandler {
	return &MembershipsHandler{
		create:      create,
		list:        list,
		upsert:      upsert,
		remove:      remove,
		invitations: invitations,
		validate:    validator.New(),
		log:         log,
	}
}

// Routes mounts the membership endpoints on a router.
func (h *MembershipsHandler) Routes(r chi.Router) {
	r.Route("/organizations/{orgID}", func(r chi.Router) {
		r.Get("/memberships", h.List)
		r.Post("/memberships", h.Create)
		r.Put("/memberships/{userID}", h.Upsert)
		r.Delete("/memberships/{userID}", h.Remove)
		r.Get("/invitations", h.ListInvitations)
	})
}

type createMembershipRequest struct {
	Email       string  `json:"email" validate:"required"`
	Role        string  `json:"role" validate:"required"`
	ProjectID   *string `json:"project_id,omitempty"`
	ProjectRole string  `json:"project_role,omitempty"`
}

type upsertMembershipRequest struct {
	Role string `json:"role" validate:"required"`
}

type memberResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type invitationResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Email          string    `json:"email"`
	OrgRole        string    `json:"org_role"`
	ProjectID      *string   `json:"project_id,omitempty"`
	ProjectRole    string    `json:"project_role,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type createMembershipResponse struct {
	Membership *memberResponse     `json:"membership,omitempty"`
	Invitation *invitationResponse `json:"invitation,omitempty"`
}

// Create handles POST /organizations/{orgID}/memberships.
func (h *MembershipsHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID, ok := parseOrgID(w, r)
	if !ok {
		return
	}
	var req createMembershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, CodeInvalidRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErr(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	input := membership.CreateMembershipInput{
		OrgID: orgID,
		Email: SanitizeEmail(req.Email),
		Role:  domain.Role(req.Role),
		Actor: actorFromRequest(r),
	}
	if req.ProjectID != nil && *req.ProjectID != "" {
		pid, err := uuid.Parse(*req.ProjectID)
		if err != nil {
			writeFieldErr(w, http.StatusBadRequest, CodeValidationFailed, "must be a UUID", "project_id")
			return
		}
		id := domain.NewProjectID(pid)
		input.ProjectID = &id
		input.ProjectRole = domain.Role(req.ProjectRole)
	}

	result, err := h.create.Execute(r.Context(), input)
	if err != nil {
		middleware.RecordMembershipAction("create", "error")
		h.writeDomainErr(w, r, err)
		return
	}
	middleware.RecordMembershipAction("create", "ok")

	resp := createMembershipResponse{}
	if result.Membership != nil {
		resp.Membership = toMemberResponse(result.Membership)
	}
	if result.Invitation != nil {
		resp.Invitation = toInvitationResponse(result.Invitation)
	}
	writeJSON(w, http.StatusCreated, resp)
}

// List handles GET /organizations/{orgID}/memberships.
func (h *MembershipsHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID, ok := parseOrgID(w, r)
	if !ok {
		return
	}
	members, err := h.list.Execute(r.Context(), orgID)
	if err != nil {
		h.writeDomainErr(w, r, err)
		return
	}
	resp := make([]memberResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, memberResponse{
			UserID: m.User.ID.String(),
			Role:   m.Membership.Role.String(),
			Email:  m.User.Email,
			Name:   m.User.Name,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"memberships": resp})
}

// Upsert handles PUT /organizations/{orgID}/memberships/{userID}.
func (h *MembershipsHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	orgID, ok := parseOrgID(w, r)
	if !ok {
		return
	}
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}
	var req upsertMembershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, CodeInvalidRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErr(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}
	member, err := h.upsert.Execute(r.Context(), membership.UpsertMembershipInput{
		OrgID:  orgID,
		UserID: userID,
		Role:   domain.Role(req.Role),
	})
	if err != nil {
		middleware.RecordMembershipAction("upsert", "error")
		h.writeDomainErr(w, r, err)
		return
	}
	middleware.RecordMembershipAction("upsert", "ok")
	writeJSON(w, http.StatusOK, toMemberResponse(member))
}

// Remove handles DELETE /organizations/{orgID}/memberships/{userID}.
// Removal is idempotent; a missing membership still returns 204.
func (h *MembershipsHandler) Remove(w http.ResponseWriter, r *http.Request) {
	orgID, ok := parseOrgID(w, r)
	if !ok {
		return
	}
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}
	if err := h.remove.Execute(r.Context(), orgID, userID); err != nil {
		middleware.RecordMembershipAction("remove", "error")
		h.writeDomainErr(w, r, err)
		return
	}
	middleware.RecordMembershipAction("remove", "ok")
	w.WriteHeader(http.StatusNoContent)
}

// ListInvitations handles GET /organizations/{orgID}/invitations.
func (h *MembershipsHandler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	orgID, ok := parseOrgID(w, r)
	if !ok {
		return
	}
	invs, err := h.invitations.Execute(r.Context(), orgID)
	if err != nil {
		h.writeDomainErr(w, r, err)
		return
	}
	resp := make([]invitationResponse, 0, len(invs))
	for _, inv := range invs {
		resp = append(resp, *toInvitationResponse(inv))
	}
	writeJSON(w, http.StatusOK, map[string]any{"invitations": resp})
}

func (h *MembershipsHandler) writeDomainErr(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domerrors.ValidationError
	switch {
	case errors.As(err, &ve):
		writeFieldErr(w, http.StatusBadRequest, CodeValidationFailed, ve.Reason, ve.Field)
	case domerrors.IsNotFound(err):
		writeErr(w, http.StatusNotFound, CodeNotFound, err.Error())
	case domerrors.IsConflict(err):
		writeErr(w, http.StatusConflict, CodeConflict, err.Error())
	default:
		logHandlerErr(h.log, r, err)
		writeErr(w, http.StatusInternalServerError, CodeInternalError, "internal server error")
	}
}

func parseOrgID(w http.ResponseWriter, r *http.Request) (domain.OrganizationID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "orgID"))
	if err != nil {
		writeFieldErr(w, http.StatusBadRequest, CodeValidationFailed, "must be a UUID", "orgID")
		return domain.OrganizationID{}, false
	}
	return domain.NewOrganizationID(id), true
}

func parseUserID(w http.ResponseWriter, r *http.Request) (domain.UserID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeFieldErr(w, http.StatusBadRequest, CodeValidationFailed, "must be a UUID", "userID")
		return domain.UserID{}, false
	}
	return domain.NewUserID(id), true
}

func actorFromRequest(r *http.Request) membership.Actor {
	actor := middleware.ActorFromContext(r.Context())
	return membership.Actor{Email: actor.Email, Name: actor.Name}
}

func toMemberResponse(m *membership.MemberView) *memberResponse {
	return &memberResponse{
		UserID: m.UserID.String(),
		Role:   m.Role.String(),
		Email:  m.Email,
		Name:   m.Name,
	}
}

func toInvitationResponse(inv *domain.MembershipInvitation) *invitationResponse {
	resp := &invitationResponse{
		ID:             inv.ID.String(),
		OrganizationID: inv.OrganizationID.String(),
		Email:          inv.Email,
		OrgRole:        inv.OrgRole.String(),
		Status:         string(inv.Status),
		CreatedAt:      inv.CreatedAt,
	}
	if inv.ProjectID != nil {
		pid := inv.ProjectID.String()
		resp.ProjectID = &pid
		resp.ProjectRole = inv.ProjectRole.String()
	}
	return resp
}
