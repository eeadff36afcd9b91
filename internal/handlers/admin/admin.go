package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/mbtipay/internal/domain"
	"github.com/GlebRadaev/mbtipay/internal/dto"
	"github.com/GlebRadaev/mbtipay/internal/service/authservice"
	"github.com/GlebRadaev/mbtipay/pkg/utils"
	"github.com/GlebRadaev/mbtipay/pkg/validate"
)

type AuthService interface {
	Login(ctx context.Context, adminKey string) (string, error)
}

type UserService interface {
	ListUsers(ctx context.Context, phone string, limit, offset int) ([]domain.User, error)
}

type CreditService interface {
	AddCredits(ctx context.Context, phone string, n int) (int, error)
}

type AdminHandler struct {
	authService   AuthService
	userService   UserService
	creditService CreditService
}

func New(authService AuthService, userService UserService, creditService CreditService) *AdminHandler {
	return &AdminHandler{
		authService:   authService,
		userService:   userService,
		creditService: creditService,
	}
}

// Login godoc
//
//	@Summary		Admin login
//	@Description	Exchange the admin key for a bearer token. The token is returned in the body and in the Authorization header.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.AdminLoginRequestDTO	true	"Admin key"
//	@Success		200		{object}	dto.AdminLoginResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		403		{object}	utils.Response	"Wrong admin key"
//	@Failure		500		{object}	utils.Response	"Admin key not configured"
//	@Router			/api/admin/login [post]
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.AdminLoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.authService.Login(r.Context(), req.AdminKey)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrInvalidCredentials):
			utils.RespondWithError(w, http.StatusForbidden, "unauthorized")
		case errors.Is(err, domain.ErrConfiguration):
			utils.RespondWithError(w, http.StatusInternalServerError, "ADMIN_KEY not set")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Error generating token")
		}
		return
	}
	w.Header().Set("Authorization", "Bearer "+token)
	utils.RespondWithJSON(w, http.StatusOK, dto.AdminLoginResponseDTO{Token: token})
}

// Users godoc
//
//	@Summary		List users
//	@Description	One user when phone is given, otherwise a page ordered by last update. limit is clamped to 1..200.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			phone	query		string	false	"Phone number"
//	@Param			limit	query		int		false	"Page size"	default(50)
//	@Param			offset	query		int		false	"Page offset"	default(0)
//	@Success		200		{object}	dto.AdminUsersResponseDTO
//	@Failure		401		{object}	utils.Response	"Missing or invalid token"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/users [get]
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	users, err := h.userService.ListUsers(r.Context(), q.Get("phone"), limit, offset)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := dto.AdminUsersResponseDTO{Users: make([]dto.AdminUserDTO, len(users))}
	for i, u := range users {
		resp.Users[i] = dto.AdminUserDTO{
			Phone:     u.Phone,
			Credits:   u.Credits,
			HasPIN:    u.HasPIN(),
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// AddCredits godoc
//
//	@Summary		Grant credits
//	@Description	Adds credits to a phone, creating the user if needed. credits defaults to 3.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.AddCreditsRequestDTO	true	"Grant"
//	@Success		200		{object}	dto.AddCreditsResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid input"
//	@Failure		401		{object}	utils.Response	"Missing or invalid token"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/add-credits [post]
func (h *AdminHandler) AddCredits(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCreditsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !validate.IsPhone(req.Phone) {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid phone")
		return
	}
	n := req.Credits
	if n <= 0 {
		n = domain.DefaultCredits
	}

	total, err := h.creditService.AddCredits(r.Context(), req.Phone, n)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AddCreditsResponseDTO{
		Success:      true,
		Phone:        req.Phone,
		CreditsAdded: n,
		TotalCredits: total,
	})
}
