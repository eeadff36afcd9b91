package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GlebRadaev/mbtipay/internal/domain"
	"github.com/GlebRadaev/mbtipay/internal/dto"
	"github.com/GlebRadaev/mbtipay/pkg/utils"
	"github.com/GlebRadaev/mbtipay/pkg/validate"
)

type Service interface {
	Save(ctx context.Context, req domain.SaveRequest) (*domain.SaveResult, error)
	History(ctx context.Context, phone string) (*domain.History, error)
}

type CreditService interface {
	UseCredit(ctx context.Context, phone string, ts int64) (*domain.CreditResult, error)
}

type UserHandler struct {
	userService   Service
	creditService CreditService
}

func New(userService Service, creditService CreditService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		creditService: creditService,
	}
}

// Save godoc
//
//	@Summary		Save a quiz result
//	@Description	Stores a result under a phone. The first save sets the 4-digit PIN, later saves must match it. Only the latest 20 records are kept.
//	@Tags			User
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SaveRequestDTO	true	"Result to save"
//	@Success		200		{object}	dto.SaveResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid input"
//	@Failure		401		{object}	utils.Response	"Wrong PIN"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/save [post]
func (h *UserHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.userService.Save(r.Context(), domain.SaveRequest{
		Phone:       req.Phone,
		PIN:         req.PIN,
		Result:      req.Result,
		QuestionSet: req.QuestionSet,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrInvalidPIN):
			utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.SaveResponseDTO{
		Success:     true,
		RecordCount: result.RecordCount,
		Credits:     result.Credits,
		Timestamp:   result.TS,
		IsNewUser:   result.IsNewUser,
	})
}

// Query godoc
//
//	@Summary		Get a phone's history
//	@Tags			User
//	@Produce		json
//	@Param			phone	query		string	true	"Phone number"
//	@Success		200		{object}	dto.QueryResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid phone"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/query [get]
func (h *UserHandler) Query(w http.ResponseWriter, r *http.Request) {
	history, err := h.userService.History(r.Context(), r.URL.Query().Get("phone"))
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	records := make([]dto.RecordDTO, len(history.Records))
	for i, rec := range history.Records {
		records[i] = dto.RecordDTO{
			Result:      rec.Result,
			QuestionSet: rec.QuestionSet,
			Timestamp:   rec.TS,
			Viewed:      rec.Viewed,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.QueryResponseDTO{
		Found:   history.Found,
		Credits: history.Credits,
		Records: records,
	})
}

// UseCredit godoc
//
//	@Summary		Unlock a report with one credit
//	@Description	Spends one credit on the record identified by its timestamp. Viewing an unlocked record again is free.
//	@Tags			User
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.UseCreditRequestDTO	true	"Record to unlock"
//	@Success		200		{object}	dto.UseCreditResponseDTO
//	@Failure		400		{object}	utils.Response				"Invalid input"
//	@Failure		402		{object}	dto.NeedPaymentResponseDTO	"No credits left"
//	@Failure		404		{object}	utils.Response				"Unknown user or record"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/user/use-credit [post]
func (h *UserHandler) UseCredit(w http.ResponseWriter, r *http.Request) {
	var req dto.UseCreditRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validate.IsPhone(req.Phone) || req.Timestamp <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "phone and timestamp required")
		return
	}

	result, err := h.creditService.UseCredit(r.Context(), req.Phone, req.Timestamp)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrRecordNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	switch result.Outcome {
	case domain.CreditInsufficient:
		utils.RespondWithJSON(w, http.StatusPaymentRequired, dto.NeedPaymentResponseDTO{
			Error:       domain.ErrInsufficientCredit.Error(),
			NeedPayment: true,
			Credits:     0,
		})
	default:
		utils.RespondWithJSON(w, http.StatusOK, dto.UseCreditResponseDTO{
			Success:       true,
			Credits:       result.Credits,
			AlreadyViewed: result.Outcome == domain.CreditAlreadyViewed,
		})
	}
}
