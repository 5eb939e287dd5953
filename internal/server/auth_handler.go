package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/candyhouse/talent-profile/internal/types"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Messages returned by the credential endpoints.
const (
	msgTalentCreated  = "talent is created"
	msgInvalidBody    = "Invalid request body"
	msgTokenFailure   = "Failed to generate token"
	msgInternalFailed = "Internal server error"
)

// AuthHandler handles talent registration and login.
type AuthHandler struct {
	accounts   *AccountService
	jwtService *JWTService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(accounts *AccountService, jwtService *JWTService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		accounts:   accounts,
		jwtService: jwtService,
		validator:  validator.New(),
		logger:     logger,
	}
}

// Register handles POST /talent/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.TalentRegister
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(h.logger, w, http.StatusBadRequest, types.RegisterResponse{Error: msgInvalidBody})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeJSON(h.logger, w, http.StatusBadRequest, types.RegisterResponse{Error: extractValidationErrors(err)})
		return
	}

	account, err := h.accounts.Register(r.Context(), &req)
	if err != nil {
		status := HTTPStatus(err)
		msg := err.Error()
		if status == http.StatusInternalServerError {
			h.logger.Error("register failed", zap.String("email", req.Email), zap.Error(err))
			msg = msgInternalFailed
		}
		writeJSON(h.logger, w, status, types.RegisterResponse{Error: msg})
		return
	}

	h.logger.Info("talent registered", zap.Stringer("account_id", account.ID))
	writeJSON(h.logger, w, http.StatusCreated, types.RegisterResponse{Message: msgTalentCreated})
}

// Login handles POST /talent/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(h.logger, w, http.StatusBadRequest, types.LoginResponse{Error: msgInvalidBody})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeJSON(h.logger, w, http.StatusBadRequest, types.LoginResponse{Error: extractValidationErrors(err)})
		return
	}

	account, err := h.accounts.Login(r.Context(), &req)
	if err != nil {
		status := HTTPStatus(err)
		msg := err.Error()
		if status == http.StatusInternalServerError {
			h.logger.Error("login failed", zap.Error(err))
			msg = msgInternalFailed
		}
		writeJSON(h.logger, w, status, types.LoginResponse{Error: msg})
		return
	}

	token, err := h.jwtService.GenerateToken(account.ID)
	if err != nil {
		h.logger.Error("token generation failed", zap.Error(err))
		writeJSON(h.logger, w, http.StatusInternalServerError, types.LoginResponse{Error: msgTokenFailure})
		return
	}

	writeJSON(h.logger, w, http.StatusOK, types.LoginResponse{Token: token})
}

// extractValidationErrors reports the first failing field.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}
