package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"drivebox/internal/auth"
	"drivebox/internal/database"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

const refreshTokenTTL = 24 * time.Hour

type RegisterRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"password123"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
	)
}

type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"password123"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string `json:"refresh_token" example:"V1StGXR8_Z5jdHi6B-myT78q_Z5jdHi6B-myT78q"`
}

// generateRefreshToken draws a 40-char opaque token.
func generateRefreshToken() (string, error) {
	generate, err := nanoid.Standard(40)
	if err != nil {
		return "", err
	}
	return generate(), nil
}

// @Summary      Register a new account
// @Description  Creates a user account together with its root folder. The root folder exists before the response is sent; an account is never visible without one.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        registerRequest  body      RegisterRequest  true  "Account credentials"
// @Success      201              {object}  models.User
// @Failure      400              {object}  map[string]string
// @Failure      409              {object}  map[string]string
// @Router       /auth/register [post]
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("ERROR: failed to hash password: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	rootFolderID, err := s.generateUniqueID(r.Context(), s.store.FolderExists)
	if err != nil {
		respondStoreError(w, err, "Failed to register")
		return
	}

	user, err := s.store.RegisterUser(r.Context(), req.Email, passwordHash, rootFolderID)
	if err != nil {
		respondStoreError(w, err, "Failed to register")
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// @Summary      Log in
// @Description  Authenticates by email and password and returns a short-lived access token plus a refresh token bound to a session record.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest  body      LoginRequest  true  "Login credentials"
// @Success      200           {object}  TokenResponse
// @Failure      400           {object}  map[string]string
// @Failure      401           {object}  map[string]string
// @Router       /auth/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		respondStoreError(w, err, "Failed to log in")
		return
	}
	if user == nil || !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	accessToken, err := auth.GenerateJWT(user, s.config.JWT.Secret)
	if err != nil {
		log.Printf("ERROR: failed to generate access token: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		log.Printf("ERROR: failed to generate refresh token: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	err = s.store.CreateSession(r.Context(), database.CreateSessionParams{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: refreshToken,
		UserAgent:    r.UserAgent(),
		ClientIP:     r.RemoteAddr,
		ExpiresAt:    time.Now().Add(refreshTokenTTL),
	})
	if err != nil {
		log.Printf("ERROR: failed to create session for user %d: %v", user.ID, err)
		respondError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	respondJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" example:"V1StGXR8_Z5jdHi6B-myT78q_Z5jdHi6B-myT78q"`
}

var errInvalidRefreshToken = errors.New("invalid or expired refresh token")

// @Summary      Refresh access token
// @Description  Exchanges a valid refresh token for a new access token and a new refresh token. The old refresh token is consumed in the same transaction; it cannot be replayed.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        refreshTokenRequest  body      RefreshTokenRequest  true  "Refresh token"
// @Success      200                  {object}  TokenResponse
// @Failure      400                  {object}  map[string]string
// @Failure      401                  {object}  map[string]string
// @Router       /auth/refresh [post]
func (s *Server) RefreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RefreshToken == "" {
		respondError(w, http.StatusBadRequest, "Refresh token is required")
		return
	}

	var newAccessToken, newRefreshToken string

	txErr := s.store.ExecTx(r.Context(), func(q *database.Queries) error {
		user, err := q.GetUserByRefreshToken(r.Context(), req.RefreshToken)
		if err != nil {
			return err
		}
		if user == nil {
			return errInvalidRefreshToken
		}

		if err := q.DeleteSessionByRefreshToken(r.Context(), req.RefreshToken); err != nil {
			return err
		}

		newAccessToken, err = auth.GenerateJWT(user, s.config.JWT.Secret)
		if err != nil {
			return err
		}
		newRefreshToken, err = generateRefreshToken()
		if err != nil {
			return err
		}

		return q.CreateSession(r.Context(), database.CreateSessionParams{
			ID:           uuid.New(),
			UserID:       user.ID,
			RefreshToken: newRefreshToken,
			UserAgent:    r.UserAgent(),
			ClientIP:     r.RemoteAddr,
			ExpiresAt:    time.Now().Add(refreshTokenTTL),
		})
	})
	if txErr != nil {
		if errors.Is(txErr, errInvalidRefreshToken) {
			respondError(w, http.StatusUnauthorized, txErr.Error())
			return
		}
		log.Printf("ERROR: failed to rotate refresh token: %v", txErr)
		respondError(w, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	respondJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
	})
}

// @Summary      Log out
// @Description  Invalidates the presented refresh token. The access token stays valid until it expires.
// @Tags         auth
// @Accept       json
// @Param        refreshTokenRequest  body  RefreshTokenRequest  true  "Refresh token to invalidate"
// @Success      204                  "No Content"
// @Failure      400                  {object}  map[string]string
// @Router       /auth/logout [post]
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RefreshToken == "" {
		respondError(w, http.StatusBadRequest, "Refresh token is required")
		return
	}

	if err := s.store.DeleteSessionByRefreshToken(r.Context(), req.RefreshToken); err != nil {
		log.Printf("ERROR: failed to delete session: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to log out")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
