package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Adilet2047/Lingua_Connect/internal/config"
	"github.com/Adilet2047/Lingua_Connect/internal/services"
	jwtutil "github.com/Adilet2047/Lingua_Connect/pkg/jwt"
	"github.com/Adilet2047/Lingua_Connect/pkg/logger"
	"github.com/Adilet2047/Lingua_Connect/pkg/middleware"
)

// AuthHandler handles signup, login, logout, onboarding and the current
// user endpoint.
type AuthHandler struct {
	Service *services.AuthService
	Config  *config.Config
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(service *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Service: service,
		Config:  cfg,
	}
}

// SignupHandler registers a new account and opens a session.
func (h *AuthHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"fullName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request payload"})
		return
	}
	defer r.Body.Close()

	user, err := h.Service.Signup(r.Context(), body.Email, body.Password, body.FullName)
	if err != nil {
		logger.Log.Warnf("Signup failed: %v", err)
		respondError(w, err)
		return
	}

	if !h.openSession(w, user.ID.Hex()) {
		return
	}

	logger.Log.Infof("User %s signed up", user.ID.Hex())
	respondJSON(w, http.StatusCreated, map[string]interface{}{"user": user})
}

// LoginHandler authenticates an account and opens a session.
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request payload"})
		return
	}
	defer r.Body.Close()

	user, err := h.Service.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		logger.Log.Warnf("Login failed for %s: %v", body.Email, err)
		respondError(w, err)
		return
	}

	if !h.openSession(w, user.ID.Hex()) {
		return
	}

	logger.Log.Infof("User %s logged in", user.ID.Hex())
	respondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// LogoutHandler expires the session cookie. The token itself stays
// cryptographically valid until its natural expiry; the server keeps no
// revocation list.
func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.Config.IsProduction(),
	})
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// OnboardingHandler completes the authenticated user's profile.
func (h *AuthHandler) OnboardingHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized access"})
		return
	}

	var input services.OnboardingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request payload"})
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.Onboard(r.Context(), user.ID, input)
	if err != nil {
		logger.Log.Warnf("Onboarding failed for user %s: %v", user.ID.Hex(), err)
		respondError(w, err)
		return
	}

	logger.Log.Infof("User %s completed onboarding", updated.ID.Hex())
	respondJSON(w, http.StatusOK, map[string]interface{}{"user": updated})
}

// MeHandler returns the authenticated user resolved by the middleware.
func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized access"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// openSession issues a session token and sets the cookie. Returns false
// after writing an error response when token generation fails.
func (h *AuthHandler) openSession(w http.ResponseWriter, userID string) bool {
	token, err := jwtutil.GenerateToken(userID, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		logger.Log.Errorf("Failed to generate session token: %v", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
		return false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Config.TokenExpiry.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.Config.IsProduction(),
	})
	return true
}
