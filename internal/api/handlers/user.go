package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/models"
	service "github.com/aaravmahajanofficial/pawsome-storefront/internal/services"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/utils"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

const streamKeepAlive = 25 * time.Second

// SessionCookies re-issues the session cookie once the id rotates on sign in.
type SessionCookies interface {
	Issue(w http.ResponseWriter, sessionID string, remember bool)
}

type UserHandler struct {
	userService service.UserService
	cookies     SessionCookies
	validator   *validator.Validate
}

func NewUserHandler(userService service.UserService, cookies SessionCookies) *UserHandler {
	return &UserHandler{userService: userService, cookies: cookies, validator: validator.New()}
}

// Register godoc
//
//	@Summary	Create an account and sign the session in
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		user	body		models.RegisterRequest	true	"Registration details"
//	@Success	201		{object}	models.SessionInfo
//	@Failure	400		{object}	response.ErrorResponse
//	@Failure	409		{object}	response.ErrorResponse
//	@Router		/auth/register [post]
func (h *UserHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := sessionIDOrError(w, r, logger)
		if !ok {
			return
		}

		var req models.RegisterRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid registration input")
			return
		}

		session, err := h.userService.Register(r.Context(), sessionID, &req)
		if err != nil {
			logger.Warn("Registration failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		h.cookies.Issue(w, session.ID, session.RememberMe)

		logger.Info("User registered", slog.String("userId", session.User.ID))
		response.Success(w, http.StatusCreated, session.Info())
	}
}

// Login godoc
//
//	@Summary	Sign the session in
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		credentials	body		models.LoginRequest	true	"Email, password and remember-me flag"
//	@Success	200			{object}	models.SessionInfo
//	@Failure	401			{object}	response.ErrorResponse
//	@Failure	429			{object}	response.ErrorResponse
//	@Router		/auth/login [post]
func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := sessionIDOrError(w, r, logger)
		if !ok {
			return
		}

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid login input")
			return
		}

		session, err := h.userService.Login(r.Context(), sessionID, &req)
		if err != nil {
			logger.Warn("Login failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		h.cookies.Issue(w, session.ID, session.RememberMe)

		logger.Info("User logged in", slog.String("userId", session.User.ID), slog.Bool("rememberMe", session.RememberMe))
		response.Success(w, http.StatusOK, session.Info())
	}
}

func (h *UserHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := sessionIDOrError(w, r, logger)
		if !ok {
			return
		}

		if err := h.userService.Logout(r.Context(), sessionID); err != nil {
			logger.Error("Logout failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("User logged out")
		response.Success(w, http.StatusOK, models.SessionInfo{})
	}
}

// Me reports the auth state of the session. Guests get authenticated=false, not an error.
func (h *UserHandler) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := sessionIDOrError(w, r, logger)
		if !ok {
			return
		}

		session, err := h.userService.Current(r.Context(), sessionID)
		if err != nil {
			logger.Error("Failed to resolve session", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, session.Info())
	}
}

// Profile godoc
//
//	@Summary	Fetch the signed-in user's profile
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	models.User
//	@Failure	401	{object}	response.ErrorResponse
//	@Router		/auth/profile [get]
func (h *UserHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := sessionIDOrError(w, r, logger)
		if !ok {
			return
		}

		user, err := h.userService.Profile(r.Context(), sessionID)
		if err != nil {
			logger.Error("Failed to fetch profile", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, user)
	}
}

// Stream pushes the session's authenticated flag as server-sent events until
// the client goes away.
func (h *UserHandler) Stream() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := sessionIDOrError(w, r, logger)
		if !ok {
			return
		}

		updates, cancel := h.userService.Subscribe(r.Context(), sessionID)
		defer cancel()

		rc := http.NewResponseController(w)

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		ticker := time.NewTicker(streamKeepAlive)
		defer ticker.Stop()

		for {
			select {
			case <-r.Context().Done():
				logger.Debug("Auth stream closed by client")
				return

			case authenticated, open := <-updates:
				if !open {
					return
				}
				if _, err := fmt.Fprintf(w, "event: auth\ndata: {\"authenticated\":%t}\n\n", authenticated); err != nil {
					logger.Debug("Auth stream write failed", slog.String("error", err.Error()))
					return
				}

			case <-ticker.C:
				if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
					return
				}
			}

			if err := rc.Flush(); err != nil {
				logger.Warn("Auth stream cannot flush", slog.String("error", err.Error()))
				return
			}
		}
	}
}
