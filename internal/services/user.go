package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/pawsome-storefront/internal/repositories"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// LoginPath is where shoppers are sent when their session is missing or expired.
const LoginPath = "/login"

const (
	sessionCacheSize = 10_000
	sessionCacheTTL  = 15 * time.Minute
)

// SessionProvider resolves the auth state of a browser session.
type SessionProvider interface {
	Current(ctx context.Context, sessionID string) (*models.Session, error)
	RequireSession(ctx context.Context, sessionID string) (*models.Session, error)
}

// LoginHook runs after a session becomes authenticated.
type LoginHook func(ctx context.Context, sessionID, token string) error

type UserService interface {
	SessionProvider
	Register(ctx context.Context, sessionID string, req *models.RegisterRequest) (*models.Session, error)
	Login(ctx context.Context, sessionID string, req *models.LoginRequest) (*models.Session, error)
	Logout(ctx context.Context, sessionID string) error
	Profile(ctx context.Context, sessionID string) (*models.User, error)
	IsTokenValid(token string) bool
	Subscribe(ctx context.Context, sessionID string) (<-chan bool, func())
	OnLogin(hook LoginHook)
	IsRemembered(ctx context.Context, sessionID string) bool
}

type userService struct {
	repo    repository.UserRepository
	limiter repository.RateLimitRepository
	store   repository.SessionStore
	now     func() time.Time

	// sessions caches parsed auth state; the store stays authoritative.
	sessions *expirable.LRU[string, *models.Session]

	mu          sync.RWMutex
	subscribers map[string]map[int]chan bool
	subOwner    map[int]string
	nextSubID   int
	hooks       []LoginHook
}

func NewUserService(repo repository.UserRepository, limiter repository.RateLimitRepository, store repository.SessionStore) UserService {
	return NewUserServiceWithClock(repo, limiter, store, time.Now)
}

func NewUserServiceWithClock(repo repository.UserRepository, limiter repository.RateLimitRepository, store repository.SessionStore, now func() time.Time) UserService {
	return &userService{
		repo:        repo,
		limiter:     limiter,
		store:       store,
		now:         now,
		sessions:    expirable.NewLRU[string, *models.Session](sessionCacheSize, nil, sessionCacheTTL),
		subscribers: make(map[string]map[int]chan bool),
		subOwner:    make(map[int]string),
	}
}

func (s *userService) OnLogin(hook LoginHook) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hooks = append(s.hooks, hook)
}

func (s *userService) Register(ctx context.Context, sessionID string, req *models.RegisterRequest) (*models.Session, error) {

	auth, err := s.repo.Register(ctx, req)
	if err != nil {
		return nil, err
	}

	return s.establish(ctx, sessionID, auth, false)
}

func (s *userService) Login(ctx context.Context, sessionID string, req *models.LoginRequest) (*models.Session, error) {

	logger := middleware.LoggerFromContext(ctx)

	allowed, _, retryAfter, err := s.limiter.CheckLoginRateLimit(ctx, req.Email)
	if err != nil {
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		logger.Warn("Login throttled", slog.Int("retry_after", retryAfter))
		return nil, errors.TooManyRequestsError("Too many login attempts. Please try again later.").
			WithDetail(fmt.Sprintf("Retry after %d seconds", retryAfter))
	}

	auth, err := s.repo.Login(ctx, req)
	if err != nil {
		return nil, err
	}

	return s.establish(ctx, sessionID, auth, req.RememberMe)
}

// establish moves the session to a fresh id, stores the new auth state,
// announces it and migrates the guest cart. The guest id is never
// authenticated so a planted id cannot be hijacked.
func (s *userService) establish(ctx context.Context, guestID string, auth *models.AuthResponse, rememberMe bool) (*models.Session, error) {

	logger := middleware.LoggerFromContext(ctx)

	if auth == nil || auth.Token == "" {
		return nil, errors.UpstreamError("Store service returned no token")
	}

	sessionID := uuid.NewString()

	session := &models.Session{
		ID:         sessionID,
		Token:      auth.Token,
		User:       auth.User,
		RememberMe: rememberMe,
		ExpiresAt:  s.tokenExpiry(auth.Token),
	}

	// remember_me goes first so the writes after it pick the longer expiry
	if err := s.store.Set(ctx, sessionID, repository.KeyRememberMe, []byte(fmt.Sprintf("%t", rememberMe))); err != nil {
		return nil, errors.StorageError("Failed to save session").WithError(err)
	}
	if err := s.store.Set(ctx, sessionID, repository.KeyAuthToken, []byte(auth.Token)); err != nil {
		return nil, errors.StorageError("Failed to save session").WithError(err)
	}
	if err := repository.SetJSON(ctx, s.store, sessionID, repository.KeyAuthUser, auth.User); err != nil {
		return nil, errors.StorageError("Failed to save session").WithError(err)
	}

	guestCart, found, err := s.store.Get(ctx, guestID, repository.KeyCart)
	if err != nil {
		logger.Warn("Guest cart unreadable, starting empty", slog.String("error", err.Error()))
	} else if found {
		if err := s.store.Set(ctx, sessionID, repository.KeyCart, guestCart); err != nil {
			return nil, errors.StorageError("Failed to save session").WithError(err)
		}
	}

	if err := s.store.Clear(ctx, guestID); err != nil {
		logger.Warn("Failed to clear guest session", slog.String("error", err.Error()))
	}
	s.sessions.Remove(guestID)
	s.sessions.Add(sessionID, session)

	s.mu.Lock()
	s.moveSubscribers(guestID, sessionID)
	hooks := append([]LoginHook(nil), s.hooks...)
	s.mu.Unlock()

	s.publish(sessionID, true)

	for _, hook := range hooks {
		if err := hook(ctx, sessionID, session.Token); err != nil {
			logger.Warn("Post-login hook failed", slog.String("error", err.Error()))
		}
	}

	logger.Info("Session authenticated", slog.String("userId", session.User.ID), slog.Bool("remember_me", rememberMe))

	return session, nil
}

// Current returns the session's auth state, or nil for a guest. An expired
// token logs the session out.
func (s *userService) Current(ctx context.Context, sessionID string) (*models.Session, error) {

	session, err := s.load(ctx, sessionID)
	if err != nil || session == nil {
		return nil, err
	}

	if !s.IsTokenValid(session.Token) {
		middleware.LoggerFromContext(ctx).Info("Token expired, logging out")
		if err := s.clear(ctx, sessionID); err != nil {
			return nil, err
		}

		return nil, nil
	}

	return session, nil
}

func (s *userService) RequireSession(ctx context.Context, sessionID string) (*models.Session, error) {

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session == nil {
		return nil, errors.UnauthorizedError("Authentication required").WithDetail(LoginPath)
	}

	if !s.IsTokenValid(session.Token) {
		if err := s.clear(ctx, sessionID); err != nil {
			return nil, err
		}

		return nil, errors.UnauthorizedError("Your session has expired. Please sign in again.").WithDetail(LoginPath)
	}

	return session, nil
}

// load reads the auth token on every call so a logout or expiry seen by
// another instance takes effect here too.
func (s *userService) load(ctx context.Context, sessionID string) (*models.Session, error) {

	token, found, err := s.store.Get(ctx, sessionID, repository.KeyAuthToken)
	if err != nil {
		return nil, errors.StorageError("Failed to load session").WithError(err)
	}
	if !found || len(token) == 0 {
		if s.sessions.Remove(sessionID) {
			s.publish(sessionID, false)
		}
		return nil, nil
	}

	if cached, ok := s.sessions.Get(sessionID); ok && cached.Token == string(token) {
		return cached, nil
	}

	var user models.User
	if _, err := repository.GetJSON(ctx, s.store, sessionID, repository.KeyAuthUser, &user); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Stored user profile unreadable", slog.String("error", err.Error()))
	}

	remember, _, err := s.store.Get(ctx, sessionID, repository.KeyRememberMe)
	if err != nil {
		return nil, errors.StorageError("Failed to load session").WithError(err)
	}

	session := &models.Session{
		ID:         sessionID,
		Token:      string(token),
		User:       user,
		RememberMe: string(remember) == "true",
		ExpiresAt:  s.tokenExpiry(string(token)),
	}

	s.sessions.Add(sessionID, session)

	return session, nil
}

// IsRemembered reports whether the session is signed in with remember me.
func (s *userService) IsRemembered(ctx context.Context, sessionID string) bool {

	session, err := s.load(ctx, sessionID)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to resolve session", slog.String("error", err.Error()))
		return false
	}

	return session != nil && session.RememberMe
}

func (s *userService) Logout(ctx context.Context, sessionID string) error {

	logger := middleware.LoggerFromContext(ctx)

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}

	if session != nil {
		if err := s.repo.Logout(ctx, session.Token); err != nil {
			logger.Warn("Backend logout failed", slog.String("error", err.Error()))
		}
	}

	return s.clear(ctx, sessionID)
}

// clear drops the auth state along with the cart and checkout that mirrored
// the user's server cart.
func (s *userService) clear(ctx context.Context, sessionID string) error {

	err := s.store.Delete(ctx, sessionID,
		repository.KeyAuthToken,
		repository.KeyAuthUser,
		repository.KeyRememberMe,
		repository.KeyCart,
		repository.KeyCheckout,
	)
	if err != nil {
		return errors.StorageError("Failed to clear session").WithError(err)
	}

	if s.sessions.Remove(sessionID) {
		s.publish(sessionID, false)
	}

	return nil
}

func (s *userService) Profile(ctx context.Context, sessionID string) (*models.User, error) {

	session, err := s.RequireSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetProfile(ctx, session.Token)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeUnauthorized) {
			if clearErr := s.clear(ctx, sessionID); clearErr != nil {
				middleware.LoggerFromContext(ctx).Error("Failed to clear rejected session", slog.String("error", clearErr.Error()))
			}
		}
		return nil, err
	}

	if err := repository.SetJSON(ctx, s.store, sessionID, repository.KeyAuthUser, user); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to refresh stored profile", slog.String("error", err.Error()))
	}

	if held, ok := s.sessions.Peek(sessionID); ok {
		refreshed := *held
		refreshed.User = *user
		s.sessions.Add(sessionID, &refreshed)
	}

	return user, nil
}

// IsTokenValid decodes the token without verifying it and reports whether
// its exp claim is still in the future. Tokens without exp are invalid.
func (s *userService) IsTokenValid(token string) bool {

	expiry := s.tokenExpiry(token)
	if expiry.IsZero() {
		return false
	}

	return s.now().Before(expiry)
}

func (s *userService) tokenExpiry(token string) time.Time {

	if token == "" {
		return time.Time{}
	}

	claims := &models.Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}

	if claims.ExpiresAt == nil {
		return time.Time{}
	}

	return claims.ExpiresAt.Time
}

// Subscribe streams the authenticated state of a session, starting with the
// current value. The returned func unsubscribes and closes the channel.
func (s *userService) Subscribe(ctx context.Context, sessionID string) (<-chan bool, func()) {

	ch := make(chan bool, 4)

	session, err := s.Current(ctx, sessionID)
	ch <- err == nil && session != nil

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	if s.subscribers[sessionID] == nil {
		s.subscribers[sessionID] = make(map[int]chan bool)
	}
	s.subscribers[sessionID][id] = ch
	s.subOwner[id] = sessionID
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			owner := s.subOwner[id]
			delete(s.subOwner, id)
			delete(s.subscribers[owner], id)
			if len(s.subscribers[owner]) == 0 {
				delete(s.subscribers, owner)
			}
			s.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

// moveSubscribers re-homes open streams when a session id rotates. Callers hold mu.
func (s *userService) moveSubscribers(from, to string) {

	subs, ok := s.subscribers[from]
	if !ok {
		return
	}
	delete(s.subscribers, from)

	if s.subscribers[to] == nil {
		s.subscribers[to] = make(map[int]chan bool)
	}
	for id, ch := range subs {
		s.subscribers[to][id] = ch
		s.subOwner[id] = to
	}
}

// publish never blocks; a slow subscriber loses the oldest pending value.
func (s *userService) publish(sessionID string, authenticated bool) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ch := range s.subscribers[sessionID] {
		select {
		case ch <- authenticated:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- authenticated:
			default:
			}
		}
	}
}
