package echoapi

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/knowledgeflow/backend/core"
	"github.com/knowledgeflow/backend/core/user"
)

var (
	sessionUserKey   = "userID"
	contextUserIDKey = "userID"
	contextUserKey   = "user"
)

// sessionManager issues and reads the signed session cookie that carries the
// authenticated user's ID.
type sessionManager struct {
	store      *sessions.CookieStore
	cookieName string
}

func newSessionManager(conf *core.Config) *sessionManager {
	store := sessions.NewCookieStore([]byte(conf.SecretKey))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   !conf.Debug,
		SameSite: http.SameSiteLaxMode,
	}
	// also updates the codecs' validity window
	store.MaxAge(int(conf.Session.MaxAge.Seconds()))
	return &sessionManager{
		store:      store,
		cookieName: conf.Session.CookieName,
	}
}

func (sm *sessionManager) logIn(ctx echo.Context, usr user.User) error {
	sess, _ := sm.store.Get(ctx.Request(), sm.cookieName)
	sess.Values[sessionUserKey] = usr.ID
	return errors.Wrap(sess.Save(ctx.Request(), ctx.Response()), "saving session")
}

// logOut clears the session. Calling it without a session is a no-op.
func (sm *sessionManager) logOut(ctx echo.Context) error {
	sess, _ := sm.store.Get(ctx.Request(), sm.cookieName)
	delete(sess.Values, sessionUserKey)
	sess.Options.MaxAge = -1
	return errors.Wrap(sess.Save(ctx.Request(), ctx.Response()), "clearing session")
}

func (sm *sessionManager) userID(ctx echo.Context) (int, bool) {
	sess, err := sm.store.Get(ctx.Request(), sm.cookieName)
	if err != nil {
		return 0, false
	}
	id, ok := sess.Values[sessionUserKey].(int)
	return id, ok && id > 0
}

// requireAuth rejects requests without a valid session before the handler runs.
func (sm *sessionManager) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, ok := sm.userID(ctx)
		if !ok {
			return errUnauthorized
		}
		ctx.Set(contextUserIDKey, id)
		return next(ctx)
	}
}

func authenticate(uname, pwd string, svc user.Service) (user.User, error) {
	usr, err := svc.GetByUsername(uname)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return user.User{}, errInvalidCredentials
		}
		return user.User{}, errors.Wrap(err, "finding user by username")
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return user.User{}, errInvalidCredentials
	}
	if !usr.IsActive {
		return user.User{}, errAccountDeactivated
	}
	usr, err = svc.SetLastLogin(usr)
	if err != nil {
		return user.User{}, errors.Wrap(err, "setting lastLogin")
	}
	return usr, nil
}

// getContextUser loads the session user, caching it on the echo.Context for
// the rest of the request.
func getContextUser(ctx echo.Context, svc user.Service) (user.User, error) {
	if usr, ok := ctx.Get(contextUserKey).(user.User); ok {
		return usr, nil
	}

	id, ok := ctx.Get(contextUserIDKey).(int)
	if !ok {
		return user.User{}, errUnauthorized
	}

	usr, err := svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			// stale session: the account no longer exists
			return user.User{}, errUnauthorized
		}
		return user.User{}, errors.Wrap(err, "finding user by ID")
	}
	ctx.Set(contextUserKey, usr)
	return usr, nil
}
