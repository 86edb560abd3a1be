package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/allisson/rotator-admin/internal/guard"
	"github.com/allisson/rotator-admin/internal/locale"
	"github.com/allisson/rotator-admin/internal/notify"
	sessionDomain "github.com/allisson/rotator-admin/internal/session/domain"
	sessionStore "github.com/allisson/rotator-admin/internal/session/store"
	sessionUseCase "github.com/allisson/rotator-admin/internal/session/usecase"
)

type sessionComponents struct {
	sessionStore sessionDomain.Store
	session      *sessionUseCase.Session
	localeSource *locale.Source
	notifier     notify.Notifier
	guard        *guard.Guard

	sessionStoreInit sync.Once
	sessionInit      sync.Once
	localeSourceInit sync.Once
	notifierInit     sync.Once
	guardInit        sync.Once
}

// SessionStore returns the persistent key-value store, sealed when a session key URI is configured.
func (c *Container) SessionStore() (sessionDomain.Store, error) {
	var err error
	c.sessionStoreInit.Do(func() {
		c.sessionStore, err = c.initSessionStore()
		if err != nil {
			c.initErrors["sessionStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionStore"]; exists {
		return nil, storedErr
	}
	return c.sessionStore, nil
}

// Session returns the session context object.
func (c *Container) Session() (*sessionUseCase.Session, error) {
	var err error
	c.sessionInit.Do(func() {
		c.session, err = c.initSession()
		if err != nil {
			c.initErrors["session"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["session"]; exists {
		return nil, storedErr
	}
	return c.session, nil
}

// LocaleSource returns the locale-aware message source.
func (c *Container) LocaleSource() (*locale.Source, error) {
	var err error
	c.localeSourceInit.Do(func() {
		var store sessionDomain.Store
		store, err = c.SessionStore()
		if err != nil {
			err = fmt.Errorf("failed to get session store for locale source: %w", err)
			c.initErrors["localeSource"] = err
			return
		}
		c.localeSource = locale.NewSource(store)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["localeSource"]; exists {
		return nil, storedErr
	}
	return c.localeSource, nil
}

// Notifier returns the notifier writing to the terminal, with a debug-level copy in the log.
func (c *Container) Notifier() notify.Notifier {
	c.notifierInit.Do(func() {
		c.notifier = notify.Multi{
			notify.NewWriterNotifier(c.errWriter),
			notify.NewLogNotifier(c.Logger()),
		}
	})
	return c.notifier
}

// Guard returns the navigation guard bound to the session.
func (c *Container) Guard() (*guard.Guard, error) {
	var err error
	c.guardInit.Do(func() {
		var session *sessionUseCase.Session
		session, err = c.Session()
		if err != nil {
			err = fmt.Errorf("failed to get session for guard: %w", err)
			c.initErrors["guard"] = err
			return
		}
		c.guard = guard.New(session)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["guard"]; exists {
		return nil, storedErr
	}
	return c.guard, nil
}

func (c *Container) initSessionStore() (sessionDomain.Store, error) {
	path := c.config.SessionFile
	if path == "" {
		var err error
		path, err = sessionStore.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve session file: %w", err)
		}
	}

	var store sessionDomain.Store = sessionStore.NewFileStore(path)
	if c.config.SessionKeyURI == "" {
		return store, nil
	}

	keeper, err := sessionStore.OpenKeeper(context.Background(), c.config.SessionKeyURI)
	if err != nil {
		return nil, err
	}
	c.keeper = keeper

	return sessionStore.NewSealedStore(store, keeper), nil
}

func (c *Container) initSession() (*sessionUseCase.Session, error) {
	store, err := c.SessionStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get session store for session: %w", err)
	}
	return sessionUseCase.NewSession(store, c.Logger()), nil
}
