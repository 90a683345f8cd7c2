package configs

import (
	"time"

	"praxisnote.app/configs/configsdatabase"

	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"
)

// GetDB exposes the database handle to repositories and services.
func GetDB() *gorm.DB {
	return configsdatabase.GetDB()
}

var sessionStore *session.Store

// SetupSession builds the cookie session store used by the app-lock flow.
func SetupSession() *session.Store {
	if sessionStore == nil {
		sessionStore = session.New(session.Config{
			Expiration:     12 * time.Hour,
			CookieHTTPOnly: true,
			CookieSameSite: "Lax",
		})
	}
	return sessionStore
}

// GetSessionStore returns the store created by SetupSession.
func GetSessionStore() *session.Store {
	if sessionStore == nil {
		return SetupSession()
	}
	return sessionStore
}
