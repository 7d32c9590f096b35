// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package middleware

import (
	"net/http"
	"time"

	"github.com/johnvilela/motolink/internal/platform/constants"
)

// # Session Cookies

// SessionCookie describes what the login response stores in the browser.
type SessionCookie struct {
	Token     string
	ExpiresAt time.Time
	UserID    string
	BranchID  string
}

// SetSessionCookies writes the httpOnly session cookies and the script
// readable selected-branch cookie.
func SetSessionCookies(writer http.ResponseWriter, session SessionCookie, secure bool) {
	values := map[string]string{
		constants.CookieSessionToken:     session.Token,
		constants.CookieSessionExpiresAt: session.ExpiresAt.UTC().Format(time.RFC3339),
		constants.CookieUserID:           session.UserID,
	}

	for _, name := range []string{constants.CookieSessionToken, constants.CookieSessionExpiresAt, constants.CookieUserID} {
		http.SetCookie(writer, &http.Cookie{
			Name:     name,
			Value:    values[name],
			Path:     "/",
			Expires:  session.ExpiresAt,
			Secure:   secure,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	if session.BranchID != "" {
		SetSelectedBranch(writer, session.BranchID, secure)
	}
}

// SetSelectedBranch stores the branch choice. It stays readable by scripts.
func SetSelectedBranch(writer http.ResponseWriter, branchID string, secure bool) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.CookieSelectedBranch,
		Value:    branchID,
		Path:     "/",
		MaxAge:   constants.SelectedBranchMaxAge,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookies expires every cookie written by [SetSessionCookies].
func ClearSessionCookies(writer http.ResponseWriter, secure bool) {
	for _, name := range []string{
		constants.CookieSessionToken,
		constants.CookieSessionExpiresAt,
		constants.CookieUserID,
		constants.CookieSelectedBranch,
	} {
		http.SetCookie(writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Secure:   secure,
			HttpOnly: name != constants.CookieSelectedBranch,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// cookieValue returns the named cookie value or "".
func cookieValue(request *http.Request, name string) string {
	cookie, err := request.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SessionToken returns the session token carried by the request, if any.
func SessionToken(request *http.Request) string {
	return cookieValue(request, constants.CookieSessionToken)
}
