// Package access implements the access gate and the role landing resolver.
// Both are pure: decisions are computed from the inputs alone, callers apply
// the side effects (redirect, 401/403, pass through).
package access

import (
	"net/url"

	"github.com/redacok/redacok-backend/internal/domain/user"
	"github.com/redacok/redacok-backend/internal/domain/valueobject/role"
)

const (
	SignInPath = "/sign-in"
	WizardPath = "/wizard"
	HomePath   = "/"
)

// Session is the authenticated identity carried by a request.
type Session struct {
	UserID user.ID
	Role   role.Role
}

// Area distinguishes routes that require a completed profile from those that
// only require authentication.
type Area int

const (
	AreaGeneral Area = iota
	AreaDashboard
)

// Decision is the gate outcome: either pass through or redirect.
type Decision struct {
	Allowed      bool
	RedirectPath string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func RedirectTo(path string) Decision {
	return Decision{RedirectPath: path}
}

type CheckArgs struct {
	Session       *Session
	Profile       *user.User
	RequiredRole  *role.Role
	Area          Area
	RequestedPath string
}

// CheckAccess evaluates the guard chain in order, short-circuiting on the
// first failing guard:
//
//  1. no session: redirect to sign-in with the requested path as callbackUrl
//  2. required role mismatch: redirect home
//  3. dashboard area without a profile: redirect home
//  4. dashboard area without a currency: redirect to the onboarding wizard
//
// Profile-lookup failures are the caller's concern; passing a nil Profile
// means "no profile".
func CheckAccess(args CheckArgs) Decision {
	if args.Session == nil {
		return RedirectTo(signInWithCallback(args.RequestedPath))
	}
	if args.RequiredRole != nil && args.Session.Role != *args.RequiredRole {
		return RedirectTo(HomePath)
	}
	if args.Area == AreaDashboard {
		if args.Profile == nil {
			return RedirectTo(HomePath)
		}
		if args.Profile.Currency() == "" {
			return RedirectTo(WizardPath)
		}
	}
	return Allow()
}

func signInWithCallback(requestedPath string) string {
	if requestedPath == "" {
		return SignInPath
	}
	return SignInPath + "?callbackUrl=" + url.QueryEscape(requestedPath)
}

var roleLandings = map[role.Role]string{
	role.Admin:      "/admin",
	role.Commercial: "/commercial",
	role.Business:   "/business",
	role.Personal:   "/personal",
	role.User:       WizardPath,
}

// ResolveRoleLanding maps a role to its landing path. Unknown roles land on
// the home page.
func ResolveRoleLanding(r role.Role) string {
	if path, ok := roleLandings[r]; ok {
		return path
	}
	return HomePath
}
