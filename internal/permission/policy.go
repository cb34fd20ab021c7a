// Package permission decides who may do what. Every check runs in two phases:
// HasPermission gates the request before anything is loaded, HasObjectPermission
// runs once the target entity (and therefore its author) is known.
package permission

import (
	"bitwise74/review-api/internal/apperr"
	"bitwise74/review-api/internal/model"
	"net/http"
)

// Policy is evaluated with a nil user for anonymous callers
type Policy interface {
	HasPermission(method string, u *model.User) bool
	HasObjectPermission(method string, u *model.User, authorID uint) bool
}

// IsSafe reports whether method is read-only
func IsSafe(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}

	return false
}

type adminOnly struct{}

func (adminOnly) HasPermission(_ string, u *model.User) bool {
	return u.IsAdmin()
}

func (adminOnly) HasObjectPermission(string, *model.User, uint) bool {
	return true
}

type adminOrReadOnly struct{}

func (adminOrReadOnly) HasPermission(method string, u *model.User) bool {
	return IsSafe(method) || u.IsAdmin()
}

func (adminOrReadOnly) HasObjectPermission(string, *model.User, uint) bool {
	return true
}

type authorOrStaff struct{}

func (authorOrStaff) HasPermission(method string, u *model.User) bool {
	return IsSafe(method) || u != nil
}

func (authorOrStaff) HasObjectPermission(method string, u *model.User, authorID uint) bool {
	if IsSafe(method) {
		return true
	}
	if u == nil {
		return false
	}

	return u.ID == authorID || u.IsModerator()
}

type authenticated struct{}

func (authenticated) HasPermission(_ string, u *model.User) bool {
	return u != nil
}

func (authenticated) HasObjectPermission(string, *model.User, uint) bool {
	return true
}

var (
	// AdminOnly admits authenticated admins for every method
	AdminOnly Policy = adminOnly{}
	// AdminOrReadOnly lets anyone read and only admins write
	AdminOrReadOnly Policy = adminOrReadOnly{}
	// AdminModeratorAuthorOrReadOnly lets anyone read, any authenticated user
	// create, and only the author or staff modify an existing object
	AdminModeratorAuthorOrReadOnly Policy = authorOrStaff{}
	// Authenticated admits any authenticated caller
	Authenticated Policy = authenticated{}
)

type Resource string

const (
	Users      Resource = "users"
	Me         Resource = "me"
	Categories Resource = "categories"
	Genres     Resource = "genres"
	Titles     Resource = "titles"
	Reviews    Resource = "reviews"
	Comments   Resource = "comments"
)

var policies = map[Resource]Policy{
	Users:      AdminOnly,
	Me:         Authenticated,
	Categories: AdminOrReadOnly,
	Genres:     AdminOrReadOnly,
	Titles:     AdminOrReadOnly,
	Reviews:    AdminModeratorAuthorOrReadOnly,
	Comments:   AdminModeratorAuthorOrReadOnly,
}

// For returns the policy guarding r. Unknown resources get AdminOnly.
func For(r Resource) Policy {
	if p, ok := policies[r]; ok {
		return p
	}

	return AdminOnly
}

// Check runs the request phase of p and returns an apperr describing the
// denial. Anonymous callers are told to authenticate, everyone else is refused.
func Check(p Policy, method string, u *model.User) error {
	if p.HasPermission(method, u) {
		return nil
	}

	return deny(u)
}

// CheckObject runs the object phase of p against an entity written by authorID
func CheckObject(p Policy, method string, u *model.User, authorID uint) error {
	if p.HasObjectPermission(method, u, authorID) {
		return nil
	}

	return deny(u)
}

func deny(u *model.User) error {
	if u == nil {
		return apperr.Unauthenticated("")
	}

	return apperr.PermissionDenied()
}
