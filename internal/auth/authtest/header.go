// Package authtest provides in-memory doubles for the auth package: a
// header-asserted identity resolver for local scaffolds and tests, and an
// in-memory credential store.
//
// Nothing here has cryptographic integrity. The server never wires these in.
package authtest

import (
	"context"
	"net/http"
	"strings"

	"clinic-records/internal/auth"
	"clinic-records/internal/model"
)

const HeaderName = "X-User-ID"

// Directory maps user ids to principals.
type Directory map[string]model.Principal

func DefaultDirectory() Directory {
	return Directory{
		"1": {Identifier: "1", DisplayName: "Dr. Admin", Role: model.RoleAdmin},
		"2": {Identifier: "2", DisplayName: "Dr. Clinician", Role: model.RoleClinician},
		"3": {Identifier: "3", DisplayName: "Guest", Role: model.RoleGuest},
	}
}

// HeaderResolver trusts the X-User-ID header. The value is either a user id
// from the directory or a bare role name.
type HeaderResolver struct {
	directory Directory
}

var _ auth.Resolver = (*HeaderResolver)(nil)

// NewHeaderResolver copies dir, so later changes to the caller's map are not
// observed.
func NewHeaderResolver(dir Directory) *HeaderResolver {
	snapshot := make(Directory, len(dir))
	for id, principal := range dir {
		snapshot[id] = principal
	}
	return &HeaderResolver{directory: snapshot}
}

func (h *HeaderResolver) Resolve(_ context.Context, r *http.Request) (model.Principal, error) {
	value := strings.TrimSpace(r.Header.Get(HeaderName))
	if value == "" {
		return model.Principal{}, auth.ErrMissingAssertion
	}

	if principal, ok := h.directory[value]; ok {
		return principal, nil
	}

	if role := model.Role(value); role.Valid() {
		return model.Principal{Identifier: value, Role: role}, nil
	}

	return model.Principal{}, auth.ErrMissingAssertion
}
