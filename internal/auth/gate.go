package auth

import "clinic-records/internal/model"

// Authorize lets principal through iff its role is exactly one of required.
// There is no hierarchy: admin does not imply clinician. An empty required
// set admits nobody.
func Authorize(principal model.Principal, required ...model.Role) (model.Principal, error) {
	for _, role := range required {
		if principal.Role == role {
			return principal, nil
		}
	}
	return model.Principal{}, ErrForbidden
}
