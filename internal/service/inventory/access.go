package inventory

import (
	"github.com/mamadbah2/inventory/internal/domain/apperror"
	"github.com/mamadbah2/inventory/internal/domain/models"
)

// ScopeSearch pins a non-admin caller's search to the caller's own unit.
// A non-admin caller without a unit is forbidden, since an empty unit
// filter would match every unit.
func ScopeSearch(caller models.Caller, q models.SearchQuery) (models.SearchQuery, error) {
	if caller.IsAdmin() {
		return q, nil
	}
	if caller.UnitID == "" {
		return q, &apperror.ForbiddenError{Reason: "caller has no unit"}
	}
	q.UnitID = caller.UnitID
	return q, nil
}

// ResolveUnit picks the unit a non-admin caller may act on. An empty request
// defaults to the caller's unit; any other unit is forbidden. Admins pass through.
func ResolveUnit(caller models.Caller, requested string) (string, error) {
	if caller.IsAdmin() {
		return requested, nil
	}
	if caller.UnitID == "" {
		return "", &apperror.ForbiddenError{Reason: "caller has no unit"}
	}
	if requested != "" && requested != caller.UnitID {
		return "", &apperror.ForbiddenError{Reason: "caller is not assigned to unit " + requested}
	}
	return caller.UnitID, nil
}

// AuthorizeInsert allows replicated inserts to admins only and keeps
// supervisors inside their own unit.
func AuthorizeInsert(caller models.Caller, draft models.ProductDraft) (models.ProductDraft, error) {
	if caller.IsAdmin() {
		return draft, nil
	}
	if draft.UnitID == "" {
		return draft, &apperror.ForbiddenError{Reason: "only admins insert into every unit"}
	}
	unitID, err := ResolveUnit(caller, draft.UnitID)
	if err != nil {
		return draft, err
	}
	draft.UnitID = unitID
	return draft, nil
}
