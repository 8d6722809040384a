package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/inventory/internal/domain/apperror"
	"github.com/mamadbah2/inventory/internal/domain/models"
)

func TestScopeSearch(t *testing.T) {
	q := models.SearchQuery{Name: "bolt", UnitID: "u2"}

	cases := []struct {
		name      string
		caller    models.Caller
		query     models.SearchQuery
		wantUnit  string
		forbidden bool
	}{
		{"employee pinned to own unit", models.Caller{Role: models.RoleEmployee, UnitID: "u1"}, q, "u1", false},
		{"supervisor pinned to own unit", models.Caller{Role: models.RoleSupervisor, UnitID: "u3"}, q, "u3", false},
		{"admin keeps requested unit", models.Caller{Role: models.RoleAdmin}, q, "u2", false},
		{"admin unscoped", models.Caller{Role: models.RoleAdmin}, models.SearchQuery{}, "", false},
		{"employee without unit", models.Caller{Role: models.RoleEmployee}, q, "", true},
		{"employee without unit and no filter", models.Caller{Role: models.RoleEmployee}, models.SearchQuery{}, "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ScopeSearch(tc.caller, tc.query)
			if tc.forbidden {
				assert.ErrorIs(t, err, apperror.ErrForbidden)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantUnit, got.UnitID)
			assert.Equal(t, tc.query.Name, got.Name)
		})
	}
}

func TestResolveUnit(t *testing.T) {
	cases := []struct {
		name      string
		caller    models.Caller
		requested string
		want      string
		forbidden bool
	}{
		{"admin any unit", models.Caller{Role: models.RoleAdmin}, "u3", "u3", false},
		{"admin no unit", models.Caller{Role: models.RoleAdmin}, "", "", false},
		{"employee default", models.Caller{Role: models.RoleEmployee, UnitID: "u1"}, "", "u1", false},
		{"employee own unit", models.Caller{Role: models.RoleEmployee, UnitID: "u1"}, "u1", "u1", false},
		{"employee other unit", models.Caller{Role: models.RoleEmployee, UnitID: "u1"}, "u2", "", true},
		{"supervisor without unit", models.Caller{Role: models.RoleSupervisor}, "", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveUnit(tc.caller, tc.requested)
			if tc.forbidden {
				assert.ErrorIs(t, err, apperror.ErrForbidden)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAuthorizeInsert(t *testing.T) {
	supervisor := models.Caller{Role: models.RoleSupervisor, UnitID: "u1"}

	_, err := AuthorizeInsert(supervisor, models.ProductDraft{})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = AuthorizeInsert(supervisor, models.ProductDraft{UnitID: "u2"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	d, err := AuthorizeInsert(supervisor, models.ProductDraft{UnitID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "u1", d.UnitID)

	d, err = AuthorizeInsert(models.Caller{Role: models.RoleAdmin}, models.ProductDraft{})
	require.NoError(t, err)
	assert.Empty(t, d.UnitID)
}
