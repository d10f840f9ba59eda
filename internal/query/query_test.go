package query

import (
	"fmt"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/clothing-shop/internal/domain"
)

func roleFixtures(n int) []domain.Role {
	roles := make([]domain.Role, 0, n)
	for i := 1; i <= n; i++ {
		roles = append(roles, domain.Role{
			ID:   int64(i),
			Name: domain.RoleName(fmt.Sprintf("role-%02d", i)),
		})
	}
	return roles
}

func roleFields() Fields[domain.Role] {
	return Fields[domain.Role]{
		Filter: func(r domain.Role) string { return string(r.Name) },
		Sort: map[string]func(domain.Role) string{
			"roleName": func(r domain.Role) string { return string(r.Name) },
		},
	}
}

func TestApplyPagination(t *testing.T) {
	roles := roleFixtures(25)

	page2, err := Apply(roles, Spec{Page: 2, PageSize: 10}, roleFields())
	require.NoError(t, err)
	require.Len(t, page2, 10)
	assert.Equal(t, int64(11), page2[0].ID)
	assert.Equal(t, int64(20), page2[9].ID)

	page3, err := Apply(roles, Spec{Page: 3, PageSize: 10}, roleFields())
	require.NoError(t, err)
	assert.Len(t, page3, 5)

	page4, err := Apply(roles, Spec{Page: 4, PageSize: 10}, roleFields())
	require.NoError(t, err)
	assert.Empty(t, page4)
}

func TestApplyDefaults(t *testing.T) {
	roles := roleFixtures(25)

	out, err := Apply(roles, Spec{}, roleFields())
	require.NoError(t, err)
	assert.Len(t, out, 10, "page and page size default to 1/10")
	assert.Equal(t, int64(1), out[0].ID)
}

func TestApplySortDescending(t *testing.T) {
	roles := roleFixtures(25)

	out, err := Apply(roles, Spec{SortField: "roleName", Descending: true, Page: 1, PageSize: 25}, roleFields())
	require.NoError(t, err)
	require.Len(t, out, 25)
	for i := 1; i < len(out); i++ {
		assert.LessOrEqual(t, string(out[i].Name), string(out[i-1].Name))
	}
}

func TestApplyFilterIsCaseSensitiveSubstring(t *testing.T) {
	roles := roleFixtures(25)

	matched, err := Apply(roles, Spec{Search: "role-1"}, roleFields())
	require.NoError(t, err)
	assert.Len(t, matched, 10) // role-10 .. role-19

	none, err := Apply(roles, Spec{Search: "ROLE"}, roleFields())
	require.NoError(t, err)
	assert.Empty(t, none)

	absent, err := Apply(roles, Spec{Search: "missing"}, roleFields())
	require.NoError(t, err)
	assert.Empty(t, absent)
}

func TestApplyFilterRunsBeforePagination(t *testing.T) {
	roles := roleFixtures(25)

	out, err := Apply(roles, Spec{Search: "role-2", Page: 2, PageSize: 4}, roleFields())
	require.NoError(t, err)
	// role-20 .. role-25 match; the second page of four holds the last two
	require.Len(t, out, 2)
	assert.Equal(t, domain.RoleName("role-24"), out[0].Name)
	assert.Equal(t, domain.RoleName("role-25"), out[1].Name)
}

func TestApplyUnknownSortField(t *testing.T) {
	_, err := Apply(roleFixtures(3), Spec{SortField: "height"}, roleFields())
	assert.ErrorIs(t, err, ErrInvalidSortField)
}

func TestApplyRejectsNegativePage(t *testing.T) {
	_, err := Apply(roleFixtures(3), Spec{Page: -1}, roleFields())
	assert.ErrorIs(t, err, ErrInvalidPage)

	_, err = Apply(roleFixtures(3), Spec{PageSize: -5}, roleFields())
	assert.ErrorIs(t, err, ErrInvalidPage)
}

func TestApplyToSelect(t *testing.T) {
	builder := sq.Select("id", "name").From("roles").PlaceholderFormat(sq.Dollar)

	builder, err := ApplyToSelect(builder, Spec{
		Search:     "adm",
		SortField:  "roleName",
		Descending: true,
		Page:       2,
		PageSize:   10,
	}, "name", map[string]string{"roleName": "name"})
	require.NoError(t, err)

	sqlStr, args, err := builder.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sqlStr, "name LIKE $1")
	assert.Contains(t, sqlStr, "ORDER BY name DESC")
	assert.Contains(t, sqlStr, "LIMIT 10")
	assert.Contains(t, sqlStr, "OFFSET 10")
	assert.Equal(t, []interface{}{"%adm%"}, args)
}

func TestApplyToSelectUnknownSortField(t *testing.T) {
	builder := sq.Select("id").From("roles")
	_, err := ApplyToSelect(builder, Spec{SortField: "height"}, "name", map[string]string{"roleName": "name"})
	assert.ErrorIs(t, err, ErrInvalidSortField)
}
