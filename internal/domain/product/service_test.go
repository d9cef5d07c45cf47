package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/boutique-store/internal/testutil"
)

func newServices(t *testing.T) (*CategoryService, *Service) {
	t.Helper()
	db := testutil.NewDB(t, &Category{}, &Product{})
	return NewCategoryService(db), NewService(db)
}

func mustCategory(t *testing.T, cs *CategoryService, name, slug string) *Category {
	t.Helper()
	cat, err := cs.Create(context.Background(), &CategoryCreateRequest{Name: name, Slug: slug})
	require.NoError(t, err)
	return cat
}

func mustProduct(t *testing.T, ps *Service, in ProductInput) *Product {
	t.Helper()
	p, err := ps.Create(context.Background(), &in)
	require.NoError(t, err)
	return p
}

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()
	cs, _ := newServices(t)

	cat, err := cs.Create(ctx, &CategoryCreateRequest{Name: "  Abaya ", Slug: " ABAYA "})
	require.NoError(t, err)
	assert.Equal(t, "Abaya", cat.Name)
	assert.Equal(t, "abaya", cat.Slug)

	_, err = cs.Create(ctx, &CategoryCreateRequest{Name: "Other", Slug: "abaya"})
	assert.ErrorIs(t, err, ErrSlugTaken)

	_, err = cs.Create(ctx, &CategoryCreateRequest{Name: "", Slug: "x"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = cs.Create(ctx, &CategoryCreateRequest{Name: "x", Slug: "   "})
	assert.ErrorIs(t, err, ErrValidation)

	got, err := cs.GetBySlug(ctx, "abaya")
	require.NoError(t, err)
	assert.Equal(t, cat.ID, got.ID)

	_, err = cs.GetBySlug(ctx, "missing")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryService_Delete(t *testing.T) {
	ctx := context.Background()
	cs, ps := newServices(t)

	used := mustCategory(t, cs, "Abaya", "abaya")
	empty := mustCategory(t, cs, "Niqab", "niqab")

	mustProduct(t, ps, ProductInput{Name: "Black Abaya", Price: decimal.NewFromInt(500), CategoryID: used.ID, IsActive: false})

	err := cs.Delete(ctx, used.ID)
	assert.ErrorIs(t, err, ErrCategoryInUse)
	_, err = cs.Get(ctx, used.ID)
	assert.NoError(t, err, "category with products must survive")

	require.NoError(t, cs.Delete(ctx, empty.ID))
	_, err = cs.Get(ctx, empty.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	assert.ErrorIs(t, cs.Delete(ctx, 9999), ErrCategoryNotFound)
}

func TestCategoryService_ListWithProductCount(t *testing.T) {
	ctx := context.Background()
	cs, ps := newServices(t)

	niqab := mustCategory(t, cs, "Niqab", "niqab")
	mustCategory(t, cs, "Abaya", "abaya")
	mustProduct(t, ps, ProductInput{Name: "N1", Price: decimal.NewFromInt(100), CategoryID: niqab.ID, IsActive: true})
	mustProduct(t, ps, ProductInput{Name: "N2", Price: decimal.NewFromInt(100), CategoryID: niqab.ID})

	list, err := cs.ListWithProductCount(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Abaya", list[0].Name)
	assert.Equal(t, int64(0), list[0].ProductCount)
	assert.Equal(t, int64(2), list[1].ProductCount)

	nav, err := cs.NavCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"abaya": "Abaya", "niqab": "Niqab"}, nav)
}

func TestService_ListActiveByCategory_Filters(t *testing.T) {
	ctx := context.Background()
	cs, ps := newServices(t)

	abaya := mustCategory(t, cs, "Abaya", "abaya")
	other := mustCategory(t, cs, "Niqab", "niqab")

	a := mustProduct(t, ps, ProductInput{Name: "A", Brand: "Zara", Size: "52", Color: "Black", Price: decimal.NewFromInt(500), CategoryID: abaya.ID, IsActive: true})
	b := mustProduct(t, ps, ProductInput{Name: "B", Brand: "Zara", Size: "54", Color: "Navy", Price: decimal.NewFromInt(600), CategoryID: abaya.ID, IsActive: true})
	mustProduct(t, ps, ProductInput{Name: "C", Brand: "Dubai", Size: "52", Color: "Black", Price: decimal.NewFromInt(700), CategoryID: abaya.ID, IsActive: false})
	mustProduct(t, ps, ProductInput{Name: "D", Brand: "Zara", Size: "52", Color: "Black", Price: decimal.NewFromInt(800), CategoryID: other.ID, IsActive: true})

	tests := []struct {
		name   string
		filter Filter
		want   []uint
	}{
		{name: "no filter", filter: Filter{}, want: []uint{a.ID, b.ID}},
		{name: "brand", filter: Filter{Brand: "Zara"}, want: []uint{a.ID, b.ID}},
		{name: "size", filter: Filter{Size: "54"}, want: []uint{b.ID}},
		{name: "brand and color", filter: Filter{Brand: "Zara", Color: "Black"}, want: []uint{a.ID}},
		{name: "case sensitive", filter: Filter{Brand: "zara"}, want: []uint{}},
		{name: "inactive excluded", filter: Filter{Brand: "Dubai"}, want: []uint{}},
		{name: "whitespace trimmed", filter: Filter{Color: " Navy "}, want: []uint{b.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := ps.ListActiveByCategory(ctx, abaya.ID, tt.filter)
			require.NoError(t, err)

			ids := make([]uint, 0, len(products))
			for _, p := range products {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	opts, err := ps.FilterOptions(ctx, abaya.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zara"}, opts.Brands)
	assert.Equal(t, []string{"52", "54"}, opts.Sizes)
	assert.Equal(t, []string{"Black", "Navy"}, opts.Colors)
}

func TestService_CreateUpdate(t *testing.T) {
	ctx := context.Background()
	cs, ps := newServices(t)
	cat := mustCategory(t, cs, "Abaya", "abaya")

	_, err := ps.Create(ctx, &ProductInput{Name: " ", Price: decimal.NewFromInt(1), CategoryID: cat.ID})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ps.Create(ctx, &ProductInput{Name: "X", Price: decimal.NewFromInt(-1), CategoryID: cat.ID})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ps.Create(ctx, &ProductInput{Name: "X", Price: decimal.NewFromInt(1), CategoryID: 404})
	assert.ErrorIs(t, err, ErrValidation)

	p := mustProduct(t, ps, ProductInput{Name: "Black Abaya", Price: decimal.RequireFromString("499.50"), CategoryID: cat.ID, IsActive: true, ImageFilename: "abc_black.jpg"})

	updated, err := ps.Update(ctx, p.ID, &ProductInput{Name: "Black Abaya v2", Price: decimal.NewFromInt(550), CategoryID: cat.ID, IsActive: false})
	require.NoError(t, err)
	assert.Equal(t, "Black Abaya v2", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(550)))
	assert.False(t, updated.IsActive)
	assert.Equal(t, "abc_black.jpg", updated.ImageFilename, "image kept when none uploaded")

	updated, err = ps.Update(ctx, p.ID, &ProductInput{Name: "Black Abaya v2", Price: decimal.NewFromInt(550), CategoryID: cat.ID, IsActive: true, ImageFilename: "new.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "new.jpg", updated.ImageFilename)

	_, err = ps.Update(ctx, 9999, &ProductInput{Name: "x", CategoryID: cat.ID})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestService_GetActiveAndFindActiveByIDs(t *testing.T) {
	ctx := context.Background()
	cs, ps := newServices(t)
	cat := mustCategory(t, cs, "Abaya", "abaya")

	active := mustProduct(t, ps, ProductInput{Name: "On", Price: decimal.NewFromInt(1), CategoryID: cat.ID, IsActive: true})
	hidden := mustProduct(t, ps, ProductInput{Name: "Off", Price: decimal.NewFromInt(1), CategoryID: cat.ID, IsActive: false})

	_, err := ps.GetActive(ctx, active.ID)
	assert.NoError(t, err)
	_, err = ps.GetActive(ctx, hidden.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	found, err := ps.FindActiveByIDs(ctx, []uint{active.ID, hidden.ID, 4242})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Contains(t, found, active.ID)

	count, err := ps.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	latest, err := ps.Latest(ctx, 6)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, active.ID, latest[0].ID)

	_, err = ps.Delete(ctx, hidden.ID)
	require.NoError(t, err)
	_, err = ps.Get(ctx, hidden.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
