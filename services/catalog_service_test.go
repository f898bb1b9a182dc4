package services

import (
	"testing"

	"jamaluki-backend/models"
	"jamaluki-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func uintPtr(u uint) *uint    { return &u }

func TestNonOwnerCannotChangeService(t *testing.T) {
	f := newFixture(t, Options{})

	for _, caller := range []models.Caller{f.rival, f.customer, f.admin} {
		_, err := f.svc.Catalog.UpdateService(f.ctx, f.cut.ID, models.ServicePatch{Price: intPtr(1)}, caller)
		assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

		err = f.svc.Catalog.DeleteService(f.ctx, f.cut.ID, caller)
		assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
	}

	stored, err := f.store.GetService(f.ctx, f.cut.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, stored.Price)
}

func TestOwnerManagesServices(t *testing.T) {
	f := newFixture(t, Options{})

	created, err := f.svc.Catalog.CreateService(f.ctx, CreateServiceInput{
		SalonID:         f.salon.ID,
		CategoryID:      f.category.ID,
		Name:            "Bridal henna",
		Price:           300,
		DurationMinutes: 90,
	}, f.owner)
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Equal(t, f.salon.ID, created.SalonID)

	updated, err := f.svc.Catalog.UpdateService(f.ctx, created.ID, models.ServicePatch{
		Price:      intPtr(280),
		IsFeatured: boolPtr(true),
	}, f.owner)
	require.NoError(t, err)
	assert.Equal(t, 280, updated.Price)
	assert.True(t, updated.IsFeatured)
	assert.Equal(t, "Bridal henna", updated.Name)

	require.NoError(t, f.svc.Catalog.DeleteService(f.ctx, created.ID, f.owner))
	err = f.svc.Catalog.DeleteService(f.ctx, created.ID, f.owner)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	list, err := f.svc.Catalog.ListServices(f.ctx, f.salon.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCreateServiceRejections(t *testing.T) {
	f := newFixture(t, Options{})
	valid := func() CreateServiceInput {
		return CreateServiceInput{SalonID: f.salon.ID, CategoryID: f.category.ID, Name: "Blow dry", Price: 60, DurationMinutes: 30}
	}

	tests := []struct {
		name   string
		mutate func(*CreateServiceInput)
		caller models.Caller
		want   utils.ErrorKind
	}{
		{"other owner", func(*CreateServiceInput) {}, f.rival, utils.KindForbidden},
		{"anonymous", func(*CreateServiceInput) {}, models.Caller{}, utils.KindUnauthenticated},
		{"zero price", func(in *CreateServiceInput) { in.Price = 0 }, f.owner, utils.KindValidation},
		{"negative duration", func(in *CreateServiceInput) { in.DurationMinutes = -5 }, f.owner, utils.KindValidation},
		{"unknown category", func(in *CreateServiceInput) { in.CategoryID = 999 }, f.owner, utils.KindValidation},
		{"unknown salon", func(in *CreateServiceInput) { in.SalonID = 999 }, f.owner, utils.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(&in)
			_, err := f.svc.Catalog.CreateService(f.ctx, in, tt.caller)
			assert.Equal(t, tt.want, utils.KindOf(err))
		})
	}
}

func TestUpdateServiceValidation(t *testing.T) {
	f := newFixture(t, Options{})

	_, err := f.svc.Catalog.UpdateService(f.ctx, f.cut.ID, models.ServicePatch{Price: intPtr(0)}, f.owner)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	_, err = f.svc.Catalog.UpdateService(f.ctx, f.cut.ID, models.ServicePatch{CategoryID: uintPtr(999)}, f.owner)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	_, err = f.svc.Catalog.UpdateService(f.ctx, 999, models.ServicePatch{Name: strPtr("x")}, f.owner)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestListCategoriesAndServices(t *testing.T) {
	f := newFixture(t, Options{})

	categories, err := f.svc.Catalog.ListCategories(f.ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Haircut", categories[0].NameEn)

	_, err = f.svc.Catalog.ListServices(f.ctx, 999)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}
