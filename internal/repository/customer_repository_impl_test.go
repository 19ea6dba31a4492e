package repository

import (
	"context"
	"testing"

	"salon-booking/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository_UpsertCreatesNewCustomer(t *testing.T) {
	db := newTestDB(t)
	repo := NewCustomerRepository()
	ctx := context.Background()

	customer, err := repo.Upsert(ctx, db, &entity.Customer{
		Name:                   "Ana",
		Phone:                  "+32470000001",
		Email:                  "ana@example.com",
		NotificationPreference: entity.PreferenceSMS,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, customer.ID)
	assert.Equal(t, "Ana", customer.Name)
	assert.Equal(t, entity.PreferenceSMS, customer.NotificationPreference)
}

func TestCustomerRepository_UpsertKeepsNameAndRefreshesPreference(t *testing.T) {
	db := newTestDB(t)
	repo := NewCustomerRepository()
	ctx := context.Background()

	first, err := repo.Upsert(ctx, db, &entity.Customer{
		Name:                   "Ana",
		Phone:                  "+32470000001",
		Email:                  "ana@example.com",
		NotificationPreference: entity.PreferenceSMS,
	})
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, db, &entity.Customer{
		Name:                   "Ana Maria",
		Phone:                  "+32470000001",
		Email:                  "other@example.com",
		NotificationPreference: entity.PreferenceWhatsApp,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Ana", second.Name)
	assert.Equal(t, "ana@example.com", second.Email)
	assert.Equal(t, entity.PreferenceWhatsApp, second.NotificationPreference)

	var count int64
	require.NoError(t, db.Model(&entity.Customer{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCustomerRepository_FindByPhoneUnknown(t *testing.T) {
	db := newTestDB(t)
	repo := NewCustomerRepository()

	customer, err := repo.FindByPhone(context.Background(), db, "+32000000000")
	require.NoError(t, err)
	assert.Nil(t, customer)
}
