package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockClientRepo struct{ mock.Mock }

func (m *MockClientRepo) Create(ctx context.Context, fullName string, birthDate *time.Time, phone string, email *string, status Status) (*Client, error) {
	args := m.Called(ctx, fullName, birthDate, phone, email, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Client), args.Error(1)
}

func (m *MockClientRepo) GetByID(ctx context.Context, id int) (*Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Client), args.Error(1)
}

func (m *MockClientRepo) List(ctx context.Context, search, status string, expiresOn *time.Time) ([]Client, error) {
	args := m.Called(ctx, search, status, expiresOn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Client), args.Error(1)
}

func (m *MockClientRepo) Update(ctx context.Context, id int, fullName string, birthDate *time.Time, phone string, email *string, status Status) (*Client, error) {
	args := m.Called(ctx, id, fullName, birthDate, phone, email, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Client), args.Error(1)
}

func (m *MockClientRepo) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockClientRepo) PhoneExists(ctx context.Context, phone string, excludeID int) (bool, error) {
	args := m.Called(ctx, phone, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientRepo) HasActiveMembership(ctx context.Context, clientID int) (bool, error) {
	args := m.Called(ctx, clientID)
	return args.Bool(0), args.Error(1)
}

func TestCreateClient_DefaultsToPotential(t *testing.T) {
	repo := new(MockClientRepo)
	svc := NewService(repo)

	repo.On("PhoneExists", mock.Anything, "+79001234567", 0).Return(false, nil)
	repo.On("Create", mock.Anything, "Anna Petrova", (*time.Time)(nil), "+79001234567", (*string)(nil), StatusPotential).
		Return(&Client{ID: 1, FullName: "Anna Petrova", Phone: "+79001234567", Status: StatusPotential}, nil)

	created, err := svc.Create(context.Background(), CreateClientRequest{
		FullName: "Anna Petrova",
		Phone:    "+79001234567",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPotential, created.Status)
	repo.AssertExpectations(t)
}

func TestCreateClient_ParsesBirthDate(t *testing.T) {
	repo := new(MockClientRepo)
	svc := NewService(repo)

	birthDate := "1990-05-20"
	expected := time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC)

	repo.On("PhoneExists", mock.Anything, "+79001234567", 0).Return(false, nil)
	repo.On("Create", mock.Anything, "Anna", &expected, "+79001234567", (*string)(nil), StatusPotential).
		Return(&Client{ID: 1}, nil)

	_, err := svc.Create(context.Background(), CreateClientRequest{
		FullName:  "Anna",
		Phone:     "+79001234567",
		BirthDate: &birthDate,
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreateClient_InvalidBirthDate(t *testing.T) {
	repo := new(MockClientRepo)
	svc := NewService(repo)

	bad := "20.05.1990"
	_, err := svc.Create(context.Background(), CreateClientRequest{
		FullName:  "Anna",
		Phone:     "+79001234567",
		BirthDate: &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidBirthDate)
	repo.AssertNotCalled(t, "Create")
}

func TestCreateClient_PhoneTaken(t *testing.T) {
	repo := new(MockClientRepo)
	svc := NewService(repo)

	repo.On("PhoneExists", mock.Anything, "+79001234567", 0).Return(true, nil)

	_, err := svc.Create(context.Background(), CreateClientRequest{
		FullName: "Anna",
		Phone:    "+79001234567",
	})
	assert.ErrorIs(t, err, ErrPhoneTaken)
	repo.AssertNotCalled(t, "Create")
}

func TestListClients_PassesFilters(t *testing.T) {
	repo := new(MockClientRepo)
	svc := NewService(repo)

	expiry := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	repo.On("List", mock.Anything, "anna", "active", &expiry).
		Return([]Client{{ID: 1, FullName: "Anna Petrova", Status: StatusActive}}, nil)

	clients, err := svc.List(context.Background(), "anna", "active", "2026-04-02")
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Anna Petrova", clients[0].FullName)
	repo.AssertExpectations(t)
}

func TestListClients_NoFilters(t *testing.T) {
	repo := new(MockClientRepo)
	svc := NewService(repo)

	repo.On("List", mock.Anything, "", "", (*time.Time)(nil)).Return([]Client{}, nil)

	_, err := svc.List(context.Background(), "", "", "")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListClients_InvalidStatus(t *testing.T) {
	repo := new(MockClientRepo)
	svc := NewService(repo)

	_, err := svc.List(context.Background(), "", "frozen", "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	repo.AssertNotCalled(t, "List")
}

func TestListClients_InvalidExpiryDate(t *testing.T) {
	repo := new(MockClientRepo)
	svc := NewService(repo)

	_, err := svc.List(context.Background(), "", "", "02.04.2026")
	assert.ErrorIs(t, err, ErrInvalidExpiryDate)
	repo.AssertNotCalled(t, "List")
}

func TestUpdateClient_PhoneTakenByAnother(t *testing.T) {
	repo := new(MockClientRepo)
	svc := NewService(repo)

	// Проверка уникальности исключает самого клиента
	repo.On("PhoneExists", mock.Anything, "+79001234567", 5).Return(true, nil)

	_, err := svc.Update(context.Background(), 5, UpdateClientRequest{
		FullName: "Anna",
		Phone:    "+79001234567",
		Status:   "active",
	})
	assert.ErrorIs(t, err, ErrPhoneTaken)
	repo.AssertNotCalled(t, "Update")
}

func TestDeleteClient_WithActiveMembership(t *testing.T) {
	repo := new(MockClientRepo)
	svc := NewService(repo)

	repo.On("HasActiveMembership", mock.Anything, 5).Return(true, nil)

	err := svc.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, ErrHasActiveMembership)
	repo.AssertNotCalled(t, "Delete")
}

func TestDeleteClient_Success(t *testing.T) {
	repo := new(MockClientRepo)
	svc := NewService(repo)

	repo.On("HasActiveMembership", mock.Anything, 5).Return(false, nil)
	repo.On("Delete", mock.Anything, 5).Return(nil)

	err := svc.Delete(context.Background(), 5)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
