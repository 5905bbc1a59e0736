package membership

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMembershipService struct{ mock.Mock }

func (m *MockMembershipService) CreateType(ctx context.Context, req TypeRequest) (*MembershipType, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MembershipType), args.Error(1)
}

func (m *MockMembershipService) GetType(ctx context.Context, id int) (*MembershipType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MembershipType), args.Error(1)
}

func (m *MockMembershipService) ListTypes(ctx context.Context, activeOnly bool) ([]MembershipType, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]MembershipType), args.Error(1)
}

func (m *MockMembershipService) UpdateType(ctx context.Context, id int, req TypeRequest) (*MembershipType, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MembershipType), args.Error(1)
}

func (m *MockMembershipService) DeleteType(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMembershipService) Sell(ctx context.Context, req SellRequest) (*SellResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SellResult), args.Error(1)
}

func (m *MockMembershipService) FreezeMembership(ctx context.Context, membershipID int, req FreezeRequest) (*Freeze, error) {
	args := m.Called(ctx, membershipID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Freeze), args.Error(1)
}

func (m *MockMembershipService) ListAll(ctx context.Context) ([]MembershipWithDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]MembershipWithDetails), args.Error(1)
}

func (m *MockMembershipService) ListByClient(ctx context.Context, clientID int) ([]Membership, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Membership), args.Error(1)
}

func (m *MockMembershipService) ListFreezes(ctx context.Context, membershipID int) ([]Freeze, error) {
	args := m.Called(ctx, membershipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Freeze), args.Error(1)
}

func setupMembershipRouter(service Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(service)

	router := gin.New()
	router.POST("/admin/memberships/sell", handler.Sell)
	router.POST("/admin/memberships/:membershipID/freeze", handler.Freeze)
	router.DELETE("/admin/membership-types/:typeID", handler.DeleteType)
	return router
}

func validSellBody() []byte {
	body, _ := json.Marshal(SellRequest{
		ClientID:         10,
		MembershipTypeID: 3,
		AmountCents:      500000,
		Method:           "card",
	})
	return body
}

func TestSellHandler_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"Unknown type", ErrTypeNotFound, http.StatusNotFound},
		{"Unknown client", ErrClientNotFound, http.StatusNotFound},
		{"Amount below price", ErrAmountBelowPrice, http.StatusBadRequest},
		{"Bad start date", ErrInvalidStartDate, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockMembershipService)
			service.On("Sell", mock.Anything, mock.AnythingOfType("membership.SellRequest")).
				Return(nil, tt.serviceErr)

			router := setupMembershipRouter(service)

			req, err := http.NewRequest("POST", "/admin/memberships/sell", bytes.NewBuffer(validSellBody()))
			require.NoError(t, err)
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestSellHandler_Success(t *testing.T) {
	service := new(MockMembershipService)
	service.On("Sell", mock.Anything, mock.AnythingOfType("membership.SellRequest")).
		Return(sellResult(CategoryTimeBased), nil)

	router := setupMembershipRouter(service)

	req, err := http.NewRequest("POST", "/admin/memberships/sell", bytes.NewBuffer(validSellBody()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var result SellResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 41, result.Membership.ID)
}

func TestSellHandler_RejectsUnknownMethod(t *testing.T) {
	service := new(MockMembershipService)
	router := setupMembershipRouter(service)

	body, _ := json.Marshal(SellRequest{
		ClientID:         10,
		MembershipTypeID: 3,
		AmountCents:      500000,
		Method:           "crypto",
	})
	req, err := http.NewRequest("POST", "/admin/memberships/sell", bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "Sell")
}

func TestFreezeHandler_MembershipNotFound(t *testing.T) {
	service := new(MockMembershipService)
	service.On("FreezeMembership", mock.Anything, 99, mock.AnythingOfType("membership.FreezeRequest")).
		Return(nil, ErrMembershipNotFound)

	router := setupMembershipRouter(service)

	body, _ := json.Marshal(FreezeRequest{StartDate: "2026-04-01", EndDate: "2026-04-15"})
	req, err := http.NewRequest("POST", "/admin/memberships/99/freeze", bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFreezeHandler_ZeroDayPeriod(t *testing.T) {
	service := new(MockMembershipService)
	service.On("FreezeMembership", mock.Anything, 41, mock.AnythingOfType("membership.FreezeRequest")).
		Return(nil, ErrFreezePeriodInvalid)

	router := setupMembershipRouter(service)

	body, _ := json.Marshal(FreezeRequest{StartDate: "2026-04-15", EndDate: "2026-04-15"})
	req, err := http.NewRequest("POST", "/admin/memberships/41/freeze", bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteTypeHandler_InUse(t *testing.T) {
	service := new(MockMembershipService)
	service.On("DeleteType", mock.Anything, 3).Return(ErrTypeInUse)

	router := setupMembershipRouter(service)

	req, err := http.NewRequest("DELETE", "/admin/membership-types/3", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}
