package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateOrderTx(ctx context.Context, o *Order, items []PlaceOrderItem, idempotencyKey string) error {
	args := m.Called(ctx, o, items, idempotencyKey)
	if args.Error(0) == nil {
		o.ID = 101
	}
	return args.Error(0)
}

func (m *MockRepository) GetOrder(ctx context.Context, orderID uint) (*Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) GetOrderItems(ctx context.Context, orderID uint) ([]OrderItem, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]OrderItem), args.Error(1)
}

func (m *MockRepository) GetByIdempotencyKey(ctx context.Context, key string) (*Order, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) ListByEmail(ctx context.Context, email string) ([]Order, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Order), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, orderID uint, status Status) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func validInput() PlaceOrderInput {
	return PlaceOrderInput{
		CustomerName:    "A",
		CustomerEmail:   "a@x.com",
		ShippingAddress: "123 St",
		TotalAmount:     1000,
		Items: []PlaceOrderItem{
			{ProductID: "p1", ProductName: "Ring", ProductPrice: 500, Quantity: 2, Subtotal: 1000},
		},
	}
}

func TestService_Place(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns committed order id", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("CreateOrderTx", ctx, mock.MatchedBy(func(o *Order) bool {
			return o.Status == StatusPending && o.CustomerEmail == "a@x.com"
		}), mock.Anything, "").Return(nil)

		id, err := svc.Place(ctx, validInput())
		require.NoError(t, err)
		assert.Equal(t, uint(101), id)
		repo.AssertExpectations(t)
	})

	t.Run("missing required fields writes nothing", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		for _, mutate := range []func(*PlaceOrderInput){
			func(in *PlaceOrderInput) { in.CustomerName = "" },
			func(in *PlaceOrderInput) { in.CustomerEmail = "" },
			func(in *PlaceOrderInput) { in.ShippingAddress = "" },
			func(in *PlaceOrderInput) { in.Items = nil },
		} {
			in := validInput()
			mutate(&in)

			_, err := svc.Place(ctx, in)
			assert.ErrorIs(t, err, ErrMissingOrderFields)
		}

		repo.AssertNotCalled(t, "CreateOrderTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty items slice is accepted", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		in := validInput()
		in.Items = []PlaceOrderItem{}

		repo.On("CreateOrderTx", ctx, mock.Anything, mock.Anything, "").Return(nil)

		_, err := svc.Place(ctx, in)
		assert.NoError(t, err)
	})

	t.Run("idempotency key returns existing order", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		in := validInput()
		in.IdempotencyKey = "ck-1"

		repo.On("GetByIdempotencyKey", ctx, "ck-1").Return(&Order{ID: 55}, nil)

		id, err := svc.Place(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, uint(55), id)
		repo.AssertNotCalled(t, "CreateOrderTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("idempotency race resolves to the winner", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		in := validInput()
		in.IdempotencyKey = "ck-2"

		repo.On("GetByIdempotencyKey", ctx, "ck-2").Return(nil, nil).Once()
		repo.On("CreateOrderTx", ctx, mock.Anything, mock.Anything, "ck-2").Return(ErrDuplicateOrder)
		repo.On("GetByIdempotencyKey", ctx, "ck-2").Return(&Order{ID: 56}, nil).Once()

		id, err := svc.Place(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, uint(56), id)
	})

	t.Run("transaction failure surfaces without an id", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("CreateOrderTx", ctx, mock.Anything, mock.Anything, "").Return(errors.New("db error"))

		id, err := svc.Place(ctx, validInput())
		assert.Error(t, err)
		assert.Zero(t, id)
	})
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("returns header and items", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetOrder", ctx, uint(7)).Return(&Order{ID: 7, TotalAmount: 1000}, nil)
		repo.On("GetOrderItems", ctx, uint(7)).Return([]OrderItem{
			{OrderID: 7, ProductID: "p1", Subtotal: 1000},
		}, nil)

		o, items, err := svc.Get(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, uint(7), o.ID)
		require.Len(t, items, 1)
		assert.Equal(t, 1000.0, items[0].Subtotal)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetOrder", ctx, uint(99)).Return(nil, ErrOrderNotFound)

		_, _, err := svc.Get(ctx, 99)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("legal transition", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetOrder", ctx, uint(1)).Return(&Order{ID: 1, Status: StatusPending}, nil)
		repo.On("UpdateStatus", ctx, uint(1), StatusProcessing).Return(nil)

		assert.NoError(t, svc.UpdateStatus(ctx, 1, StatusProcessing))
		repo.AssertExpectations(t)
	})

	t.Run("illegal transition rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetOrder", ctx, uint(1)).Return(&Order{ID: 1, Status: StatusDelivered}, nil)

		err := svc.UpdateStatus(ctx, 1, StatusShipped)
		assert.ErrorIs(t, err, ErrIllegalTransition)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		err := svc.UpdateStatus(ctx, 1, Status("returned"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		allowed  bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusProcessing, StatusShipped, true},
		{StatusProcessing, StatusDelivered, false},
		{StatusShipped, StatusDelivered, true},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}
