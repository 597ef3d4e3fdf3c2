package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"storefront-backend/clients"
	"storefront-backend/config"
	apperrors "storefront-backend/errors"
	"storefront-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) CreatePreference(ctx context.Context, pref *clients.PreferenceRequest) (*clients.PreferenceResponse, error) {
	args := m.Called(ctx, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.PreferenceResponse), args.Error(1)
}

var testGatewayConfig = config.Gateway{
	SuccessURL: "https://shop.example.com/success",
	FailureURL: "https://shop.example.com/failure",
	PendingURL: "https://shop.example.com/pending",
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	validItems := []models.OrderItem{
		{Title: "Basic tee", Quantity: 2, UnitPrice: 19.99},
		{Title: "Hoodie", Quantity: 1, UnitPrice: 49.5},
	}

	t.Run("Success returns redirect URL", func(t *testing.T) {
		mockGateway := new(MockPaymentGateway)
		service := NewCheckoutService(nil, nil, mockGateway, testGatewayConfig)

		mockGateway.On("CreatePreference", ctx, mock.MatchedBy(func(pref *clients.PreferenceRequest) bool {
			return len(pref.Items) == 2 &&
				pref.Items[0].Title == "Basic tee" &&
				pref.Items[0].Quantity == 2 &&
				pref.Payer.Email == "buyer@example.com" &&
				pref.BackURLs.Success == testGatewayConfig.SuccessURL &&
				pref.AutoReturn == "approved" &&
				pref.ExternalReference != ""
		})).Return(&clients.PreferenceResponse{
			ID:        "pref-123",
			InitPoint: "https://gateway.example.com/redirect/pref-123",
		}, nil).Once()

		initPoint, err := service.CreateOrder(ctx, "buyer@example.com", validItems)

		assert.NoError(t, err)
		assert.Equal(t, "https://gateway.example.com/redirect/pref-123", initPoint)
		mockGateway.AssertExpectations(t)
	})

	t.Run("Missing email never reaches the gateway", func(t *testing.T) {
		mockGateway := new(MockPaymentGateway)
		service := NewCheckoutService(nil, nil, mockGateway, testGatewayConfig)

		_, err := service.CreateOrder(ctx, "", validItems)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperrors.From(err).Code)
		mockGateway.AssertNotCalled(t, "CreatePreference")
	})

	t.Run("Empty items never reach the gateway", func(t *testing.T) {
		mockGateway := new(MockPaymentGateway)
		service := NewCheckoutService(nil, nil, mockGateway, testGatewayConfig)

		_, err := service.CreateOrder(ctx, "buyer@example.com", nil)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperrors.From(err).Code)
		mockGateway.AssertNotCalled(t, "CreatePreference")
	})

	t.Run("Invalid item fields rejected before the gateway", func(t *testing.T) {
		mockGateway := new(MockPaymentGateway)
		service := NewCheckoutService(nil, nil, mockGateway, testGatewayConfig)

		bad := []models.OrderItem{{Title: "Free sample", Quantity: 1, UnitPrice: 0}}
		_, err := service.CreateOrder(ctx, "buyer@example.com", bad)

		assert.Equal(t, http.StatusBadRequest, apperrors.From(err).Code)
		mockGateway.AssertNotCalled(t, "CreatePreference")
	})

	t.Run("Gateway rejection surfaces the provider payload", func(t *testing.T) {
		mockGateway := new(MockPaymentGateway)
		service := NewCheckoutService(nil, nil, mockGateway, testGatewayConfig)

		gwErr := &clients.GatewayError{
			StatusCode: http.StatusUnauthorized,
			Body:       `{"message":"invalid access token"}`,
		}
		mockGateway.On("CreatePreference", ctx, mock.Anything).Return(nil, gwErr).Once()

		_, err := service.CreateOrder(ctx, "buyer@example.com", validItems)

		appErr := apperrors.From(err)
		assert.Equal(t, http.StatusInternalServerError, appErr.Code)
		assert.Equal(t, gwErr.Body, appErr.Message)
	})

	t.Run("Unreachable gateway reported without retry", func(t *testing.T) {
		mockGateway := new(MockPaymentGateway)
		service := NewCheckoutService(nil, nil, mockGateway, testGatewayConfig)

		mockGateway.On("CreatePreference", ctx, mock.Anything).Return(nil, errors.New("dial tcp: connection refused")).Once()

		_, err := service.CreateOrder(ctx, "buyer@example.com", validItems)

		assert.Equal(t, http.StatusInternalServerError, apperrors.From(err).Code)
		mockGateway.AssertNumberOfCalls(t, "CreatePreference", 1)
	})
}

func TestCreateCheckoutSession(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	cartID := primitive.NewObjectID()

	t.Run("Success maps cart products to line items", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockCartRepo := new(MockCartRepository)
		service := NewCheckoutService(mockUserRepo, mockCartRepo, nil, testGatewayConfig)

		mockUserRepo.On("FindByID", ctx, userID).Return(&models.User{ID: userID, Cart: &cartID}, nil).Once()
		mockCartRepo.On("FindByID", ctx, cartID).Return(&models.Cart{
			ID: cartID,
			Products: []models.CartProduct{
				{Name: "Basic tee", Quantity: 3, Price: 19.99, Slug: "basic-tee"},
			},
		}, nil).Once()

		lineItems, err := service.CreateCheckoutSession(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, []models.LineItem{{Name: "Basic tee", Quantity: 3, Price: 19.99}}, lineItems)
	})

	t.Run("User without cart is an error here", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		service := NewCheckoutService(mockUserRepo, new(MockCartRepository), nil, testGatewayConfig)

		mockUserRepo.On("FindByID", ctx, userID).Return(&models.User{ID: userID}, nil).Once()

		_, err := service.CreateCheckoutSession(ctx, userID)

		assert.Equal(t, apperrors.ErrCartNotFound, err)
	})

	t.Run("Unknown user", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		service := NewCheckoutService(mockUserRepo, new(MockCartRepository), nil, testGatewayConfig)

		mockUserRepo.On("FindByID", ctx, userID).Return(nil, mongo.ErrNoDocuments).Once()

		_, err := service.CreateCheckoutSession(ctx, userID)

		assert.Equal(t, apperrors.ErrUserNotFound, err)
	})
}

func TestCreateCart(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	t.Run("Links fresh cart to user", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockCartRepo := new(MockCartRepository)
		service := NewCheckoutService(mockUserRepo, mockCartRepo, nil, testGatewayConfig)

		products := []models.CartProduct{{Name: "Basic tee", Quantity: 1, Price: 19.99}}
		mockCartRepo.On("Create", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()
		mockUserRepo.On("SetCart", ctx, userID, mock.AnythingOfType("primitive.ObjectID")).Return(nil).Once()

		cart, err := service.CreateCart(ctx, userID, products)

		assert.NoError(t, err)
		assert.Equal(t, products, cart.Products)
		mockUserRepo.AssertCalled(t, "SetCart", ctx, userID, cart.ID)
	})

	t.Run("Nil products become an empty list", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockCartRepo := new(MockCartRepository)
		service := NewCheckoutService(mockUserRepo, mockCartRepo, nil, testGatewayConfig)

		mockCartRepo.On("Create", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()
		mockUserRepo.On("SetCart", ctx, userID, mock.AnythingOfType("primitive.ObjectID")).Return(nil).Once()

		cart, err := service.CreateCart(ctx, userID, nil)

		assert.NoError(t, err)
		assert.NotNil(t, cart.Products)
		assert.Empty(t, cart.Products)
	})

	t.Run("Unknown user deletes the orphaned cart", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockCartRepo := new(MockCartRepository)
		service := NewCheckoutService(mockUserRepo, mockCartRepo, nil, testGatewayConfig)

		var cartID primitive.ObjectID
		mockCartRepo.On("Create", ctx, mock.AnythingOfType("*models.Cart")).Run(func(args mock.Arguments) {
			cartID = args.Get(1).(*models.Cart).ID
		}).Return(nil).Once()
		mockUserRepo.On("SetCart", ctx, userID, mock.AnythingOfType("primitive.ObjectID")).Return(mongo.ErrNoDocuments).Once()
		mockCartRepo.On("Delete", ctx, mock.AnythingOfType("primitive.ObjectID")).Return(nil).Once()

		cart, err := service.CreateCart(ctx, userID, nil)

		assert.Nil(t, cart)
		assert.Equal(t, apperrors.ErrUserNotFound, err)
		mockCartRepo.AssertCalled(t, "Delete", ctx, cartID)
	})
}

func TestGetCart(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	cartID := primitive.NewObjectID()

	t.Run("User without cart yields nil, not an error", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockCartRepo := new(MockCartRepository)
		service := NewCheckoutService(mockUserRepo, mockCartRepo, nil, testGatewayConfig)

		mockUserRepo.On("FindByID", ctx, userID).Return(&models.User{ID: userID}, nil).Twice()

		// Reading is idempotent: repeated calls observe the same state.
		for i := 0; i < 2; i++ {
			cart, err := service.GetCart(ctx, userID)
			assert.NoError(t, err)
			assert.Nil(t, cart)
		}
		mockCartRepo.AssertNotCalled(t, "FindByID")
	})

	t.Run("Dangling cart reference yields nil", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockCartRepo := new(MockCartRepository)
		service := NewCheckoutService(mockUserRepo, mockCartRepo, nil, testGatewayConfig)

		mockUserRepo.On("FindByID", ctx, userID).Return(&models.User{ID: userID, Cart: &cartID}, nil).Once()
		mockCartRepo.On("FindByID", ctx, cartID).Return(nil, mongo.ErrNoDocuments).Once()

		cart, err := service.GetCart(ctx, userID)

		assert.NoError(t, err)
		assert.Nil(t, cart)
	})

	t.Run("Lookup by email expands the cart", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockCartRepo := new(MockCartRepository)
		service := NewCheckoutService(mockUserRepo, mockCartRepo, nil, testGatewayConfig)

		stored := &models.Cart{ID: cartID, Products: []models.CartProduct{{Name: "Hoodie", Quantity: 1, Price: 49.5}}}
		mockUserRepo.On("FindByEmail", ctx, "buyer@example.com").Return(&models.User{ID: userID, Cart: &cartID}, nil).Once()
		mockCartRepo.On("FindByID", ctx, cartID).Return(stored, nil).Once()

		cart, err := service.GetUserCart(ctx, "buyer@example.com")

		assert.NoError(t, err)
		assert.Equal(t, stored, cart)
	})
}

func TestEditCart(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	cartID := primitive.NewObjectID()

	t.Run("Replaces the product list wholesale", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockCartRepo := new(MockCartRepository)
		service := NewCheckoutService(mockUserRepo, mockCartRepo, nil, testGatewayConfig)

		replacement := []models.CartProduct{{Name: "Hoodie", Quantity: 2, Price: 49.5, Slug: "hoodie"}}
		updated := &models.Cart{ID: cartID, Products: replacement}

		mockUserRepo.On("FindByID", ctx, userID).Return(&models.User{ID: userID, Cart: &cartID}, nil).Once()
		mockCartRepo.On("ReplaceProducts", ctx, cartID, replacement).Return(updated, nil).Once()

		cart, err := service.EditCart(ctx, userID, replacement)

		assert.NoError(t, err)
		assert.Equal(t, replacement, cart.Products)
		mockCartRepo.AssertExpectations(t)
	})

	t.Run("Nil list empties the cart", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockCartRepo := new(MockCartRepository)
		service := NewCheckoutService(mockUserRepo, mockCartRepo, nil, testGatewayConfig)

		mockUserRepo.On("FindByID", ctx, userID).Return(&models.User{ID: userID, Cart: &cartID}, nil).Once()
		mockCartRepo.On("ReplaceProducts", ctx, cartID, []models.CartProduct{}).
			Return(&models.Cart{ID: cartID, Products: []models.CartProduct{}}, nil).Once()

		cart, err := service.EditCart(ctx, userID, nil)

		assert.NoError(t, err)
		assert.Empty(t, cart.Products)
	})

	t.Run("User without cart", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		service := NewCheckoutService(mockUserRepo, new(MockCartRepository), nil, testGatewayConfig)

		mockUserRepo.On("FindByID", ctx, userID).Return(&models.User{ID: userID}, nil).Once()

		_, err := service.EditCart(ctx, userID, []models.CartProduct{})

		assert.Equal(t, apperrors.ErrCartNotFound, err)
	})
}

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Appends the receipt with a default timestamp", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		service := NewCheckoutService(mockUserRepo, nil, nil, testGatewayConfig)

		mockUserRepo.On("PushReceipt", ctx, "buyer@example.com", mock.MatchedBy(func(r models.Receipt) bool {
			return r.ReceiptID == "rcpt-1" && !r.DateCreated.IsZero()
		})).Return(&models.User{}, nil).Once()

		receipt, err := service.RecordPayment(ctx, "buyer@example.com", models.Receipt{ReceiptID: "rcpt-1", Amount: 89.48})

		assert.NoError(t, err)
		assert.False(t, receipt.DateCreated.IsZero())
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("Unknown user", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		service := NewCheckoutService(mockUserRepo, nil, nil, testGatewayConfig)

		mockUserRepo.On("PushReceipt", ctx, "ghost@example.com", mock.Anything).Return(nil, mongo.ErrNoDocuments).Once()

		_, err := service.RecordPayment(ctx, "ghost@example.com", models.Receipt{ReceiptID: "rcpt-2"})

		assert.Equal(t, apperrors.ErrUserNotFound, err)
	})

	t.Run("Missing receipt id rejected", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		service := NewCheckoutService(mockUserRepo, nil, nil, testGatewayConfig)

		_, err := service.RecordPayment(ctx, "buyer@example.com", models.Receipt{})

		assert.Equal(t, http.StatusBadRequest, apperrors.From(err).Code)
		mockUserRepo.AssertNotCalled(t, "PushReceipt")
	})
}
