package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storefront-backend/clients"
	"storefront-backend/config"
	apperrors "storefront-backend/errors"
	"storefront-backend/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// IPaymentGateway is the external payment provider. It is the source of truth
// for order creation; failures are surfaced to the caller without retry.
type IPaymentGateway interface {
	CreatePreference(ctx context.Context, pref *clients.PreferenceRequest) (*clients.PreferenceResponse, error)
}

type CheckoutService struct {
	userRepo IUserRepository
	cartRepo ICartRepository
	gateway  IPaymentGateway
	gwCfg    config.Gateway
}

func NewCheckoutService(ur IUserRepository, cr ICartRepository, gw IPaymentGateway, gwCfg config.Gateway) *CheckoutService {
	return &CheckoutService{userRepo: ur, cartRepo: cr, gateway: gw, gwCfg: gwCfg}
}

// CreateCheckoutSession is a read-only preview of the authenticated user's
// cart as simplified line items. No external call is made.
func (s *CheckoutService) CreateCheckoutSession(ctx context.Context, userID primitive.ObjectID) ([]models.LineItem, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	if user.Cart == nil {
		return nil, apperrors.ErrCartNotFound
	}

	cart, err := s.cartRepo.FindByID(ctx, *user.Cart)
	if err != nil {
		return nil, apperrors.ErrCartNotFound
	}

	lineItems := make([]models.LineItem, 0, len(cart.Products))
	for _, p := range cart.Products {
		lineItems = append(lineItems, models.LineItem{
			Name:     p.Name,
			Quantity: p.Quantity,
			Price:    p.Price,
		})
	}
	return lineItems, nil
}

// CreateOrder builds a payment preference for the given buyer and sends it to
// the gateway, returning the redirect URL. Validation happens before any
// external call. Nothing is persisted on this path; the payment is confirmed
// out-of-band through the payment notification endpoint.
func (s *CheckoutService) CreateOrder(ctx context.Context, email string, items []models.OrderItem) (string, error) {
	if email == "" {
		return "", apperrors.NewInvalidInput("email is required")
	}
	if len(items) == 0 {
		return "", apperrors.NewInvalidInput("items must not be empty")
	}
	for _, item := range items {
		if item.Title == "" || item.Quantity < 1 || item.UnitPrice <= 0 {
			return "", apperrors.NewInvalidInput("each item needs a title, a quantity of at least 1 and a positive unit price")
		}
	}

	prefItems := make([]clients.PreferenceItem, 0, len(items))
	for _, item := range items {
		prefItems = append(prefItems, clients.PreferenceItem{
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	pref := &clients.PreferenceRequest{
		Items: prefItems,
		Payer: clients.PreferencePayer{Email: email},
		BackURLs: clients.PreferenceBackURLs{
			Success: s.gwCfg.SuccessURL,
			Failure: s.gwCfg.FailureURL,
			Pending: s.gwCfg.PendingURL,
		},
		AutoReturn:        "approved",
		ExternalReference: uuid.NewString(),
	}

	resp, err := s.gateway.CreatePreference(ctx, pref)
	if err != nil {
		var gwErr *clients.GatewayError
		if errors.As(err, &gwErr) {
			zap.L().Warn("Payment gateway rejected preference",
				zap.Int("status", gwErr.StatusCode),
				zap.String("payer", email),
			)
			return "", apperrors.NewGatewayError(gwErr.Body, gwErr)
		}
		return "", apperrors.NewGatewayError("payment gateway unreachable", err)
	}

	return resp.InitPoint, nil
}

// RecordPayment appends a confirmed payment receipt to the addressed user in
// one atomic update. Receipts are append-only.
func (s *CheckoutService) RecordPayment(ctx context.Context, email string, receipt models.Receipt) (models.Receipt, error) {
	if email == "" {
		return models.Receipt{}, apperrors.NewInvalidInput("email is required")
	}
	if receipt.ReceiptID == "" {
		return models.Receipt{}, apperrors.NewInvalidInput("receiptID is required")
	}
	if receipt.DateCreated.IsZero() {
		receipt.DateCreated = time.Now().UTC()
	}

	if _, err := s.userRepo.PushReceipt(ctx, email, receipt); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Receipt{}, apperrors.ErrUserNotFound
		}
		return models.Receipt{}, apperrors.New(http.StatusInternalServerError, "failed to record receipt", err)
	}
	return receipt, nil
}

// CreateCart creates a cart and links it to the user. If the user id does not
// resolve, the just-created cart is deleted before the error is returned, so
// no orphaned cart is left behind.
func (s *CheckoutService) CreateCart(ctx context.Context, userID primitive.ObjectID, products []models.CartProduct) (*models.Cart, error) {
	if products == nil {
		products = []models.CartProduct{}
	}

	cart := &models.Cart{
		ID:       primitive.NewObjectID(),
		Products: products,
	}
	if err := s.cartRepo.Create(ctx, cart); err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "failed to create cart", err)
	}

	if err := s.userRepo.SetCart(ctx, userID, cart.ID); err != nil {
		_ = s.cartRepo.Delete(ctx, cart.ID)
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.New(http.StatusInternalServerError, "failed to link cart", err)
	}

	return cart, nil
}

// GetUserCart resolves a user by email with the cart expanded. A user without
// a cart yields a nil cart; only a missing user is an error.
func (s *CheckoutService) GetUserCart(ctx context.Context, email string) (*models.Cart, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	return s.expandCart(ctx, user)
}

// GetCart resolves the authenticated user's cart. Absence of a cart is a
// valid state, not an error.
func (s *CheckoutService) GetCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	return s.expandCart(ctx, user)
}

func (s *CheckoutService) expandCart(ctx context.Context, user *models.User) (*models.Cart, error) {
	if user.Cart == nil {
		return nil, nil
	}
	cart, err := s.cartRepo.FindByID(ctx, *user.Cart)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, apperrors.New(http.StatusInternalServerError, "failed to load cart", err)
	}
	return cart, nil
}

// EditCart replaces the user's cart product list wholesale. Supplying a
// shorter list drops the extra existing items.
func (s *CheckoutService) EditCart(ctx context.Context, userID primitive.ObjectID, products []models.CartProduct) (*models.Cart, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	if user.Cart == nil {
		return nil, apperrors.ErrCartNotFound
	}
	if products == nil {
		products = []models.CartProduct{}
	}

	cart, err := s.cartRepo.ReplaceProducts(ctx, *user.Cart, products)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrCartNotFound
		}
		return nil, apperrors.New(http.StatusInternalServerError, "failed to update cart", err)
	}
	return cart, nil
}
