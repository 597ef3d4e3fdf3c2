package services

import (
	"context"
	"net/http"

	apperrors "storefront-backend/errors"
	"storefront-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type IUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindAll(ctx context.Context) ([]*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateFields(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.User, error)
	SetCart(ctx context.Context, userID, cartID primitive.ObjectID) error
	PushReceipt(ctx context.Context, email string, receipt models.Receipt) (*models.User, error)
}

type ICartRepository interface {
	Create(ctx context.Context, cart *models.Cart) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Cart, error)
	ReplaceProducts(ctx context.Context, id primitive.ObjectID, products []models.CartProduct) (*models.Cart, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ITokenService interface {
	GenerateToken(userID string) (string, error)
	ValidateToken(tokenStr string) (string, error)
}

type RegisterInput struct {
	Name     string
	Lastname string
	Email    string
	Password string
	Country  string
	Address  string
	Zipcode  int
}

type AuthService struct {
	userRepo     IUserRepository
	cartRepo     ICartRepository
	tokenService ITokenService
}

func NewAuthService(ur IUserRepository, cr ICartRepository, ts ITokenService) *AuthService {
	return &AuthService{userRepo: ur, cartRepo: cr, tokenService: ts}
}

// Register creates a user with a hashed password and an empty linked cart.
// If the user insert fails the fresh cart is deleted, so a rejected
// registration leaves neither document behind.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	_, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != mongo.ErrNoDocuments {
		return nil, apperrors.New(http.StatusInternalServerError, "failed to check existing user", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "failed to hash password", err)
	}

	cart := &models.Cart{
		ID:       primitive.NewObjectID(),
		Products: []models.CartProduct{},
	}
	if err := s.cartRepo.Create(ctx, cart); err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "failed to create cart", err)
	}

	user := &models.User{
		ID:       primitive.NewObjectID(),
		Name:     input.Name,
		Lastname: input.Lastname,
		Email:    input.Email,
		Password: string(hashed),
		Country:  input.Country,
		Address:  input.Address,
		Zipcode:  input.Zipcode,
		Cart:     &cart.ID,
		Receipts: []models.Receipt{},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Compensate for the orphaned cart before reporting the failure.
		_ = s.cartRepo.Delete(ctx, cart.ID)
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, apperrors.New(http.StatusInternalServerError, "failed to create user", err)
	}

	return user, nil
}

// Login verifies the credentials and issues a bearer token carrying the user id.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokenService.GenerateToken(user.ID.Hex())
	if err != nil {
		return "", apperrors.New(http.StatusInternalServerError, "failed to generate token", err)
	}
	return token, nil
}

// UpdateUser merges the provided fields into the user document. A supplied
// password is re-hashed before persisting.
func (s *AuthService) UpdateUser(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.User, error) {
	if len(updates) == 0 {
		return nil, apperrors.NewInvalidInput("no update fields provided")
	}
	delete(updates, "_id")

	if password, ok := updates["password"].(string); ok {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			return nil, apperrors.New(http.StatusInternalServerError, "failed to hash password", err)
		}
		updates["password"] = string(hashed)
	}

	user, err := s.userRepo.UpdateFields(ctx, id, updates)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.New(http.StatusInternalServerError, "failed to update user", err)
	}
	return user, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "failed to list users", err)
	}
	return users, nil
}
