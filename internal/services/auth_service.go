package services

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"stock-trading-platform/config"
	"stock-trading-platform/internal/models"
)

type AuthService struct {
	userCollection *mongo.Collection
}

func NewAuthService() *AuthService {
	return &AuthService{
		userCollection: config.GetCollection(config.UsersCollection),
	}
}

// Register creates a new user. Customers start with a zero-balance
// account and an empty portfolio; admins get neither.
func (s *AuthService) Register(user *models.User) error {
	var existingUser models.User
	err := s.userCollection.FindOne(context.Background(), bson.M{
		"$or": []bson.M{
			{"username": user.Username},
			{"email": user.Email},
		},
	}).Decode(&existingUser)

	if err == nil {
		return ErrUserExists
	} else if err != mongo.ErrNoDocuments {
		return err
	}

	if err := user.HashPassword(); err != nil {
		return err
	}

	user.ID = primitive.NewObjectID()
	user.IsActive = true
	user.CreatedAt = time.Now()
	if user.UserType == models.RoleCustomer {
		user.Account = &models.Account{Balance: 0.0}
		user.Portfolio = map[string]int{}
	} else {
		user.Account = nil
		user.Portfolio = nil
	}

	_, err = s.userCollection.InsertOne(context.Background(), user)
	if err != nil {
		return err
	}

	log.Printf("✅ New %s registered: %s", user.UserType, user.Username)
	return nil
}

// Authenticate verifies the credentials and returns the user. Inactive
// accounts are rejected even with a correct password.
func (s *AuthService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	err := s.userCollection.FindOne(context.Background(), bson.M{
		"username": username,
	}).Decode(&user)

	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	return &user, nil
}

// GetByUsername returns a user by username, active or not. Deactivated
// users stay readable so their orders and transactions remain
// attributable; the login and middleware paths reject them separately.
func (s *AuthService) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.userCollection.FindOne(context.Background(), bson.M{
		"username": username,
	}).Decode(&user)

	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateDetails replaces the email and password of a user.
func (s *AuthService) UpdateDetails(username, email, password string) (*models.User, error) {
	tmp := models.User{Password: password}
	if err := tmp.HashPassword(); err != nil {
		return nil, err
	}

	result, err := s.userCollection.UpdateOne(
		context.Background(),
		bson.M{"username": username},
		bson.M{"$set": bson.M{
			"email":    email,
			"password": tmp.Password,
		}},
	)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrUserNotFound
	}
	return s.GetByUsername(username)
}

// Deactivate marks a user inactive. The document is kept so past orders
// and transactions stay attributable.
func (s *AuthService) Deactivate(username string) error {
	result, err := s.userCollection.UpdateOne(
		context.Background(),
		bson.M{"username": username},
		bson.M{"$set": bson.M{"is_active": false}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	log.Printf("User deactivated: %s", username)
	return nil
}

// ListUsers returns every user in the system (admin use).
func (s *AuthService) ListUsers() ([]models.User, error) {
	cur, err := s.userCollection.Find(context.Background(), bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(context.Background())

	var users []models.User
	if err := cur.All(context.Background(), &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetAccount returns the embedded account of a customer.
func (s *AuthService) GetAccount(username string) (*models.Account, error) {
	user, err := s.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user.Account == nil {
		return nil, ErrNotCustomer
	}
	return user.Account, nil
}

// SetBalance overwrites the account balance of a customer.
func (s *AuthService) SetBalance(username string, balance float64) (*models.Account, error) {
	user, err := s.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user.Account == nil {
		return nil, ErrNotCustomer
	}

	_, err = s.userCollection.UpdateOne(
		context.Background(),
		bson.M{"username": username},
		bson.M{"$set": bson.M{"account.balance": balance}},
	)
	if err != nil {
		return nil, err
	}
	return &models.Account{Balance: balance}, nil
}
