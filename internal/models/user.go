package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Account holds the cash balance of a customer. It lives embedded in the
// user document; admins have no account.
type Account struct {
	Balance float64 `bson:"balance" json:"balance"`
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username  string             `bson:"username" json:"username"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	UserType  string             `bson:"user_type" json:"userType"`
	IsActive  bool               `bson:"is_active" json:"isActive"`
	Account   *Account           `bson:"account,omitempty" json:"account,omitempty"`
	Portfolio map[string]int     `bson:"portfolio,omitempty" json:"portfolio,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// HashPassword hashes the user's password
func (u *User) HashPassword() error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword checks if the provided password matches the hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

func (u *User) IsAdmin() bool {
	return u.UserType == RoleAdmin
}

// Holdings returns the number of shares of ticker the user owns.
func (u *User) Holdings(ticker string) int {
	if u.Portfolio == nil {
		return 0
	}
	return u.Portfolio[ticker]
}
