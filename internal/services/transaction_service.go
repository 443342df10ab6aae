package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"stock-trading-platform/config"
	"stock-trading-platform/internal/models"
)

type TransactionService struct {
	transactionCollection *mongo.Collection
}

func NewTransactionService() *TransactionService {
	return &TransactionService{
		transactionCollection: config.GetCollection(config.TransactionsCollection),
	}
}

// Create records a transaction for a completed order. The public ID and
// timestamp are assigned here if the caller left them empty.
func (s *TransactionService) Create(txn *models.Transaction) error {
	txn.ID = primitive.NewObjectID()
	if txn.TransactionID == "" {
		txn.TransactionID = uuid.NewString()
	}
	if txn.Timestamp.IsZero() {
		txn.Timestamp = time.Now()
	}
	_, err := s.transactionCollection.InsertOne(context.Background(), txn)
	return err
}

func (s *TransactionService) Get(transactionID string) (*models.Transaction, error) {
	var txn models.Transaction
	err := s.transactionCollection.FindOne(context.Background(), bson.M{
		"transaction_id": transactionID,
	}).Decode(&txn)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &txn, nil
}

func (s *TransactionService) ListForUser(username string) ([]models.Transaction, error) {
	return s.list(bson.M{"username": username})
}

// ListAll returns every transaction in the system (admin use).
func (s *TransactionService) ListAll() ([]models.Transaction, error) {
	return s.list(bson.M{})
}

func (s *TransactionService) list(filter bson.M) ([]models.Transaction, error) {
	cur, err := s.transactionCollection.Find(context.Background(), filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(context.Background())

	var txns []models.Transaction
	if err := cur.All(context.Background(), &txns); err != nil {
		return nil, err
	}
	return txns, nil
}
