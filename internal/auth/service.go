// Package auth manages customer accounts and the three role-scoped
// bearer-token session maps. Operator and distributor are single fixed
// identities driven by environment-configured credentials, not stored
// entities.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/montero2/HERFISH-PROJECT/internal/ledger"
)

var (
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrEmailTaken indicates a registration against an existing email.
	ErrEmailTaken = errors.New("auth: email already registered")
	// ErrInvalidInput indicates a malformed registration request.
	ErrInvalidInput = errors.New("auth: invalid input")
)

// FixedCredentials holds the configured operator and distributor logins.
type FixedCredentials struct {
	OperatorEmail       string
	OperatorPassword    string
	DistributorEmail    string
	DistributorPassword string
}

// Service wraps account and session business rules.
type Service struct {
	store *ledger.Store
	fixed FixedCredentials
}

// NewService constructs a new Service.
func NewService(store *ledger.Store, fixed FixedCredentials) *Service {
	return &Service{store: store, fixed: fixed}
}

// RegisterInput describes a new customer account.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// Register creates a customer account with a bcrypt password hash.
// Emails are unique case-insensitively.
func (s *Service) Register(ctx context.Context, input RegisterInput) (ledger.CustomerAccount, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return ledger.CustomerAccount{}, ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return ledger.CustomerAccount{}, fmt.Errorf("hash password: %w", err)
	}

	var created ledger.CustomerAccount
	err = s.store.WithLock(func(tx *ledger.Tx) error {
		if _, exists := tx.AccountByEmail(input.Email); exists {
			return ErrEmailTaken
		}
		acc := &ledger.CustomerAccount{
			ID:           tx.NextID("CUST"),
			Name:         input.Name,
			Email:        input.Email,
			Phone:        strings.TrimSpace(input.Phone),
			PasswordHash: string(hash),
			CreatedAt:    time.Now(),
		}
		tx.AppendAccount(acc)
		created = acc.Clone()
		return nil
	})
	return created, err
}

// CustomerLogin validates credentials and issues a session token.
func (s *Service) CustomerLogin(ctx context.Context, email, password string) (string, ledger.CustomerAccount, error) {
	var (
		token   string
		account ledger.CustomerAccount
	)
	err := s.store.WithLock(func(tx *ledger.Tx) error {
		acc, ok := tx.AccountByEmail(email)
		if !ok {
			return ErrInvalidCredentials
		}
		if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
			return ErrInvalidCredentials
		}
		token = NewSessionToken()
		tx.PutCustomerSession(token, acc.ID)
		account = acc.Clone()
		return nil
	})
	if err != nil {
		return "", ledger.CustomerAccount{}, err
	}
	return token, account, nil
}

// OperatorLogin checks the fixed operator credentials and issues a token.
func (s *Service) OperatorLogin(ctx context.Context, email, password string) (string, error) {
	if s.fixed.OperatorEmail == "" ||
		!strings.EqualFold(email, s.fixed.OperatorEmail) ||
		password != s.fixed.OperatorPassword {
		return "", ErrInvalidCredentials
	}
	token := NewSessionToken()
	err := s.store.WithLock(func(tx *ledger.Tx) error {
		tx.PutOperatorSession(token)
		return nil
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// DistributorLogin checks the fixed distributor credentials and issues a token.
func (s *Service) DistributorLogin(ctx context.Context, email, password string) (string, error) {
	if s.fixed.DistributorEmail == "" ||
		!strings.EqualFold(email, s.fixed.DistributorEmail) ||
		password != s.fixed.DistributorPassword {
		return "", ErrInvalidCredentials
	}
	token := NewSessionToken()
	err := s.store.WithLock(func(tx *ledger.Tx) error {
		tx.PutDistributorSession(token)
		return nil
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// Logout removes the token from every role map. Unknown tokens are a
// no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.store.WithLock(func(tx *ledger.Tx) error {
		tx.DeleteSession(token)
		return nil
	})
}

// CustomerByToken resolves a customer session to its account.
func (s *Service) CustomerByToken(ctx context.Context, token string) (ledger.CustomerAccount, bool) {
	var (
		account ledger.CustomerAccount
		found   bool
	)
	_ = s.store.WithLock(func(tx *ledger.Tx) error {
		id, ok := tx.CustomerSessionAccount(token)
		if !ok {
			return nil
		}
		if acc, ok := tx.AccountByID(id); ok {
			account = acc.Clone()
			found = true
		}
		return nil
	})
	return account, found
}

// IsOperatorToken reports whether the token is a live operator session.
func (s *Service) IsOperatorToken(ctx context.Context, token string) bool {
	var ok bool
	_ = s.store.WithLock(func(tx *ledger.Tx) error {
		ok = tx.HasOperatorSession(token)
		return nil
	})
	return ok
}

// IsDistributorToken reports whether the token is a live distributor session.
func (s *Service) IsDistributorToken(ctx context.Context, token string) bool {
	var ok bool
	_ = s.store.WithLock(func(tx *ledger.Tx) error {
		ok = tx.HasDistributorSession(token)
		return nil
	})
	return ok
}

// NewSessionToken returns an opaque random token.
func NewSessionToken() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return base64.RawURLEncoding.EncodeToString([]byte(time.Now().Format(time.RFC3339Nano)))
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
