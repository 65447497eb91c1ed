package internal

import (
	"context"
	"fmt"
	"golang.org/x/crypto/bcrypt"
	"hotelbooking/entity"
	"hotelbooking/services"
	"io"
	"strings"
	"time"
)

// Accounts registers and authenticates customers and staff.
type Accounts struct {
	database   services.Database
	uploader   services.Uploader
	extensions []string
	logger     services.LogHandler
}

func NewAccounts(database services.Database, uploader services.Uploader, extensions []string) *Accounts {
	return &Accounts{
		database:   database,
		uploader:   uploader,
		extensions: extensions,
		logger:     discard,
	}
}

func (a *Accounts) SetLogger(logger services.LogHandler) {
	a.logger = logger
}

func (a *Accounts) Register(ctx context.Context, customer *entity.Customer, password string) (string, error) {
	customer.Email = strings.TrimSpace(strings.ToLower(customer.Email))
	if customer.Email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	existing, err := a.database.GetCustomerByEmail(ctx, customer.Email)
	if err != nil {
		return "", fmt.Errorf("get customer: %w", err)
	}
	if existing != nil {
		return "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	customer.PasswordHash = string(hash)
	customer.CreatedAt = time.Now()
	customer.LastLogin = nil

	id, err := a.database.CreateCustomer(ctx, customer)
	if err != nil {
		return "", fmt.Errorf("create customer: %w", err)
	}
	a.logger.Info(fmt.Sprintf("customer registered: %s", secret(customer.Email)))
	return id, nil
}

func (a *Accounts) Login(ctx context.Context, email, password string) (*entity.Customer, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	customer, err := a.database.GetCustomerByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if customer == nil {
		return nil, ErrUnknownEmail
	}
	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)) != nil {
		return nil, ErrWrongPassword
	}

	now := time.Now()
	if err = a.database.UpdateLastLogin(ctx, customer.Email, now); err != nil {
		a.logger.Error("update last login", err)
	}
	customer.LastLogin = &now
	return customer, nil
}

func (a *Accounts) AdminLogin(ctx context.Context, email, password string) (*entity.Staff, error) {
	staff, err := a.database.GetStaffByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil, fmt.Errorf("get staff: %w", err)
	}
	if staff == nil || bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(password)) != nil {
		a.logger.Warn(fmt.Sprintf("admin login failed: %s", secret(email)))
		return nil, ErrInvalidCredentials
	}
	return staff, nil
}

// UpdateAvatar uploads a new avatar for the session's customer and returns its URL.
func (a *Accounts) UpdateAvatar(ctx context.Context, session *entity.Session, filename string, content io.Reader) (string, error) {
	if !allowedFile(filename, a.extensions) {
		return "", ErrUnsupportedFile
	}
	name := fmt.Sprintf("user_%s_%s", session.UserId, secureFilename(filename))
	url, err := a.uploader.Upload(ctx, name, content)
	if err != nil {
		return "", err
	}
	if err = a.database.UpdateCustomerAvatar(ctx, session.Email, url); err != nil {
		return "", fmt.Errorf("update avatar: %w", err)
	}
	return url, nil
}
