package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"ecomm/internal/errors"
	"ecomm/internal/model"
	"ecomm/internal/repository"
)

const bcryptCost = 10

// AccountService manages customer accounts.
type AccountService interface {
	Create(ctx context.Context, draft model.AccountDraft) (*model.Account, error)
	Get(ctx context.Context, id uint) (*model.Account, error)
	// List returns every account, or only the account of customerID when it is not zero.
	List(ctx context.Context, customerID uint) ([]model.Account, error)
	Update(ctx context.Context, id uint, patch model.AccountPatch) (*model.Account, error)
	Delete(ctx context.Context, id uint) error
}

type accountService struct {
	store repository.Store
}

// NewAccountService creates a new account service.
func NewAccountService(store repository.Store) AccountService {
	return &accountService{store: store}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Create creates a new account with hashed password.
func (s *accountService) Create(ctx context.Context, draft model.AccountDraft) (*model.Account, error) {
	hashed, err := hashPassword(draft.Password)
	if err != nil {
		return nil, err
	}

	account := &model.Account{
		CustomerID:   draft.CustomerID,
		Username:     draft.Username,
		Email:        draft.Email,
		PasswordHash: hashed,
	}
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if _, err := tx.Customers().FindByID(ctx, draft.CustomerID); err != nil {
			return err
		}
		existing, err := tx.Accounts().List(ctx, repository.AccountFilter{CustomerID: draft.CustomerID})
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return errors.Conflict("customer already has an account")
		}
		if err := checkUnique(ctx, tx, 0, &draft.Username, &draft.Email); err != nil {
			return err
		}
		return tx.Accounts().Create(ctx, account)
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *accountService) Get(ctx context.Context, id uint) (*model.Account, error) {
	return s.store.Accounts().FindByID(ctx, id)
}

func (s *accountService) List(ctx context.Context, customerID uint) ([]model.Account, error) {
	return s.store.Accounts().List(ctx, repository.AccountFilter{CustomerID: customerID})
}

// Update applies a partial update, re-hashing the password when one is supplied.
func (s *accountService) Update(ctx context.Context, id uint, patch model.AccountPatch) (*model.Account, error) {
	var hashed string
	if patch.Password != nil {
		var err error
		if hashed, err = hashPassword(*patch.Password); err != nil {
			return nil, err
		}
	}

	var account *model.Account
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		a, err := tx.Accounts().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := checkUnique(ctx, tx, a.ID, patch.Username, patch.Email); err != nil {
			return err
		}
		patch.Apply(a)
		if hashed != "" {
			a.PasswordHash = hashed
		}
		if err := tx.Accounts().Update(ctx, a); err != nil {
			return err
		}
		account = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *accountService) Delete(ctx context.Context, id uint) error {
	return s.store.Accounts().Delete(ctx, id)
}

// checkUnique fails with Conflict when another account than self already uses
// the username or email.
func checkUnique(ctx context.Context, tx repository.Store, self uint, username, email *string) error {
	if username != nil {
		taken, err := tx.Accounts().List(ctx, repository.AccountFilter{Username: *username})
		if err != nil {
			return err
		}
		if usedByOther(taken, self) {
			return errors.Conflict("username is already taken")
		}
	}
	if email != nil {
		taken, err := tx.Accounts().FindByEmail(ctx, *email)
		switch {
		case err == nil && taken.ID != self:
			return errors.Conflict("email is already in use")
		case err != nil && !stderrors.Is(err, errors.ErrNotFound):
			return err
		}
	}
	return nil
}

func usedByOther(accounts []model.Account, self uint) bool {
	for _, a := range accounts {
		if a.ID != self {
			return true
		}
	}
	return false
}
