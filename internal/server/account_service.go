package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/candyhouse/talent-profile/internal/config"
	"github.com/candyhouse/talent-profile/internal/db"
	"github.com/candyhouse/talent-profile/internal/types"
	"github.com/google/uuid"
)

// AccountService provides business logic for talent registration and login.
type AccountService struct {
	db             DBClient
	passwordConfig *config.PasswordConfig
}

// NewAccountService creates a new AccountService with the given dependencies.
func NewAccountService(db DBClient, passwordConfig *config.PasswordConfig) *AccountService {
	return &AccountService{
		db:             db,
		passwordConfig: passwordConfig,
	}
}

func toTypesAccount(a *db.Account) *types.Account {
	if a == nil {
		return nil
	}
	return &types.Account{
		ID:        a.ID,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		CreatedAt: a.CreatedAt,
	}
}

// seedResume is the resume every new account starts with.
func seedResume(a *db.Account) types.Resume {
	r := types.EmptyResume()
	r.AccountID = a.ID.String()
	r.FirstName = a.FirstName
	r.LastName = a.LastName
	return r
}

// Register creates an account and its seed resume.
func (s *AccountService) Register(ctx context.Context, req *types.TalentRegister) (*types.Account, error) {
	exists, err := s.db.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &db.Account{
		ID:           uuid.New(),
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: passwordHash,
	}
	if err := s.db.CreateAccount(ctx, account, seedResume(account)); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, db.ErrDuplicateEmail) {
			return nil, &ErrEmailAlreadyExists{Email: req.Email}
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return toTypesAccount(account), nil
}

// Login authenticates a talent by email and password.
func (s *AccountService) Login(ctx context.Context, req *types.LoginRequest) (*types.Account, error) {
	account, err := s.db.GetAccountByEmail(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	if account == nil {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, account.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return toTypesAccount(account), nil
}

// GetResume returns the stored resume of accountID.
func (s *AccountService) GetResume(ctx context.Context, accountID uuid.UUID) (*types.Resume, error) {
	resume, err := s.db.GetResume(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	if resume == nil {
		return nil, &ErrProfileNotFound{AccountID: accountID}
	}
	return resume, nil
}

// SaveResume replaces the stored resume of accountID. The document's accountId
// is always the caller's.
func (s *AccountService) SaveResume(ctx context.Context, accountID uuid.UUID, resume types.Resume) (*types.Resume, error) {
	resume.AccountID = accountID.String()
	if err := s.db.SaveResume(ctx, accountID, resume); err != nil {
		var nf *db.NotFoundError
		if errors.As(err, &nf) {
			return nil, &ErrProfileNotFound{AccountID: accountID}
		}
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}
	return &resume, nil
}
