// internal/service/registration_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"user-registration/internal/domain"
	"user-registration/internal/repository"
	"user-registration/internal/util"
	"user-registration/pkg/db"
)

// RegistrationService defines the sign-up business logic.
type RegistrationService interface {
	// Register validates the form, rejects taken usernames or emails and
	// stores a new user. Problems the user can fix are returned as
	// domain.FieldErrors; anything else is a storage failure.
	Register(ctx context.Context, form domain.RegistrationForm) (*domain.User, error)
}

// registrationService implements the RegistrationService interface.
type registrationService struct {
	dbBeginner db.DBTxBeginner
	userRepo   repository.UserRepository
	hasher     PasswordHasher
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc
}

// NewRegistrationService creates a new instance of RegistrationService.
func NewRegistrationService(
	dbBeginner db.DBTxBeginner,
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) RegistrationService {
	return &registrationService{
		dbBeginner: dbBeginner,
		userRepo:   userRepo,
		hasher:     hasher,
		beginTx:    beginTx,
		commitTx:   commitTx,
		rollbackTx: rollbackTx,
	}
}

// Register creates a user account from a sign-up submission.
//
// The duplicate lookup only gives friendlier messages; the UNIQUE
// constraints on users decide, and a violation raised by the insert is
// reported the same way.
func (s *registrationService) Register(ctx context.Context, form domain.RegistrationForm) (*domain.User, error) {
	form = form.Normalize()
	if errs := form.Validate(); errs != nil {
		return nil, errs
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("register: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("register: transaction controller does not implement DBExecutor")
	}

	existing, err := s.userRepo.FindByUsernameOrEmail(ctx, txExecutor, form.Username, form.Email)
	if err != nil {
		return nil, fmt.Errorf("register: failed to check existing users: %w", err)
	}
	if errs := conflicts(form, existing); errs != nil {
		return nil, errs
	}

	hash, err := s.hasher.Hash(form.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.FieldErrors{domain.FieldPassword: "Password must be at most 72 bytes"}
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	user := domain.NewUser(form, hash)
	if err := s.userRepo.CreateUser(ctx, txExecutor, user); err != nil {
		switch {
		case util.IsError(err, util.ErrDuplicateUsername):
			return nil, domain.FieldErrors{domain.FieldUsername: domain.MsgUsernameTaken}
		case util.IsError(err, util.ErrDuplicateEmail):
			return nil, domain.FieldErrors{domain.FieldEmail: domain.MsgEmailTaken}
		}
		return nil, fmt.Errorf("register: failed to create user: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("register: failed to commit transaction: %w", err)
	}

	return user, nil
}

// conflicts reports which of the submitted values are already registered.
func conflicts(form domain.RegistrationForm, existing []domain.User) domain.FieldErrors {
	errs := domain.FieldErrors{}
	for _, u := range existing {
		if u.Username == form.Username {
			errs[domain.FieldUsername] = domain.MsgUsernameTaken
		}
		if u.Email == form.Email {
			errs[domain.FieldEmail] = domain.MsgEmailTaken
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
