package repository

import (
	"context"
	"errors"
	"fmt"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"authapi/internal/model"
)

var (
	// ErrNotFound is returned when no user matches the query.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when a write violates the unique email index.
	ErrDuplicateKey = errors.New("duplicate key")
)

// mysqlDuplicateEntry is the server error number for unique index violations.
const mysqlDuplicateEntry = 1062

// FindOptions tunes a lookup.
type FindOptions struct {
	OmitPassword bool
}

// FindOption mutates FindOptions.
type FindOption func(*FindOptions)

// WithoutPassword leaves the password hash out of the returned user.
func WithoutPassword() FindOption {
	return func(o *FindOptions) {
		o.OmitPassword = true
	}
}

func applyFindOptions(opts []FindOption) FindOptions {
	var o FindOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string, opts ...FindOption) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// EnsureIndexes creates the schema and the unique email index.
	EnsureIndexes(ctx context.Context) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateGormError(err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string, opts ...FindOption) (*model.User, error) {
	q := r.db.WithContext(ctx)
	if applyFindOptions(opts).OmitPassword {
		q = q.Omit("password_hash")
	}

	var user model.User
	if err := q.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &user, nil
}

func (r *userRepository) EnsureIndexes(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&model.User{}); err != nil {
		return fmt.Errorf("auto-migrate users: %w", err)
	}
	return nil
}

func translateGormError(err error) error {
	var mysqlErr *mysqldriver.MySQLError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry:
		return ErrDuplicateKey
	default:
		return err
	}
}
