package relational

import (
	"context"
	"fmt"
	"strings"

	"serverless-crud-api/internal/dataclient"
	"serverless-crud-api/internal/models"
	"serverless-crud-api/internal/repositories"
)

const userColumns = "id, name, email, created_at, updated_at"

// UserRepository implements repositories.UserRepository over a data client
type UserRepository struct {
	*BaseRepository[models.User]
}

// NewUserRepository creates a new user repository
func NewUserRepository(deps Deps) repositories.UserRepository {
	return &UserRepository{
		BaseRepository: NewBaseRepository(deps, "users", mapUser),
	}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, name, email string) (*models.User, error) {
	id := r.ids.Generate()
	now := r.now()

	query := `
		INSERT INTO users (id, name, email, created_at, updated_at)
		VALUES (:id, :name, :email, :createdAt, :updatedAt)
		RETURNING ` + userColumns

	return r.execReturning(ctx, "create", id, query,
		dataclient.String("id", id),
		dataclient.String("name", name),
		dataclient.String("email", email),
		dataclient.Timestamp("createdAt", now),
		dataclient.Timestamp("updatedAt", now),
	)
}

// FindByID retrieves a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = :id`
	return r.queryOne(ctx, "find_by_id", id, query, dataclient.String("id", id))
}

// FindByEmail retrieves a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = :email`
	return r.queryOne(ctx, "find_by_email", "", query, dataclient.String("email", email))
}

// FindAll retrieves all users, newest first
func (r *UserRepository) FindAll(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC, id DESC`
	return r.queryMany(ctx, "find_all", query)
}

// Update changes only the supplied fields. An empty update returns the
// current record untouched.
func (r *UserRepository) Update(ctx context.Context, id string, fields repositories.UserUpdate) (*models.User, error) {
	if fields.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	var sets []string
	var params []dataclient.Param

	if fields.Name != nil {
		sets = append(sets, "name = :name")
		params = append(params, dataclient.String("name", *fields.Name))
	}
	if fields.Email != nil {
		sets = append(sets, "email = :email")
		params = append(params, dataclient.String("email", *fields.Email))
	}

	sets = append(sets, "updated_at = :updatedAt")
	params = append(params,
		dataclient.Timestamp("updatedAt", r.now()),
		dataclient.String("id", id),
	)

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = :id RETURNING %s", strings.Join(sets, ", "), userColumns)
	return r.execReturning(ctx, "update", id, query, params...)
}

// Delete removes a user by ID
func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.deleteByID(ctx, id)
}

func mapUser(record dataclient.Record) (*models.User, error) {
	var (
		user models.User
		err  error
	)

	if user.ID, err = stringField(record, "id"); err != nil {
		return nil, err
	}
	if user.Name, err = stringField(record, "name"); err != nil {
		return nil, err
	}
	if user.Email, err = stringField(record, "email"); err != nil {
		return nil, err
	}
	if user.CreatedAt, err = timeField(record, "created_at"); err != nil {
		return nil, err
	}
	if user.UpdatedAt, err = timeField(record, "updated_at"); err != nil {
		return nil, err
	}

	return &user, nil
}
