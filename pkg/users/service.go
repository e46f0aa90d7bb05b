package users

import (
	"context"
	"database/sql"
	"time"

	"github.com/bibliocat/bibliocat/pkg/auth"
	"github.com/bibliocat/bibliocat/pkg/errcodes"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type CreateUserOptions struct {
	Username    string
	Password    string
	FirstName   string
	LastName    string
	Email       string
	Telefon     *string
	SiteID      *int
	GroupID     *int
	IsStaff     bool
	IsSuperuser bool
}

type RetrieveUserOptions struct {
	ID       *int
	Username *string
}

type ListUsersOptions struct {
	Limit  *int
	Offset *int
}

type UpdateUserOptions struct {
	Columns []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// Create inserts a user and then assigns the default role to non-privileged
// accounts as an explicit post-creation step.
func (svc *Service) Create(ctx context.Context, opts CreateUserOptions) (*models.User, error) {
	hash, err := auth.HashPassword(opts.Password)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	now := time.Now()
	user := &models.User{
		Username:     opts.Username,
		FirstName:    opts.FirstName,
		LastName:     opts.LastName,
		Email:        opts.Email,
		Telefon:      opts.Telefon,
		PasswordHash: hash,
		SiteID:       opts.SiteID,
		GroupID:      opts.GroupID,
		IsStaff:      opts.IsStaff,
		IsSuperuser:  opts.IsSuperuser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = svc.db.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := svc.EnsureDefaultRole(ctx, user); err != nil {
		return nil, errors.WithStack(err)
	}

	return svc.Retrieve(ctx, RetrieveUserOptions{ID: &user.ID})
}

// EnsureDefaultRole assigns the "usuari" role to non-staff, non-superuser
// accounts. It's a no-op for privileged accounts and when the role is already
// assigned.
func (svc *Service) EnsureDefaultRole(ctx context.Context, user *models.User) error {
	if user.IsStaff || user.IsSuperuser {
		return nil
	}

	role := &models.Role{}
	err := svc.db.NewSelect().
		Model(role).
		Where("r.nom = ?", models.RoleUser).
		Scan(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	_, err = svc.db.NewInsert().
		Model(&models.UserRole{UserID: user.ID, RoleID: role.ID}).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) Retrieve(ctx context.Context, opts RetrieveUserOptions) (*models.User, error) {
	user := &models.User{}

	q := svc.db.
		NewSelect().
		Model(user).
		Relation("Site").
		Relation("Group").
		Relation("Roles")

	if opts.ID != nil {
		q = q.Where("u.id = ?", *opts.ID)
	}
	if opts.Username != nil {
		q = q.Where("u.username = ? COLLATE NOCASE", *opts.Username)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Usuari")
		}
		return nil, errors.WithStack(err)
	}

	return user, nil
}

// Exists reports whether a user with the given username is registered.
func (svc *Service) Exists(ctx context.Context, username string) (bool, error) {
	exists, err := svc.db.NewSelect().
		Model((*models.User)(nil)).
		Where("u.username = ? COLLATE NOCASE", username).
		Exists(ctx)
	return exists, errors.WithStack(err)
}

func (svc *Service) List(ctx context.Context, opts ListUsersOptions) ([]*models.User, int, error) {
	userList := []*models.User{}

	q := svc.db.
		NewSelect().
		Model(&userList).
		Relation("Site").
		Relation("Group").
		Relation("Roles").
		Order("u.created_at ASC")

	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return userList, total, nil
}

func (svc *Service) Update(ctx context.Context, user *models.User, opts UpdateUserOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	user.UpdatedAt = time.Now()
	columns := append(opts.Columns, "updated_at")

	_, err := svc.db.NewUpdate().
		Model(user).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errcodes.NotFound("Usuari")
		}
		return errors.WithStack(err)
	}

	return nil
}

// Deactivate marks the account inactive rather than deleting the row so loan
// history keeps its references.
func (svc *Service) Deactivate(ctx context.Context, id int) error {
	res, err := svc.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("is_active = ?", false).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errcodes.NotFound("Usuari")
	}
	return nil
}

// Search returns users carrying the "usuari" role whose name, email, or
// phone contains the query.
func (svc *Service) Search(ctx context.Context, query string) ([]*models.User, error) {
	userList := []*models.User{}
	pattern := "%" + query + "%"

	err := svc.db.
		NewSelect().
		Model(&userList).
		Relation("Site").
		Relation("Roles").
		Join("JOIN usuari_rols AS ur ON ur.usuari_id = u.id").
		Join("JOIN rols AS rr ON rr.id = ur.rol_id").
		Where("rr.nom = ?", models.RoleUser).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				WhereOr("u.first_name LIKE ? COLLATE NOCASE", pattern).
				WhereOr("u.last_name LIKE ? COLLATE NOCASE", pattern).
				WhereOr("u.email LIKE ? COLLATE NOCASE", pattern).
				WhereOr("u.telefon LIKE ?", pattern)
		}).
		Distinct().
		Order("u.last_name ASC", "u.first_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return userList, nil
}
