package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/media"
	"github.com/aussiebroadwan/folio/internal/folio/store"
	"github.com/aussiebroadwan/folio/pkg/cryptox"
	"github.com/aussiebroadwan/folio/pkg/idx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

const profileFolder = "profiles"

type RegisterInput struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Username  string `json:"username" validate:"required,min=3,max=30,username"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Phone     string `json:"phone" validate:"required,phone"`
	Password  string `json:"password" validate:"required,password"`
}

func (in *RegisterInput) normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Username = domain.NormalizeHandle(in.Username)
	in.Email = domain.NormalizeHandle(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserUpdateInput is a patch: nil fields are left untouched.
type UserUpdateInput struct {
	FirstName *string `json:"firstName" validate:"omitnil,min=1,max=50"`
	LastName  *string `json:"lastName" validate:"omitnil,min=1,max=50"`
	Username  *string `json:"username" validate:"omitnil,min=3,max=30,username"`
	Email     *string `json:"email" validate:"omitnil,email,max=254"`
	Phone     *string `json:"phone" validate:"omitnil,phone"`
	Password  *string `json:"password" validate:"omitnil,password"`
	Role      *string `json:"role" validate:"omitnil,oneof=user admin"`
}

func (in *UserUpdateInput) normalize() {
	trim := func(p *string, f func(string) string) {
		if p != nil {
			*p = f(*p)
		}
	}
	trim(in.FirstName, strings.TrimSpace)
	trim(in.LastName, strings.TrimSpace)
	trim(in.Username, domain.NormalizeHandle)
	trim(in.Email, domain.NormalizeHandle)
	trim(in.Phone, strings.TrimSpace)
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      domain.User
}

type UserService struct {
	Store  store.Store
	Media  *media.Manager
	Tokens *TokenService
}

// Register creates an account with the user role and the default picture.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	l := slogx.FromContext(ctx)

	in.normalize()
	if err := validateStruct(in); err != nil {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		l.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.NewString(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Username:     in.Username,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Image:        domain.DefaultImage,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrConflict
		}
		return domain.User{}, err
	}

	l.Info("user registered", slog.String("user_id", u.ID))
	return u, nil
}

// Login checks the credentials and issues a bearer token. An unknown email
// and a wrong password are indistinguishable, in response and in timing.
func (s *UserService) Login(ctx context.Context, in LoginInput) (Session, error) {
	if err := validateStruct(in); err != nil {
		return Session{}, err
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, domain.NormalizeHandle(in.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			cryptox.BurnVerify(in.Password)
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}

	if cryptox.VerifyPassword(in.Password, u.PasswordHash) != nil {
		slogx.FromContext(ctx).Warn("failed login", slog.String("user_id", u.ID))
		return Session{}, ErrInvalidCredentials
	}

	token, exp, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: exp, User: u}, nil
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, id string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	return u, mapStoreErr(err)
}

// List returns every user. Admin only.
func (s *UserService) List(ctx context.Context, actor domain.User) ([]domain.User, error) {
	if err := Authorize(actor, ActionUserList, ""); err != nil {
		return nil, err
	}
	users, _, err := s.Store.Users().ListUsers(ctx, store.ListOptions{})
	return users, err
}

// load fetches the target user and applies the policy for action.
func (s *UserService) load(ctx context.Context, actor domain.User, id string, action Action) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapStoreErr(err)
	}
	if err := Authorize(actor, action, u.ID); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// Update applies a patch to a user and, when up is given, replaces the
// profile picture. Only admins may change a role.
func (s *UserService) Update(ctx context.Context, actor domain.User, id string, in UserUpdateInput, up *media.Upload) (domain.User, error) {
	u, err := s.load(ctx, actor, id, ActionUserUpdate)
	if err != nil {
		return domain.User{}, err
	}
	if in.Role != nil && !actor.IsAdmin() {
		return domain.User{}, ErrForbidden
	}

	in.normalize()
	if err := validateStruct(in); err != nil {
		return domain.User{}, err
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&u.FirstName, in.FirstName)
	apply(&u.LastName, in.LastName)
	apply(&u.Username, in.Username)
	apply(&u.Email, in.Email)
	apply(&u.Phone, in.Phone)
	if in.Role != nil {
		u.Role = domain.Role(*in.Role)
	}
	if in.Password != nil {
		hash, err := cryptox.HashPassword(*in.Password)
		if err != nil {
			return domain.User{}, err
		}
		u.PasswordHash = hash
	}
	u.UpdatedAt = time.Now().UTC()

	err = replaceImage(ctx, s.Media, profileFolder, u.Image, up, func(next domain.ImageRef) error {
		u.Image = next
		return mapStoreErr(s.Store.Users().UpdateUser(ctx, u))
	})
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// UpdateProfilePicture replaces the user's picture with up. The previous
// picture is deleted once the new one is recorded, unless it is the default.
func (s *UserService) UpdateProfilePicture(ctx context.Context, actor domain.User, id string, up *media.Upload) (domain.User, error) {
	u, err := s.load(ctx, actor, id, ActionUserUpdatePicture)
	if err != nil {
		return domain.User{}, err
	}
	if up == nil {
		return domain.User{}, newValidationError("profilePic", "is required")
	}

	err = replaceImage(ctx, s.Media, profileFolder, u.Image, up, func(next domain.ImageRef) error {
		u.Image = next
		u.UpdatedAt = time.Now().UTC()
		return mapStoreErr(s.Store.Users().UpdateUser(ctx, u))
	})
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// Delete removes the account and releases its picture.
func (s *UserService) Delete(ctx context.Context, actor domain.User, id string) error {
	u, err := s.load(ctx, actor, id, ActionUserDelete)
	if err != nil {
		return err
	}

	err = deleteWithImage(ctx, s.Media, u.Image, func() error {
		return mapStoreErr(s.Store.Users().DeleteUser(ctx, u.ID))
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("user deleted", slog.String("user_id", u.ID), slog.String("by", actor.ID))
	return nil
}
