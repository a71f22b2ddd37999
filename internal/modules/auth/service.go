package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"apartmentbooking/internal/domain"
	"apartmentbooking/internal/pkg/blobstore"
	"apartmentbooking/internal/pkg/clock"
	"apartmentbooking/internal/pkg/logger"
	"apartmentbooking/internal/repository"
)

const (
	personalPhotoFolder = "personal_photos"
	idPhotoFolder       = "id_photos"
)

// Service is the identity store: registration, login and user lookup.
type Service struct {
	users  UserRepository
	jwt    TokenIssuer
	tokens TokenRevoker
	blobs  blobstore.Store
	clock  clock.Clock
}

type LoginResult struct {
	User  *domain.User
	Token string
}

func NewService(users UserRepository, jwt TokenIssuer, tokens TokenRevoker, blobs blobstore.Store, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	return &Service{users: users, jwt: jwt, tokens: tokens, blobs: blobs, clock: clk}
}

func (s *Service) Blobs() blobstore.Store { return s.blobs }

// Register creates a pending tenant or owner account.
func (s *Service) Register(ctx context.Context, req RegisterRequest, photos Photos) (*domain.User, error) {
	role := domain.UserRole(strings.ToLower(strings.TrimSpace(req.Role)))
	if role != domain.RoleTenant && role != domain.RoleOwner {
		return nil, ErrInvalidRole
	}

	birthDate, err := s.parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	phone := strings.TrimSpace(req.Phone)
	if _, err := s.users.GetByPhone(ctx, phone); err == nil {
		return nil, ErrPhoneAlreadyExists
	} else if !repository.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        phone,
		BirthDate:    birthDate,
		PasswordHash: string(hash),
		Role:         role,
		Status:       domain.ApprovalPending,
	}

	if err := s.storePhotos(ctx, user, photos); err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.dropPhotos(ctx, user.PersonalPhoto, user.IDPhoto)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPhoneAlreadyExists
		}
		return nil, err
	}

	logger.FromContext(ctx).Info("user registered",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
	return user, nil
}

// Login checks credentials and issues a token for approved accounts.
func (s *Service) Login(ctx context.Context, phone, password string) (*LoginResult, error) {
	user, err := s.users.GetByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Status != domain.ApprovalApproved {
		return nil, ErrAccountNotApproved
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{User: user, Token: token}, nil
}

// Logout revokes the token the caller authenticated with. Other sessions of
// the same user stay valid.
func (s *Service) Logout(ctx context.Context, actor domain.Actor, tokenID string, expiresAt time.Time) error {
	if actor.UserID <= 0 || tokenID == "" {
		return ErrNoSession
	}
	if !expiresAt.After(s.clock.Now()) {
		return nil
	}

	if err := s.tokens.Revoke(ctx, &domain.RevokedToken{
		TokenID:   tokenID,
		UserID:    actor.UserID,
		ExpiresAt: expiresAt.UTC(),
	}); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	logger.FromContext(ctx).Info("user logged out", zap.Int64("user_id", actor.UserID))
	return nil
}

// GetUser returns the account with its role and approval status.
func (s *Service) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes names, birth date and photos. Empty fields keep
// their stored value.
func (s *Service) UpdateProfile(ctx context.Context, actor domain.Actor, req UpdateProfileRequest, photos Photos) (*domain.User, error) {
	user, err := s.GetUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(req.FirstName); v != "" {
		user.FirstName = v
	}
	if v := strings.TrimSpace(req.LastName); v != "" {
		user.LastName = v
	}
	if strings.TrimSpace(req.BirthDate) != "" {
		birthDate, err := s.parseBirthDate(req.BirthDate)
		if err != nil {
			return nil, err
		}
		user.BirthDate = birthDate
	}

	oldPersonal, oldID := user.PersonalPhoto, user.IDPhoto
	if err := s.storePhotos(ctx, user, photos); err != nil {
		return nil, err
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		var fresh []string
		if user.PersonalPhoto != oldPersonal {
			fresh = append(fresh, user.PersonalPhoto)
		}
		if user.IDPhoto != oldID {
			fresh = append(fresh, user.IDPhoto)
		}
		s.dropPhotos(ctx, fresh...)
		return nil, err
	}

	if user.PersonalPhoto != oldPersonal {
		s.dropPhotos(ctx, oldPersonal)
	}
	if user.IDPhoto != oldID {
		s.dropPhotos(ctx, oldID)
	}
	return user, nil
}

func (s *Service) parseBirthDate(v string) (time.Time, error) {
	d, err := clock.ParseDate(strings.TrimSpace(v))
	if err != nil || !d.Before(clock.Today(s.clock)) {
		return time.Time{}, ErrInvalidBirthDate
	}
	return d, nil
}

// storePhotos saves any provided photo and sets its key on the user.
func (s *Service) storePhotos(ctx context.Context, user *domain.User, photos Photos) error {
	if s.blobs == nil {
		return nil
	}
	personal, err := blobstore.SaveFile(ctx, s.blobs, personalPhotoFolder, photos.Personal)
	if err != nil {
		return err
	}
	identity, err := blobstore.SaveFile(ctx, s.blobs, idPhotoFolder, photos.Identity)
	if err != nil {
		s.dropPhotos(ctx, personal)
		return err
	}
	if personal != "" {
		user.PersonalPhoto = personal
	}
	if identity != "" {
		user.IDPhoto = identity
	}
	return nil
}

func (s *Service) dropPhotos(ctx context.Context, keys ...string) {
	if s.blobs == nil {
		return
	}
	for _, k := range keys {
		if k == "" {
			continue
		}
		if err := s.blobs.Delete(ctx, k); err != nil {
			logger.FromContext(ctx).Warn("photo cleanup failed", zap.String("key", k), zap.Error(err))
		}
	}
}
