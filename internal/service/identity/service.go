package identity

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/devmatch/devmatch/internal/app"
	"github.com/devmatch/devmatch/internal/db"
	svcErr "github.com/devmatch/devmatch/internal/errors"
	"github.com/devmatch/devmatch/internal/repository"
	"github.com/devmatch/devmatch/internal/validate"
)

// Profile defaults applied at signup when the client sends nothing.
const (
	DefaultAbout    = "Hey there! I am using this app."
	DefaultPhotoURL = "https://cdn-icons-png.flaticon.com/512/149/149071.png"
)

// bcrypt work factor. DefaultCost is 10 rounds.
const hashCost = bcrypt.DefaultCost

// Service implements the identity lifecycle: signup, login, profile view and
// edit, password change. Business logic only; transport lives in register.go.
type Service struct {
	appCtx   *app.AppContext
	userRepo *repository.UserRepository
}

// NewService creates the identity service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		userRepo: repository.NewUserRepository(appCtx.DB),
	}
}

// SignupRequest is the signup payload.
type SignupRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Age          *int   `json:"age"`
	Gender       string `json:"gender"`
	InterestedIn string `json:"interestedIn"`
}

// Signup validates the payload, hashes the password once, and creates the
// profile record.
//
// Behavior:
//   - All validation runs before any storage call; a rejection never leaves
//     partial state.
//   - Email is lowercased so the unique index is case-insensitive.
//   - A uniqueness violation maps to DuplicateEmail, distinct from
//     client-correctable ValidationError.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*db.User, error) {
	if err := validate.Signup(validate.SignupInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Password:     req.Password,
		Age:          req.Age,
		Gender:       req.Gender,
		InterestedIn: req.InterestedIn,
	}); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), hashCost)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	user := &db.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Age:          req.Age,
		Gender:       req.Gender,
		InterestedIn: req.InterestedIn,
		About:        DefaultAbout,
		PhotoURL:     DefaultPhotoURL,
		Skills:       []string{},
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, svcErr.DuplicateEmail()
		}
		s.appCtx.Logger.Error("signup create failed", "err", err)
		return nil, svcErr.Map(err)
	}

	s.appCtx.Logger.Info("user signed up", "user_id", user.ID)
	return user, nil
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a signed token.
//
// Behavior:
//   - Unknown email and wrong password return the same InvalidCredentials
//     error, so login failures cannot enumerate registered addresses.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*db.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		s.appCtx.Logger.Error("login lookup failed", "err", err)
		return nil, "", svcErr.Map(err)
	}
	if user == nil {
		return nil, "", svcErr.InvalidCredentials()
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, "", svcErr.InvalidCredentials()
	}

	token, err := s.appCtx.JWT.Issue(user.ID)
	if err != nil {
		s.appCtx.Logger.Error("token issue failed", "user_id", user.ID, "err", err)
		return nil, "", svcErr.Map(err)
	}

	return user, token, nil
}

// EditProfile applies a whitelisted partial update to the viewer's record.
//
// Behavior:
//   - The update struct itself is the whitelist; unknown keys are rejected at
//     decode time in the handler.
//   - Validators run before anything is copied onto the record, so a failing
//     update changes nothing.
//   - The whole record is saved in one write.
func (s *Service) EditProfile(ctx context.Context, user *db.User, upd validate.ProfileUpdate) (*db.User, error) {
	if err := validate.Profile(upd); err != nil {
		return nil, err
	}

	if upd.FirstName != nil {
		user.FirstName = strings.TrimSpace(*upd.FirstName)
	}
	if upd.LastName != nil {
		user.LastName = strings.TrimSpace(*upd.LastName)
	}
	if upd.Age != nil {
		user.Age = upd.Age
	}
	if upd.Gender != nil {
		user.Gender = *upd.Gender
	}
	if upd.About != nil {
		user.About = *upd.About
	}
	if upd.Skills != nil {
		user.Skills = *upd.Skills
	}
	if upd.PhotoURL != nil {
		user.PhotoURL = *upd.PhotoURL
	}
	if upd.InterestedIn != nil {
		user.InterestedIn = *upd.InterestedIn
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.appCtx.Logger.Error("profile save failed", "user_id", user.ID, "err", err)
		return nil, svcErr.Map(err)
	}
	return user, nil
}

// PasswordRequest is the password-change payload.
type PasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword re-verifies the current password before accepting a new one,
// then re-hashes and persists.
func (s *Service) ChangePassword(ctx context.Context, user *db.User, req PasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return svcErr.Validation("Current and new passwords are required")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return svcErr.IncorrectPassword()
	}
	if !validate.StrongPassword(req.NewPassword) {
		return svcErr.Validation("New password is not strong enough")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), hashCost)
	if err != nil {
		return svcErr.Map(err)
	}
	user.PasswordHash = string(hash)

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.appCtx.Logger.Error("password save failed", "user_id", user.ID, "err", err)
		return svcErr.Map(err)
	}
	return nil
}
