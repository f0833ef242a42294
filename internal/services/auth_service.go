package services

import (
	"context"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/campus-social/backend/internal/models"
	"github.com/anonto42/campus-social/backend/internal/repositories"
	"github.com/anonto42/campus-social/backend/internal/session"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// IDTokenVerifier verifies Firebase ID tokens; *auth.Client implements it
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// LoginResult is returned by every successful sign-in
type LoginResult struct {
	Tokens TokenPair            `json:"tokens"`
	User   models.PublicProfile `json:"user"`
}

type AuthService struct {
	repos    *repositories.Repositories
	tokens   *TokenIssuer
	firebase IDTokenVerifier
	hashCost int
}

func NewAuthService(repos *repositories.Repositories, tokens *TokenIssuer, firebase IDTokenVerifier, hashCost int) *AuthService {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &AuthService{repos: repos, tokens: tokens, firebase: firebase, hashCost: hashCost}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp registers a user and returns the new id
func (s *AuthService) SignUp(ctx context.Context, req models.SignupRequest) (uuid.UUID, error) {
	email := normalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)
	firstname := strings.TrimSpace(req.Firstname)
	lastname := strings.TrimSpace(req.Lastname)
	if email == "" || username == "" || req.Password == "" || firstname == "" || lastname == "" || req.Department == "" {
		return uuid.Nil, ValidationError("all fields are required")
	}
	if req.Password != req.ConfirmPassword {
		return uuid.Nil, ValidationError("passwords do not match")
	}
	dept, ok := models.ParseDepartment(req.Department)
	if !ok {
		return uuid.Nil, ValidationError("unknown department " + req.Department)
	}

	if _, err := s.repos.Users.GetUserByEmail(ctx, email); err == nil {
		return uuid.Nil, ConflictError("email is already registered", nil)
	} else if !repositories.IsNotFound(err) {
		return uuid.Nil, err
	}
	if _, err := s.repos.Users.GetUserByUsername(ctx, username); err == nil {
		return uuid.Nil, ConflictError("username is already taken", nil)
	} else if !repositories.IsNotFound(err) {
		return uuid.Nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return uuid.Nil, err
	}
	user := &models.User{
		Email:     email,
		Username:  username,
		Password:  string(hash),
		Firstname: firstname,
		Lastname:  lastname,
		Type:      dept,
	}
	if err := s.repos.Users.CreateUser(ctx, user); err != nil {
		if isDuplicate(err) {
			return uuid.Nil, ConflictError("email or username is already registered", err)
		}
		return uuid.Nil, err
	}
	return user.ID, nil
}

// LogIn checks credentials and issues a token pair
func (s *AuthService) LogIn(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repos.Users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, notFound(err, "user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, AuthError("invalid password")
	}
	return s.issue(user)
}

// Refresh exchanges a valid refresh token for a new pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	id, err := s.tokens.Verify(refreshToken, models.TokenUseRefresh)
	if err != nil {
		return nil, AuthError("invalid or expired refresh token")
	}
	user, err := s.repos.Users.GetUserByID(ctx, id)
	if repositories.IsNotFound(err) {
		return nil, AuthError("invalid or expired refresh token")
	}
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// FirebaseLogIn signs in the registered user whose e-mail a verified Firebase
// ID token carries
func (s *AuthService) FirebaseLogIn(ctx context.Context, idToken string) (*LoginResult, error) {
	if s.firebase == nil {
		return nil, ValidationError("firebase sign-in is not configured")
	}
	token, err := s.firebase.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, AuthError("invalid firebase id token")
	}
	email, _ := token.Claims["email"].(string)
	if email == "" {
		return nil, ValidationError("firebase account has no email")
	}
	user, err := s.repos.Users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, notFound(err, "user")
	}
	return s.issue(user)
}

// GetProfile returns the caller's public profile, or nil when there is no
// usable session
func (s *AuthService) GetProfile(ctx context.Context) (*models.PublicProfile, error) {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return nil, nil
	}
	user, err := s.repos.Users.GetUserByID(ctx, sess.UserID)
	if repositories.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p := user.ToPublicProfile()
	return &p, nil
}

// Authenticate resolves an access token into a session
func (s *AuthService) Authenticate(accessToken string) (session.Session, bool) {
	id, err := s.tokens.Verify(accessToken, models.TokenUseAccess)
	if err != nil {
		return session.Session{}, false
	}
	return session.Session{UserID: id}, true
}

func (s *AuthService) issue(user *models.User) (*LoginResult, error) {
	pair, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Tokens: pair, User: user.ToPublicProfile()}, nil
}
