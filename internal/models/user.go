package models

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Department scopes users, posts and communities to one college
type Department string

const (
	DepartmentCCS Department = "CCS"
	DepartmentCBS Department = "CBS"
	DepartmentCEA Department = "CEA"
)

var departmentLabels = map[Department]string{
	DepartmentCCS: "College of Computing Studies",
	DepartmentCBS: "College of Business Studies",
	DepartmentCEA: "College of Engineering and Arts",
}

// Label returns the human-readable name of the department
func (d Department) Label() string {
	return departmentLabels[d]
}

// Valid reports whether d is one of the known department codes
func (d Department) Valid() bool {
	_, ok := departmentLabels[d]
	return ok
}

// ParseDepartment maps either a department code ("CCS") or its label
// ("College of Computing Studies") to the department code. Matching ignores
// case and surrounding whitespace.
func ParseDepartment(s string) (Department, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for code, label := range departmentLabels {
		if strings.EqualFold(s, string(code)) || strings.EqualFold(s, label) {
			return code, true
		}
	}
	return "", false
}

type User struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Email     string     `json:"email" gorm:"uniqueIndex;not null"`
	Username  string     `json:"username" gorm:"uniqueIndex;not null"`
	Password  string     `json:"-" gorm:"not null"` // bcrypt hash, never serialized
	Firstname string     `json:"firstname"`
	Lastname  string     `json:"lastname"`
	Image     string     `json:"image"`
	Type      Department `json:"type" gorm:"size:8;index"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserCompact is the minimal author/actor projection embedded in other payloads
type UserCompact struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Image     string    `json:"image"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:        u.ID,
		Username:  u.Username,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Image:     u.Image,
	}
}

// PublicProfile is everything about a user that may leave the service
type PublicProfile struct {
	UserCompact
	Email           string     `json:"email"`
	Type            Department `json:"type"`
	DepartmentLabel string     `json:"department_label"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (u *User) ToPublicProfile() PublicProfile {
	return PublicProfile{
		UserCompact:     u.ToCompact(),
		Email:           u.Email,
		Type:            u.Type,
		DepartmentLabel: u.Type.Label(),
		CreatedAt:       u.CreatedAt,
	}
}

// ProfileView is a profile as seen by another (possibly anonymous) user
type ProfileView struct {
	PublicProfile
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
	IsFollowing    bool  `json:"is_following"`
	IsSelf         bool  `json:"is_self"`
}

type SignupRequest struct {
	Username        string `json:"username" form:"username" validate:"required,min=3,max=30"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" validate:"required"`
	Firstname       string `json:"firstname" form:"firstname" validate:"required,max=50"`
	Lastname        string `json:"lastname" form:"lastname" validate:"required,max=50"`
	Department      string `json:"department" form:"department" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Normalize trims the identifying fields before validation
func (r *SignupRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.Username = strings.TrimSpace(r.Username)
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type UpdateProfileRequest struct {
	Username  string `json:"username,omitempty" form:"username" validate:"omitempty,min=3,max=30"`
	Firstname string `json:"firstname,omitempty" form:"firstname" validate:"omitempty,max=50"`
	Lastname  string `json:"lastname,omitempty" form:"lastname" validate:"omitempty,max=50"`
}

// TokenUse distinguishes access tokens from refresh tokens
type TokenUse string

const (
	TokenUseAccess  TokenUse = "access"
	TokenUseRefresh TokenUse = "refresh"
)

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string   `json:"userId"`
	Use    TokenUse `json:"use"`
	jwt.RegisteredClaims
}
