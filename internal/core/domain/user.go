package domain

import (
	"math/rand/v2"
	"time"
)

// Role is the coarse permission tier attached to every user.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleManager
}

// MaxBioLength bounds User.Bio, counted in runes.
const MaxBioLength = 355

// StatisticsBuckets is the number of monthly points in the chart series.
const StatisticsBuckets = 12

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Bio          string    `json:"bio,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
	IsActive     bool      `json:"is_active"`
	Statistics   []int     `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Touch stamps UpdatedAt and regenerates the chart series. Services call it
// before every save; the series is placeholder data, not derived from orders.
func (u *User) Touch(now time.Time) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	u.Statistics = RandomStatistics()
}

// RandomStatistics returns a fresh placeholder chart series.
func RandomStatistics() []int {
	series := make([]int, StatisticsBuckets)
	for i := range series {
		series[i] = rand.IntN(100)
	}
	return series
}

// Identity is the caller resolved by the access guard. It is passed
// explicitly into every service call that acts on behalf of a user.
type Identity struct {
	UserID string
	Role   Role
}

// IsManager reports whether the identity carries the manager role.
func (i Identity) IsManager() bool {
	return i.Role == RoleManager
}
