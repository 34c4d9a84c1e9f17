package user

import "time"

// User is keyed by the identity provider's subject, so there is no generated id.
type User struct {
	ID              string    `gorm:"primaryKey;column:id;size:255" json:"id"`
	Email           *string   `gorm:"column:email;size:255" json:"email"`
	FirstName       *string   `gorm:"column:first_name;size:255" json:"firstName"`
	LastName        *string   `gorm:"column:last_name;size:255" json:"lastName"`
	ProfileImageURL *string   `gorm:"column:profile_image_url;size:1024" json:"profileImageUrl"`
	CreatedAt       time.Time `gorm:"column:created_at;not null" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"column:updated_at;not null" json:"updatedAt"`
}

func (User) TableName() string { return "user" }

// Profile is the claim set the identity provider hands over on login.
type Profile struct {
	Subject         string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ToUser maps the claims onto a row; empty claims become NULL columns.
func (p Profile) ToUser() *User {
	return &User{
		ID:              p.Subject,
		Email:           optional(p.Email),
		FirstName:       optional(p.FirstName),
		LastName:        optional(p.LastName),
		ProfileImageURL: optional(p.ProfileImageURL),
	}
}
