package domain

import (
	"time"

	"gorm.io/gorm"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID           string         `gorm:"type:varchar(36);primaryKey"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string         `gorm:"type:varchar(100);not null"`
	PasswordHash string         `gorm:"type:varchar(255);not null"`
	Theme        string         `gorm:"type:varchar(20);not null;default:dark"`
	AvatarURL    string         `gorm:"type:varchar(512)"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts UserModel to domain User.
func (m *UserModel) ToDomain() *User {
	return &User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Theme:        m.Theme,
		AvatarURL:    m.AvatarURL,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// BoardModel is the GORM model for the boards table.
type BoardModel struct {
	ID         string    `gorm:"type:varchar(36);primaryKey"`
	OwnerID    string    `gorm:"type:varchar(36);index;not null"`
	Title      string    `gorm:"type:varchar(100);not null"`
	Icon       string    `gorm:"type:varchar(50)"`
	Background string    `gorm:"type:varchar(100)"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for BoardModel.
func (BoardModel) TableName() string {
	return "boards"
}

// ToDomain converts BoardModel to domain Board.
func (m *BoardModel) ToDomain() *Board {
	return &Board{
		ID:         m.ID,
		OwnerID:    m.OwnerID,
		Title:      m.Title,
		Icon:       m.Icon,
		Background: m.Background,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// BoardToModel converts domain Board to BoardModel.
func BoardToModel(b *Board) *BoardModel {
	return &BoardModel{
		ID:         b.ID,
		OwnerID:    b.OwnerID,
		Title:      b.Title,
		Icon:       b.Icon,
		Background: b.Background,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}
