package persistence

import "time"

// UserModel represents the users table
type UserModel struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;not null"`
	Email     *string   `gorm:"column:email;uniqueIndex"` // NULL when absent
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (UserModel) TableName() string {
	return "users"
}
