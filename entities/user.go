package entities

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FullName string `gorm:"type:varchar(255)" json:"full_name"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Timestamp
}
