package models

import "time"

// Account is a church staff login used to access the management API.
type Account struct {
	ID           string    `bson:"id" json:"id"`
	ChurchName   string    `bson:"churchName" json:"churchName"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}
