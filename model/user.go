package model

import "time"

type User struct {
	UserID     string    `bson:"user_id" json:"user_id"`
	Username   string    `bson:"username" json:"username"`
	Email      string    `bson:"email" json:"email"`
	Password   string    `bson:"password" json:"-"`
	IsVerified bool      `bson:"is_verified" json:"is_verified"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
