package models

import (
    "gorm.io/gorm"
)

// User is the identity anchor for every goal/progress/meal record.
// Credentials and session issuance live in the separate auth service;
// this backend only resolves the opaque user id from the bearer token.
type User struct {
    gorm.Model
    Email    string `gorm:"uniqueIndex;not null"`
    FullName string
}
