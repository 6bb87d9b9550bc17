package model

import "time"

// Status values stored in the users.status column.  A user is created
// Active and toggles between Active and Blocked exclusively through the
// moderation endpoints.
const (
    StatusActive  = "Active"
    StatusBlocked = "Blocked"
)

// ValidStatus reports whether s is one of the recognised status values.
func ValidStatus(s string) bool {
    return s == StatusActive || s == StatusBlocked
}

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The json tags are omitted here because these structs
// are used internally by the repository layer; handlers define
// separate response types with appropriate JSON tags so the
// password hash is never serialized outward.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name shown in the dashboard table.
//  Email        – unique email address; also the key moderation operates on.
//  PasswordHash – bcrypt hashed password.
//  Status       – account status, Active or Blocked.
//  LastLogin    – timestamp of the last successful login (nil until first login).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64     // users.id
    Name         string     // users.name
    Email        string     // users.email
    PasswordHash string     // users.password_hash
    Status       string     // users.status
    LastLogin    *time.Time // users.last_login (nullable)
    CreatedAt    time.Time  // users.created_at
    UpdatedAt    time.Time  // users.updated_at
}
