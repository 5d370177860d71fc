package model

import "time"

// User represents an application user record as stored in the `users`
// table.  Each field corresponds to a column in the database.  The json
// tags are omitted because these structs are used internally by the
// repository layer; handlers define separate response types with
// appropriate JSON tags.
//
// Fields:
//
//	ID              - primary key identifier of the user.
//	Email           - unique email address.
//	PasswordHash    - bcrypt hashed password.
//	FirstName       - given name.
//	LastName        - family name.
//	Phone           - optional phone number.
//	Role            - account role; "student" unless provisioned otherwise.
//	ProfilePhotoURL - optional photo location.
//	CreatedAt       - timestamp of creation.
type User struct {
	ID              uint64    // users.id
	Email           string    // users.email
	PasswordHash    string    // users.password_hash
	FirstName       string    // users.first_name
	LastName        string    // users.last_name
	Phone           *string   // users.phone (nullable)
	Role            string    // users.role
	ProfilePhotoURL *string   // users.profile_photo_url (nullable)
	CreatedAt       time.Time // users.created_at
}

// StudentProfile holds the student-specific extension of a user.  A user
// owns zero or one profile, keyed by the unique user_id column.
//
// Fields:
//
//	ID                 - primary key identifier.
//	UserID             - owning user.
//	RegistrationNumber - institutional registration number.
//	ProfilePhotoURL    - optional photo location.
type StudentProfile struct {
	ID                 uint64  // student_profiles.id
	UserID             uint64  // student_profiles.user_id
	RegistrationNumber string  // student_profiles.registration_number
	ProfilePhotoURL    *string // student_profiles.profile_photo_url (nullable)
}
