package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pcruz7/notebook-be/internal/models"
	"golang.org/x/crypto/bcrypt"
	"modernc.org/sqlite"
)

// Recoverable, user-facing conditions. Handlers map these to HTTP statuses;
// anything else is an internal failure.
var (
	// ErrDuplicateUsername is returned when registering a username that
	// already exists.
	ErrDuplicateUsername = errors.New("username already taken")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so the caller cannot tell which part failed.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUserNotFound is returned by id/username lookups with no match.
	ErrUserNotFound = errors.New("user not found")
)

// SQLITE_CONSTRAINT_UNIQUE extended result code.
const sqliteConstraintUnique = 2067

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByID(id int64) (models.User, error)
	GetUserByUsername(username string) (models.User, error)
	Register(username, password string) (models.User, error)
	Authenticate(username, password string) (models.User, error)
	ChangePassword(id int64, currentPassword, newPassword string) error
}

// UserService provides registration, login and password management over the
// users table.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id int64) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Username, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// GetUserByUsername retrieves a single user by username, including the
// password hash.
func (s *UserService) GetUserByUsername(username string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, password_hash, created_at FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// Register creates a new user, hashing their password. The plaintext password
// is never stored. A duplicate username fails with ErrDuplicateUsername and
// leaves no row behind; the insert is a single atomic statement.
func (s *UserService) Register(username, password string) (models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	stmt, err := s.db.Prepare("INSERT INTO users(username, password_hash) VALUES(?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(username, string(hashedPassword))
	if err != nil {
		var se *sqlite.Error
		if errors.As(err, &se) && se.Code() == sqliteConstraintUnique {
			return models.User{}, ErrDuplicateUsername
		}
		return models.User{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	return s.GetUserByID(id)
}

// Authenticate verifies a user's credentials and returns the matching user on
// success. Unknown usernames and wrong passwords are indistinguishable to the
// caller.
func (s *UserService) Authenticate(username, password string) (models.User, error) {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	// Don't hand the hash back to callers
	user.PasswordHash = ""
	return user, nil
}

// ChangePassword verifies the current password, then hashes and stores the new
// one. On a failed verification the stored hash is left untouched.
func (s *UserService) ChangePassword(id int64, currentPassword, newPassword string) error {
	var storedHash string
	row := s.db.QueryRow("SELECT password_hash FROM users WHERE id = ?", id)
	if err := row.Scan(&storedHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	_, err = s.db.Exec("UPDATE users SET password_hash = ? WHERE id = ?", string(hashedPassword), id)
	return err
}
