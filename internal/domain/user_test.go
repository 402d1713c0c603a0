package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	// Test valid user creation
	validFullName := "Test User"
	validEmail := "test@example.com"
	validPassword := "password123"

	user, err := NewUser(validFullName, validEmail, validPassword)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.FullName != validFullName {
		t.Errorf("Expected full name %s, got %s", validFullName, user.FullName)
	}

	if user.Email != validEmail {
		t.Errorf("Expected email %s, got %s", validEmail, user.Email)
	}

	if user.Role != RoleUser {
		t.Errorf("Expected role %s, got %s", RoleUser, user.Role)
	}

	if !user.Active {
		t.Error("Expected new user to be active")
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if user.UpdatedAt.IsZero() {
		t.Error("Expected non-zero UpdatedAt time")
	}

	// Test email normalization
	user, err = NewUser(validFullName, "  Mixed.Case@Example.COM ", validPassword)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Email != "mixed.case@example.com" {
		t.Errorf("Expected normalized email, got %s", user.Email)
	}

	// Test invalid full name
	_, err = NewUser("", validEmail, validPassword)
	if !errors.Is(err, ErrEmptyFullName) {
		t.Errorf("Expected error %v, got %v", ErrEmptyFullName, err)
	}

	// Test invalid email
	_, err = NewUser(validFullName, "", validPassword)
	if !errors.Is(err, ErrEmptyEmail) {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmail, err)
	}

	_, err = NewUser(validFullName, "invalidemail", validPassword)
	if !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	// Test invalid password
	_, err = NewUser(validFullName, validEmail, "short")
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooShort, err)
	}

	_, err = NewUser(validFullName, validEmail, strings.Repeat("a", 73))
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooLong, err)
	}
}

func TestUserValidate(t *testing.T) {
	validUser := User{
		ID:             uuid.New(),
		FullName:       "Test User",
		Email:          "test@example.com",
		HashedPassword: "hashedpassword123",
		Role:           RoleUser,
	}

	// Test valid user
	if err := validUser.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Test invalid ID
	invalidUser := validUser
	invalidUser.ID = uuid.Nil
	if err := invalidUser.Validate(); !errors.Is(err, ErrEmptyUserID) {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserID, err)
	}

	// Test invalid full name
	invalidUser = validUser
	invalidUser.FullName = ""
	if err := invalidUser.Validate(); !errors.Is(err, ErrEmptyFullName) {
		t.Errorf("Expected error %v, got %v", ErrEmptyFullName, err)
	}

	// Test invalid email
	invalidUser = validUser
	invalidUser.Email = ""
	if err := invalidUser.Validate(); !errors.Is(err, ErrEmptyEmail) {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmail, err)
	}

	invalidUser = validUser
	invalidUser.Email = "invalidemail"
	if err := invalidUser.Validate(); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	// Test invalid role
	invalidUser = validUser
	invalidUser.Role = "superuser"
	if err := invalidUser.Validate(); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("Expected error %v, got %v", ErrInvalidRole, err)
	}

	// Test missing credentials
	invalidUser = validUser
	invalidUser.HashedPassword = ""
	if err := invalidUser.Validate(); !errors.Is(err, ErrEmptyPassword) {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}

	// A plaintext password in flight is validated for length even when a
	// hash is present
	invalidUser = validUser
	invalidUser.Password = "short"
	if err := invalidUser.Validate(); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooShort, err)
	}
}

func TestRoleIsValid(t *testing.T) {
	if !RoleUser.IsValid() {
		t.Error("Expected role user to be valid")
	}
	if !RoleAdmin.IsValid() {
		t.Error("Expected role admin to be valid")
	}
	if Role("").IsValid() {
		t.Error("Expected empty role to be invalid")
	}
	if Role("root").IsValid() {
		t.Error("Expected unknown role to be invalid")
	}
}

func TestNormalizeEmail(t *testing.T) {
	cases := map[string]string{
		"test@example.com":       "test@example.com",
		"  Test@Example.COM  ":   "test@example.com",
		"User.Name@example.com ": "user.name@example.com",
	}

	for input, want := range cases {
		if got := NormalizeEmail(input); got != want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestValidateEmailFormat(t *testing.T) {
	validEmails := []string{
		"user@example.com",
		"user.name@example.com",
		"user+tag@example.com",
		"user@sub.example.com",
	}

	invalidEmails := []string{
		"",
		"userexample.com",
		"user@",
		"@example.com",
		"user@.com",
		"user@example",
		"user@ab",
	}

	for _, email := range validEmails {
		if !validateEmailFormat(email) {
			t.Errorf("Expected email %s to be valid", email)
		}
	}

	for _, email := range invalidEmails {
		if validateEmailFormat(email) {
			t.Errorf("Expected email %s to be invalid", email)
		}
	}
}
