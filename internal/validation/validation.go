package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"childcare/internal/models"
)

const (
	MaxNameLength         = 100
	MaxPhoneLength        = 25
	MaxEmailLength        = 255
	MaxRelationshipLength = 50
	MaxCommentLength      = 1000

	birthDateLayout = "2006-01-02"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9 ().\-]+$`)
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if len(email) > MaxEmailLength {
		return ValidationError{Field: "email", Message: fmt.Sprintf("email must be at most %d characters", MaxEmailLength)}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidateName checks that a required name field is present and not too long
func ValidateName(field, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: field, Message: field + " is required"}
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ValidationError{Field: field, Message: fmt.Sprintf("%s must be at most %d characters", field, MaxNameLength)}
	}
	return nil
}

// ValidatePhone checks an optional phone number
func ValidatePhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil
	}
	if len(phone) > MaxPhoneLength {
		return ValidationError{Field: "phone", Message: fmt.Sprintf("phone must be at most %d characters", MaxPhoneLength)}
	}
	if !phoneRegex.MatchString(phone) {
		return ValidationError{Field: "phone", Message: "invalid phone format"}
	}
	return nil
}

// ValidateBirthDate checks an optional YYYY-MM-DD date that is not in the future
func ValidateBirthDate(date string) error {
	if date == "" {
		return nil
	}
	parsed, err := time.Parse(birthDateLayout, date)
	if err != nil {
		return ValidationError{Field: "birthDate", Message: "birthDate must use the YYYY-MM-DD format"}
	}
	if parsed.After(time.Now()) {
		return ValidationError{Field: "birthDate", Message: "birthDate cannot be in the future"}
	}
	return nil
}

func validateMaxLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return ValidationError{Field: field, Message: fmt.Sprintf("%s must be at most %d characters", field, max)}
	}
	return nil
}

// firstError returns the first non-nil error
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func ValidateChild(req models.ChildRequest) error {
	return firstError(
		ValidateName("firstName", req.FirstName),
		ValidateName("lastName", req.LastName),
		ValidateBirthDate(req.BirthDate),
	)
}

func ValidateGuardian(req models.GuardianRequest) error {
	var emailErr error
	if strings.TrimSpace(req.Email) != "" {
		emailErr = ValidateEmail(req.Email)
	}
	return firstError(
		ValidateName("firstName", req.FirstName),
		ValidateName("lastName", req.LastName),
		ValidatePhone(req.Phone),
		emailErr,
	)
}

func ValidateAuthorizedPerson(req models.AuthorizedPersonRequest) error {
	return firstError(
		ValidateName("firstName", req.FirstName),
		ValidateName("lastName", req.LastName),
		ValidatePhone(req.Phone),
	)
}

// ValidateGuardianChildLink checks the shape of a guardian link payload.
// Ids are not checked here: an unknown id, zero included, is reported by
// the link manager as a missing record.
func ValidateGuardianChildLink(req models.GuardianChildLinkRequest) error {
	return firstError(
		validateMaxLength("relationship", req.Relationship, MaxRelationshipLength),
	)
}

// ValidateAuthorizedPersonChildLink checks the shape of an authorized person link payload
func ValidateAuthorizedPersonChildLink(req models.AuthorizedPersonChildLinkRequest) error {
	return firstError(
		validateMaxLength("relationship", req.Relationship, MaxRelationshipLength),
		validateMaxLength("comment", req.Comment, MaxCommentLength),
	)
}
