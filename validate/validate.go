// Package validate holds the client-side form validation rules. Every
// function is pure: it maps candidate input to a field→message mapping and
// never panics. An empty mapping means the input is valid; absence of a key
// means that field is valid. Whitespace-only input is treated as empty.
package validate

import (
	"regexp"
	"strings"
)

// Errors maps a field name to its validation message.
type Errors map[string]string

// Valid reports whether no field failed.
func (e Errors) Valid() bool { return len(e) == 0 }

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether email looks like local@domain.tld with no
// internal whitespace and at least one dot after the @.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPassword reports whether password meets the only policy there is:
// at least six characters.
func ValidPassword(password string) bool {
	return len(password) >= 6
}

// ValidName reports whether name has at least two characters after trimming.
func ValidName(name string) bool {
	return len(strings.TrimSpace(name)) >= 2
}

// LoginForm is the credential pair submitted at login.
type LoginForm struct {
	Email    string
	Password string
}

// ValidateLoginForm checks the login form.
func ValidateLoginForm(f LoginForm) Errors {
	errs := Errors{}
	if f.Email == "" {
		errs["email"] = "Email is required"
	} else if !ValidEmail(f.Email) {
		errs["email"] = "Invalid email format"
	}
	if f.Password == "" {
		errs["password"] = "Password is required"
	}
	return errs
}

// RegisterForm is the registration form.
type RegisterForm struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// ValidateRegisterForm checks the registration form, including password
// confirmation equality.
func ValidateRegisterForm(f RegisterForm) Errors {
	errs := Errors{}
	if !ValidName(f.FirstName) {
		errs["firstName"] = "First name must be at least 2 characters"
	}
	if !ValidName(f.LastName) {
		errs["lastName"] = "Last name must be at least 2 characters"
	}
	if f.Email == "" {
		errs["email"] = "Email is required"
	} else if !ValidEmail(f.Email) {
		errs["email"] = "Invalid email format"
	}
	if f.Password == "" {
		errs["password"] = "Password is required"
	} else if !ValidPassword(f.Password) {
		errs["password"] = "Password must be at least 6 characters"
	}
	if f.Password != f.ConfirmPassword {
		errs["confirmPassword"] = "Passwords do not match"
	}
	return errs
}

// ProjectForm carries the editable project fields.
type ProjectForm struct {
	Name        string
	Description string
}

// ValidateProjectForm checks the project form.
func ValidateProjectForm(f ProjectForm) Errors {
	errs := Errors{}
	if len(strings.TrimSpace(f.Name)) < 3 {
		errs["name"] = "Project name must be at least 3 characters"
	}
	if len(strings.TrimSpace(f.Description)) < 10 {
		errs["description"] = "Description must be at least 10 characters"
	}
	return errs
}

// TaskFormFields carries the fields checked before a task is submitted.
type TaskFormFields struct {
	Title     string
	ProjectID string
	Status    string
	Priority  string
}

// ValidateTaskForm checks the task form.
func ValidateTaskForm(f TaskFormFields) Errors {
	errs := Errors{}
	if len(strings.TrimSpace(f.Title)) < 3 {
		errs["title"] = "Task title must be at least 3 characters"
	}
	if f.ProjectID == "" {
		errs["projectId"] = "Project is required"
	}
	if f.Status == "" {
		errs["status"] = "Status is required"
	}
	if f.Priority == "" {
		errs["priority"] = "Priority is required"
	}
	return errs
}
