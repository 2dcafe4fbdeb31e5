package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.com", "first.last@sub.domain.org", "x+tag@y.io"}
	for _, e := range valid {
		assert.True(t, ValidEmail(e), e)
	}

	invalid := []string{"", "plain", "no@dot", "spaces in@addr.com", "a@b .com", "@missing.local"}
	for _, e := range invalid {
		assert.False(t, ValidEmail(e), e)
	}
}

func TestValidateLoginForm(t *testing.T) {
	errs := ValidateLoginForm(LoginForm{})
	assert.Equal(t, "Email is required", errs["email"])
	assert.Equal(t, "Password is required", errs["password"])

	errs = ValidateLoginForm(LoginForm{Email: "not-an-email", Password: "x"})
	assert.Equal(t, "Invalid email format", errs["email"])
	assert.NotContains(t, errs, "password")

	assert.True(t, ValidateLoginForm(LoginForm{Email: "a@b.com", Password: "abcdef"}).Valid())
}

func TestValidateRegisterForm(t *testing.T) {
	errs := ValidateRegisterForm(RegisterForm{
		FirstName:       "J",
		LastName:        "   ",
		Email:           "a@b.com",
		Password:        "abc",
		ConfirmPassword: "abc",
	})
	assert.Contains(t, errs, "firstName")
	assert.Contains(t, errs, "lastName")
	assert.NotContains(t, errs, "email")
	assert.Equal(t, "Password must be at least 6 characters", errs["password"])

	errs = ValidateRegisterForm(RegisterForm{
		FirstName:       "Jo",
		LastName:        "Do",
		Email:           "a@b.com",
		Password:        "abcdef",
		ConfirmPassword: "abcdeg",
	})
	assert.Equal(t, Errors{"confirmPassword": "Passwords do not match"}, errs)

	ok := ValidateRegisterForm(RegisterForm{
		FirstName:       "Jo",
		LastName:        "Do",
		Email:           "a@b.com",
		Password:        "abcdef",
		ConfirmPassword: "abcdef",
	})
	assert.True(t, ok.Valid())
}

func TestValidateProjectFormNameBoundary(t *testing.T) {
	// Whitespace-only input fails the minimum-length check.
	for _, name := range []string{"", "ab", "   ", " ab ", "\ta\n"} {
		errs := ValidateProjectForm(ProjectForm{Name: name, Description: "a valid description"})
		assert.Contains(t, errs, "name", "name=%q", name)
	}
	for _, name := range []string{"abc", " abc ", "Project X"} {
		errs := ValidateProjectForm(ProjectForm{Name: name, Description: "a valid description"})
		assert.NotContains(t, errs, "name", "name=%q", name)
	}
}

func TestValidateProjectFormDescription(t *testing.T) {
	errs := ValidateProjectForm(ProjectForm{Name: "abc", Description: "too short"})
	assert.Contains(t, errs, "description")

	errs = ValidateProjectForm(ProjectForm{Name: "abc", Description: "long enough now"})
	assert.True(t, errs.Valid())
}

func TestValidateTaskForm(t *testing.T) {
	errs := ValidateTaskForm(TaskFormFields{Title: "  x ", ProjectID: "", Status: "", Priority: ""})
	assert.Contains(t, errs, "title")
	assert.Equal(t, "Project is required", errs["projectId"])
	assert.Equal(t, "Status is required", errs["status"])
	assert.Equal(t, "Priority is required", errs["priority"])

	ok := ValidateTaskForm(TaskFormFields{Title: "Fix bug", ProjectID: "p1", Status: "TODO", Priority: "MEDIUM"})
	assert.True(t, ok.Valid())
}
