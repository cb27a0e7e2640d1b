package services

import (
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/madhelp/internal/client/models"
	"github.com/dmitrijs2005/madhelp/internal/common"
)

const maxDARS = 4

// ValidationError is returned when a form is rejected before anything is
// sent. It matches common.ErrorValidation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return common.ErrorValidation }

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// statFile is swapped in tests.
var statFile = os.Stat

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

func normalizeIdentity(username, email string) (string, string) {
	return strings.ToLower(strings.TrimSpace(username)), strings.ToLower(strings.TrimSpace(email))
}

func checkEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalid("email", "%q is not a valid email address.", email)
	}
	return nil
}

func checkPDF(field, label, path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return invalid(field, "Invalid file format for %s (must be PDF).", label)
	}
	fi, err := statFile(path)
	if err != nil {
		return invalid(field, "Cannot read %s file %s.", label, path)
	}
	if fi.IsDir() {
		return invalid(field, "%s path %s is a directory.", label, path)
	}
	return nil
}

// ValidateSignup checks the registration form and returns it normalised:
// username and email trimmed and lower-cased, DARS slots trimmed to the
// supplied ones.
func ValidateSignup(in models.SignupRequest) (models.SignupRequest, error) {
	in.Username, in.Email = normalizeIdentity(in.Username, in.Email)

	if blank(in.Username, in.Email, in.Password, in.ConfirmPassword) {
		return in, invalid("", "Please fill in all required fields.")
	}
	if err := checkEmail(in.Email); err != nil {
		return in, err
	}
	if in.Password != in.ConfirmPassword {
		return in, invalid("confirm_password", "Passwords do not match.")
	}

	in.CVPath = strings.TrimSpace(in.CVPath)
	if in.CVPath == "" {
		return in, invalid("cv", "Please upload a valid CV (PDF).")
	}
	if err := checkPDF("cv", "CV", in.CVPath); err != nil {
		return in, err
	}

	if len(in.DARSPaths) > maxDARS {
		return in, invalid("dars", "At most %d DARS reports can be uploaded.", maxDARS)
	}
	dars := make([]string, len(in.DARSPaths))
	for i, p := range in.DARSPaths {
		dars[i] = strings.TrimSpace(p)
	}
	if len(dars) == 0 || dars[0] == "" {
		return in, invalid("dars1", "Please upload at least one DARS PDF (DARS1).")
	}
	for i, p := range dars {
		if p == "" {
			continue
		}
		if err := checkPDF(fmt.Sprintf("dars%d", i+1), fmt.Sprintf("DARS%d", i+1), p); err != nil {
			return in, err
		}
	}
	in.DARSPaths = dars

	return in, nil
}

// ValidateLogin returns the email normalised for the backend lookup.
func ValidateLogin(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if blank(email, password) {
		return email, invalid("", "Please provide both email and password.")
	}
	return email, nil
}

func ValidateProfile(username, email string) (string, string, error) {
	username, email = normalizeIdentity(username, email)
	if blank(username, email) {
		return username, email, invalid("", "Username and email are required.")
	}
	if err := checkEmail(email); err != nil {
		return username, email, err
	}
	return username, email, nil
}

func ValidatePasswordChange(pc models.PasswordChange) error {
	if blank(pc.Current, pc.New, pc.Confirm) {
		return invalid("", "Please fill in all password fields.")
	}
	if pc.New != pc.Confirm {
		return invalid("confirm", "New password and confirmation do not match!")
	}
	if pc.New == pc.Current {
		return invalid("new", "New password must differ from the current one.")
	}
	return nil
}
