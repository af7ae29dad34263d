package validate

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	svcErr "github.com/devmatch/devmatch/internal/errors"
)

// Genders a profile may declare; InterestedIn additionally allows "All".
var (
	Genders      = []string{"Male", "Female", "Other"}
	InterestedIn = []string{"Male", "Female", "Other", "All"}
)

// MaxSkills bounds the skills list at edit time.
const MaxSkills = 5

var v = validator.New()

// Name checks a first/last name: non-empty after trimming, 3–50 characters.
func Name(s string) bool {
	s = strings.TrimSpace(s)
	return len(s) >= 3 && len(s) <= 50
}

// Email checks address syntax.
func Email(s string) bool {
	return v.Var(s, "required,email") == nil
}

// URL checks that s is an absolute URL with a scheme.
func URL(s string) bool {
	return v.Var(s, "required,url") == nil
}

// StrongPassword requires at least 8 characters with a lowercase letter, an
// uppercase letter, a digit and a symbol.
func StrongPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// Gender checks membership in the gender enumeration.
func Gender(s string) bool { return contains(Genders, s) }

// Interest checks membership in the interestedIn enumeration.
func Interest(s string) bool { return contains(InterestedIn, s) }

func contains(set []string, s string) bool {
	for _, m := range set {
		if m == s {
			return true
		}
	}
	return false
}

// SignupInput is everything signup must verify before touching storage.
type SignupInput struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	Age          *int
	Gender       string
	InterestedIn string
}

// Signup validates a signup payload. Runs entirely before any storage call so
// a rejection never leaves partial state behind.
func Signup(in SignupInput) error {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return svcErr.Validation("Name is not valid")
	}
	if !Name(in.FirstName) || !Name(in.LastName) {
		return svcErr.Validation("Name must be between 3 to 50 characters")
	}
	if !Email(in.Email) {
		return svcErr.Validation("Email is not valid")
	}
	if !StrongPassword(in.Password) {
		return svcErr.Validation("Password is not strong enough")
	}
	if !Interest(in.InterestedIn) {
		return svcErr.Validation("Please select a valid interestedIn")
	}
	if in.Age != nil && *in.Age < 18 {
		return svcErr.Validation("Age must be 18 or above")
	}
	if in.Gender != "" && !Gender(in.Gender) {
		return svcErr.Validation("Gender is not valid")
	}
	return nil
}

// ProfileUpdate holds the exact whitelist of editable fields. Nil means the
// field was absent from the request; unknown keys are rejected at decode time.
type ProfileUpdate struct {
	FirstName    *string   `json:"firstName"`
	LastName     *string   `json:"lastName"`
	Age          *int      `json:"age"`
	Gender       *string   `json:"gender"`
	About        *string   `json:"about"`
	Skills       *[]string `json:"skills"`
	PhotoURL     *string   `json:"photoUrl"`
	InterestedIn *string   `json:"interestedIn"`
}

// Profile validates a partial profile update. Any violation rejects the whole
// update; nothing is applied piecemeal.
func Profile(u ProfileUpdate) error {
	if u.FirstName != nil && !Name(*u.FirstName) {
		return svcErr.InvalidUpdate("Name must be between 3 to 50 characters")
	}
	if u.LastName != nil && !Name(*u.LastName) {
		return svcErr.InvalidUpdate("Name must be between 3 to 50 characters")
	}
	if u.Age != nil && *u.Age < 18 {
		return svcErr.InvalidUpdate("Age must be 18 or above")
	}
	if u.Gender != nil && !Gender(*u.Gender) {
		return svcErr.InvalidUpdate("Gender is not valid")
	}
	if u.InterestedIn != nil && !Interest(*u.InterestedIn) {
		return svcErr.InvalidUpdate("interestedIn is not valid")
	}
	if u.Skills != nil && len(*u.Skills) > MaxSkills {
		return svcErr.InvalidUpdate("Skills cannot exceed 5 entries")
	}
	if u.PhotoURL != nil && !URL(*u.PhotoURL) {
		return svcErr.InvalidUpdate("Photo URL is not valid")
	}
	return nil
}
