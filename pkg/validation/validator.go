package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// DefaultMembershipPrefix is used when no prefix is configured.
const DefaultMembershipPrefix = "ALCWB"

// contactSubjects accepts subjects case-insensitively; the contact service
// upper-cases them the same way.
var contactSubjects = map[string]struct{}{
	"BLOG_SUBMISSION": {},
	"COLLABORATION":   {},
	"REMARKS":         {},
	"OTHERS":          {},
}

// Init configures the global validator used by Gin's binding.
// - Uses json/form tag names in errors.
// - Registers alias tags shared by the request DTOs.
// membershipPrefix must be the prefix membership IDs are minted with.
func Init(membershipPrefix string) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Configure(v, membershipPrefix)
	}
}

// membershipTag builds the rule for "<prefix><at least 4 digits>".
func membershipTag(prefix string) string {
	if prefix == "" {
		prefix = DefaultMembershipPrefix
	}
	return fmt.Sprintf("startswith=%s,min=%d", prefix, len(prefix)+4)
}

func validContactSubject(fl validator.FieldLevel) bool {
	_, ok := contactSubjects[strings.ToUpper(strings.TrimSpace(fl.Field().String()))]
	return ok
}

// Configure applies the tag-name func and aliases to v.
func Configure(v *validator.Validate, membershipPrefix string) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	v.RegisterAlias("otp", "len=6,numeric")
	v.RegisterAlias("membership", membershipTag(membershipPrefix))
	_ = v.RegisterValidation("subject", validContactSubject)
}

// ToDetails converts validation/binding errors into a map[field]message suitable for API error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return "is required"
	case "required_without":
		return "is required when " + param + " is not present"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "numeric":
		return "must be numeric"
	case "startswith":
		return "must start with '" + param + "'"
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", param)
	case "min":
		if isNumberKind(fe.Kind()) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(fe.Kind()) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "eqfield":
		return "must be equal to " + param + " field"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "otp":
		return "must be a 6-digit code"
	case "membership":
		return "must be a membership ID"
	case "subject":
		return "must be one of: BLOG_SUBMISSION, COLLABORATION, REMARKS, OTHERS"
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
