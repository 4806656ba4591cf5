package validator_test

import (
	"testing"

	"app/internal/validator"

	"github.com/stretchr/testify/assert"
)

func validCustomer() validator.CustomerInput {
	return validator.CustomerInput{
		Email:         "kari@example.com",
		FirstName:     "Kari",
		LastName:      "Nordmann",
		StreetAddress: "Storgata 1",
		ZipCode:       "0155",
		City:          "Oslo",
	}
}

func fields(errs []validator.FieldError) []string {
	names := make([]string, 0, len(errs))
	for _, e := range errs {
		names = append(names, e.Field)
	}
	return names
}

func TestValidateCustomer_AllValid(t *testing.T) {
	errs := validator.ValidateCustomer(validCustomer())
	assert.Empty(t, errs)
}

// 1件目で打ち切らず全部返すこと
func TestValidateCustomer_CollectsAllProblems(t *testing.T) {
	in := validCustomer()
	in.Email = "not-an-email"
	in.ZipCode = "12"
	in.City = ""

	errs := validator.ValidateCustomer(in)
	assert.Len(t, errs, 3)
	assert.ElementsMatch(t, []string{"email", "zip_code", "city"}, fields(errs))
}

func TestValidateCustomer_AllMissing(t *testing.T) {
	errs := validator.ValidateCustomer(validator.CustomerInput{})
	assert.ElementsMatch(t,
		[]string{"email", "first_name", "last_name", "street_address", "zip_code", "city"},
		fields(errs))
}

func TestValidateCustomer_Email(t *testing.T) {
	for _, bad := range []string{"plain", "a@b", "a b@c.no", "@c.no"} {
		in := validCustomer()
		in.Email = bad
		errs := validator.ValidateCustomer(in)
		assert.Len(t, errs, 1, "email %q should be rejected", bad)
		assert.Equal(t, "email", errs[0].Field)
	}

	in := validCustomer()
	in.Email = "ola.nordmann@post.example.no"
	assert.Empty(t, validator.ValidateCustomer(in))
}

func TestValidateCustomer_ZipCode(t *testing.T) {
	for _, bad := range []string{"12", "12345", "01a5", "0 55"} {
		in := validCustomer()
		in.ZipCode = bad
		errs := validator.ValidateCustomer(in)
		if assert.Len(t, errs, 1, "zip %q should be rejected", bad) {
			assert.Equal(t, "zip_code", errs[0].Field)
		}
	}

	// 3桁も4桁も通る
	for _, good := range []string{"155", "0155"} {
		in := validCustomer()
		in.ZipCode = good
		assert.Empty(t, validator.ValidateCustomer(in), "zip %q should pass", good)
	}
}

func TestValidateCustomer_WhitespaceOnlyIsMissing(t *testing.T) {
	in := validCustomer()
	in.FirstName = "   "
	errs := validator.ValidateCustomer(in)
	assert.Len(t, errs, 1)
	assert.Equal(t, "first_name", errs[0].Field)
}
