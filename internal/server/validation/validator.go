// Package validation turns raw form input into a user record or a list of
// field errors. Presence and email-syntax rules are declared as
// go-playground/validator tags on Form; the optional deliverability check
// resolves the email domain.
package validation

import (
	"context"
	"errors"
	"net"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/userbook/internal/server/models"
	"github.com/go-playground/validator/v10"
)

// Form field names, shared with the HTML forms.
const (
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldPhoneNumber = "phone_number"
	FieldEmailID     = "email_id"
	FieldAddress     = "address"
)

// Form is the raw create/edit form submission.
type Form struct {
	FirstName   string `form:"first_name" validate:"required"`
	LastName    string `form:"last_name" validate:"required"`
	PhoneNumber string `form:"phone_number" validate:"required"`
	EmailID     string `form:"email_id" validate:"required,email"`
	Address     string `form:"address" validate:"required"`
}

// FormFromUser pre-populates an edit form.
func FormFromUser(u *models.User) Form {
	return Form{
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		EmailID:     u.EmailID,
		Address:     u.Address,
	}
}

// Resolver is the subset of *net.Resolver used for deliverability checks.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Validator checks forms. It is safe for concurrent use.
type Validator struct {
	validate            *validator.Validate
	checkDeliverability bool
	resolver            Resolver
}

// Option configures a Validator.
type Option func(*Validator)

// WithDeliverability enables the DNS check of the email domain using r.
func WithDeliverability(r Resolver) Option {
	return func(v *Validator) {
		v.checkDeliverability = true
		v.resolver = r
	}
}

func New(opts ...Option) *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("form")
	})

	v := &Validator{validate: validate, resolver: net.DefaultResolver}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate trims every field, checks presence and email format and returns
// the record to persist. The email domain is lower-cased in the result.
// Failures are returned as Errors.
func (v *Validator) Validate(ctx context.Context, f Form) (*models.User, error) {
	f = f.trimmed()

	if err := v.validate.StructCtx(ctx, f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		return nil, toErrors(verrs)
	}

	email := normalizeEmail(f.EmailID)
	if v.checkDeliverability {
		if err := v.deliverable(ctx, email); err != nil {
			return nil, Errors{err}
		}
	}

	return &models.User{
		FirstName:   f.FirstName,
		LastName:    f.LastName,
		PhoneNumber: f.PhoneNumber,
		EmailID:     email,
		Address:     f.Address,
	}, nil
}

func (f Form) trimmed() Form {
	return Form{
		FirstName:   strings.TrimSpace(f.FirstName),
		LastName:    strings.TrimSpace(f.LastName),
		PhoneNumber: strings.TrimSpace(f.PhoneNumber),
		EmailID:     strings.TrimSpace(f.EmailID),
		Address:     strings.TrimSpace(f.Address),
	}
}

func toErrors(verrs validator.ValidationErrors) Errors {
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out = append(out, &MissingField{Field: fe.Field()})
		case "email":
			out = append(out, &InvalidEmail{Reason: "The email address is not valid. It must have exactly one @-sign and a valid domain."})
		default:
			out = append(out, &MissingField{Field: fe.Field()})
		}
	}
	return out
}

// normalizeEmail lower-cases the domain; the local part is case-sensitive.
func normalizeEmail(email string) string {
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// deliverable accepts a domain with MX records, or failing that, one that
// resolves to an address.
func (v *Validator) deliverable(ctx context.Context, email string) error {
	domain := email[strings.LastIndexByte(email, '@')+1:]

	mx, err := v.resolver.LookupMX(ctx, domain)
	if err == nil && len(mx) > 0 {
		// a single "." MX is the null MX record: the domain accepts no mail
		if len(mx) == 1 && mx[0].Host == "." {
			return &InvalidEmail{Reason: "The domain name " + domain + " does not accept email."}
		}
		return nil
	}

	hosts, err := v.resolver.LookupHost(ctx, domain)
	if err == nil && len(hosts) > 0 {
		return nil
	}
	return &InvalidEmail{Reason: "The domain name " + domain + " does not exist."}
}
