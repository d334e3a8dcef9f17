// Package validation checks raw JSON form payloads against the site's input
// schemas. Malformed input is reported as field errors, never as a fault.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/becsite/backend/internal/model"
)

// FormField is the FieldErrors key used for problems with the payload as a
// whole (for example an array where an object was expected).
const FormField = "_form"

// FieldErrors maps a JSON field name to its violations in the order found.
type FieldErrors map[string][]string

func (e FieldErrors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Has reports whether field has at least one violation.
func (e FieldErrors) Has(field string) bool { return len(e[field]) > 0 }

// Without returns a copy of e minus the given fields, or nil when nothing is left.
func (e FieldErrors) Without(fields ...string) FieldErrors {
	out := FieldErrors{}
	for k, v := range e {
		out[k] = v
	}
	for _, f := range fields {
		delete(out, f)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for k, v := range e {
		parts = append(parts, k+": "+strings.Join(v, ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var (
	mailboxPattern = regexp.MustCompile(`^[^\s@]+@[^\s@.]+(\.[^\s@.]+)+$`)
	phonePattern   = regexp.MustCompile(`^\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}$`)
	clockPattern   = regexp.MustCompile(`(?i)^(1[0-2]|[1-9]):[0-5][0-9]\s?(AM|PM)$`)
)

// Validator validates the contact, party inquiry and checkout schemas.
// The party date window is evaluated against the injected clock.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
	loc      *time.Location
}

// Option customises a Validator.
type Option func(*Validator)

// WithClock replaces time.Now as the reference for the party date window.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

// New creates a Validator that evaluates calendar dates in loc.
func New(loc *time.Location, opts ...Option) *Validator {
	if loc == nil {
		loc = time.Local
	}
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
		loc:      loc,
	}
	for _, opt := range opts {
		opt(v)
	}

	v.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v.validate, "mailbox", func(fl validator.FieldLevel) bool {
		return mailboxPattern.MatchString(fl.Field().String())
	})
	mustRegister(v.validate, "naphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v.validate, "clock12", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
	mustRegister(v.validate, "partydate", func(fl validator.FieldLevel) bool {
		return v.inPartyWindow(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// inPartyWindow reports whether date lies between today+2 days and
// today+6 months inclusive, both at day granularity in the venue zone.
func (v *Validator) inPartyWindow(date string) bool {
	d, err := model.ParseCalendarDate(date, v.loc)
	if err != nil {
		return false
	}
	today := model.StartOfDay(v.now(), v.loc)
	earliest := today.AddDate(0, 0, 2)
	latest := today.AddDate(0, 6, 0)
	return !d.Before(earliest) && !d.After(latest)
}

// check decodes raw into dst (a pointer to an input struct) and runs the
// struct tags. Type mismatches are reported per field and the remaining
// fields are still decoded and validated.
func (v *Validator) check(raw []byte, dst any, messages map[string]string) FieldErrors {
	errs := decode(raw, dst)
	if errs.Has(FormField) {
		return errs
	}

	err := v.validate.Struct(dst)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			field := fe.Field()
			if errs.Has(field) {
				continue
			}
			errs.add(field, message(fe, messages))
		}
	} else if err != nil {
		errs.add(FormField, err.Error())
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// decode unmarshals raw into dst. Each top-level key is decoded on its own
// first so every field with the wrong JSON type is reported, and those keys
// are then left out of the real decode.
func decode(raw []byte, dst any) FieldErrors {
	errs := FieldErrors{}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) {
			errs.add(FormField, "Expected object, received "+receivedKind(te.Value))
		} else {
			errs.add(FormField, "Invalid JSON")
		}
		return errs
	}
	if obj == nil {
		errs.add(FormField, "Expected object, received null")
		return errs
	}

	typ := reflect.TypeOf(dst).Elem()
	fields := jsonFields(typ)
	for key, value := range obj {
		ft, known := fields[key]
		if !known {
			// encoding/json folds key case, so "NAME" would fill name.
			delete(obj, key)
			continue
		}
		if n, ok := integralNumber(ft, value); ok {
			value = n
			obj[key] = n
		}
		one, err := json.Marshal(map[string]json.RawMessage{key: value})
		if err != nil {
			errs.add(FormField, "Invalid JSON")
			return errs
		}
		err = json.Unmarshal(one, reflect.New(typ).Interface())
		if err == nil {
			continue
		}
		var te *json.UnmarshalTypeError
		if !errors.As(err, &te) {
			errs.add(FormField, "Invalid JSON")
			return errs
		}
		field := key
		if te.Field != "" {
			field, _, _ = strings.Cut(te.Field, ".")
		}
		errs.add(field, typeMessage(te))
		delete(obj, key)
	}

	buf, err := json.Marshal(obj)
	if err == nil {
		err = json.Unmarshal(buf, dst)
	}
	if err != nil {
		errs.add(FormField, "Invalid JSON")
	}
	return errs
}

// jsonFields maps each exact JSON key of typ to its field type.
func jsonFields(typ reflect.Type) map[string]reflect.Type {
	out := make(map[string]reflect.Type, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		out[name] = f.Type
	}
	return out
}

// integralNumber rewrites a whole-valued number such as 10.0 or 1e1 as an
// integer literal when the target field is an integer.
func integralNumber(ft reflect.Type, value json.RawMessage) (json.RawMessage, bool) {
	for ft.Kind() == reflect.Pointer {
		ft = ft.Elem()
	}
	switch ft.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
	default:
		return nil, false
	}
	if len(value) == 0 || (value[0] != '-' && (value[0] < '0' || value[0] > '9')) {
		return nil, false
	}
	var n json.Number
	if err := json.Unmarshal(value, &n); err != nil {
		return nil, false
	}
	if _, err := n.Int64(); err == nil {
		return nil, false
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return nil, false
	}
	return json.RawMessage(strconv.FormatInt(int64(f), 10)), true
}

func typeMessage(te *json.UnmarshalTypeError) string {
	t := te.Type
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	expected := "unknown"
	switch t.Kind() {
	case reflect.String:
		expected = "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if strings.HasPrefix(te.Value, "number") {
			return "Expected integer, received float"
		}
		expected = "number"
	case reflect.Float32, reflect.Float64:
		expected = "number"
	case reflect.Bool:
		expected = "boolean"
	case reflect.Map, reflect.Struct:
		expected = "object"
	case reflect.Slice, reflect.Array:
		expected = "array"
	}
	return fmt.Sprintf("Expected %s, received %s", expected, receivedKind(te.Value))
}

func receivedKind(value string) string {
	switch {
	case value == "bool":
		return "boolean"
	case strings.HasPrefix(value, "number"):
		return "number"
	case value == "":
		return "unknown"
	}
	return value
}

// message renders a validator.FieldError. A "field.tag" entry in overrides
// wins over the generic text.
func message(fe validator.FieldError, overrides map[string]string) string {
	if msg, ok := overrides[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "Required"
	case "min":
		if isString {
			return fmt.Sprintf("String must contain at least %s character(s)", fe.Param())
		}
		return "Number must be greater than or equal to " + fe.Param()
	case "max":
		if isString {
			return fmt.Sprintf("String must contain at most %s character(s)", fe.Param())
		}
		return "Number must be less than or equal to " + fe.Param()
	case "mailbox":
		return "Invalid email address"
	case "naphone":
		return "Invalid phone number"
	case "clock12":
		return "Invalid time format"
	case "partydate":
		return "Date must be at least 48 hours from now and within 6 months"
	case "oneof":
		return fmt.Sprintf("Invalid type. Expected %s, received '%v'", quoteOptions(fe.Param()), fe.Value())
	}
	return "Invalid value"
}

func quoteOptions(param string) string {
	opts := strings.Fields(param)
	for i, o := range opts {
		opts[i] = "'" + o + "'"
	}
	return strings.Join(opts, " | ")
}
