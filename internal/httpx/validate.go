package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json field names, not Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeValid decodes the request body into dst and shape-checks it.
// A non-nil return is the 400 field-error list to send back.
func decodeValid(r *http.Request, dst any) []fieldError {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return []fieldError{{
			Type:     "field",
			Value:    nil,
			Msg:      "malformed JSON body",
			Path:     "body",
			Location: "body",
		}}
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		out := make([]fieldError, 0)
		if ok := asValidationErrors(err, &verrs); !ok {
			return []fieldError{{Type: "field", Value: nil, Msg: "invalid body", Path: "body", Location: "body"}}
		}
		for _, fe := range verrs {
			out = append(out, fieldError{
				Type:     "field",
				Value:    fe.Value(),
				Msg:      messageFor(fe),
				Path:     trimNamespace(fe.Namespace()),
				Location: "body",
			})
		}
		return out
	}
	return nil
}

func asValidationErrors(err error, out *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*out = verrs
	}
	return ok
}

// trimNamespace drops the leading struct name from
// "createOrderRequest.items[0].productId".
func trimNamespace(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must have at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must have at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
