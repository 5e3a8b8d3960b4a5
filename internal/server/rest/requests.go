package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/recrutement/internal/common"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

type registerRequest struct {
	Nom       string `json:"nom" validate:"required,max=100"`
	Postnom   string `json:"postnom" validate:"max=100"`
	Prenom    string `json:"prenom" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,min=6,maxbytes=72"`
	Telephone string `json:"telephone" validate:"max=32"`
	Adresse   string `json:"adresse" validate:"max=255"`
	Role      string `json:"role" validate:"omitempty,oneof=user candidat"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type candidatureRequest struct {
	PaiementOnline bool `json:"paiementOnline"`
	PaiementCash   bool `json:"paiementCash"`
}

type messageRequest struct {
	ReceiverID string `json:"receiverId" validate:"required,uuid"`
	Message    string `json:"message" validate:"required,max=5000"`
}

type roleRequest struct {
	Role string `json:"role" validate:"required,oneof=user candidat admin"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("maxbytes", maxBytes)
	return v
}

// maxBytes limits a string's length in bytes rather than runes.
func maxBytes(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= n
}

// decodeAndValidate reads a JSON body into dst and validates it. Errors are
// common.ErrValidation with a client-facing message.
func decodeAndValidate(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return common.NewPublicError(common.ErrValidation, "request body is required")
		}
		return common.NewPublicError(common.ErrValidation, "invalid request payload")
	}

	if err := validate.Struct(dst); err != nil {
		var ves validator.ValidationErrors
		if errors.As(err, &ves) {
			return common.NewPublicError(common.ErrValidation, describe(ves))
		}
		return fmt.Errorf("error validating request: %w", err)
	}
	return nil
}

func describe(ves validator.ValidationErrors) string {
	msgs := make([]string, 0, len(ves))
	for _, fe := range ves {
		var m string
		switch fe.Tag() {
		case "required":
			m = fe.Field() + " is required"
		case "email":
			m = fe.Field() + " must be a valid email"
		case "uuid":
			m = fe.Field() + " must be a valid id"
		case "min":
			m = fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		case "max":
			m = fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		case "maxbytes":
			m = fmt.Sprintf("%s must be at most %s bytes", fe.Field(), fe.Param())
		case "oneof":
			m = fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
		default:
			m = fe.Field() + " is invalid"
		}
		msgs = append(msgs, m)
	}
	return strings.Join(msgs, "; ")
}
