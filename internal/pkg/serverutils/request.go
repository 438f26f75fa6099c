package serverutils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// ValidateRequest runs the validate tags of req and reports the first violation as a 400.
func ValidateRequest(req interface{}) error {
	err := getValidator().Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return BadRequest(err.Error())
	}

	fe := validationErrors[0]
	switch fe.Tag() {
	case "required":
		return BadRequest(fmt.Sprintf("%s is required", fe.Field()))
	case "oneof":
		return BadRequest(fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
	case "max":
		return BadRequest(fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
	default:
		return BadRequest(fmt.Sprintf("%s is invalid", fe.Field()))
	}
}

// ParseBody decodes a JSON body strictly. An empty body leaves out untouched.
func ParseBody(ctx *fiber.Ctx, out interface{}) error {
	return DecodeStrict(ctx.Body(), out)
}

func DecodeStrict(body []byte, out interface{}) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return BadRequest(fmt.Sprintf("invalid JSON body: %v", err))
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return BadRequest("invalid JSON body: trailing data")
	}
	return nil
}

// ParseAndValidate is ParseBody followed by ValidateRequest.
func ParseAndValidate(ctx *fiber.Ctx, out interface{}) error {
	if err := ParseBody(ctx, out); err != nil {
		return err
	}
	return ValidateRequest(out)
}
