package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/iancoleman/strcase"

	"github.com/teranos/lcapgen/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fieldMessage(fe))
			}
			return errors.WithHint(
				errors.Wrap(errors.ErrInvalidConfig, strings.Join(msgs, "; ")),
				"run `lcapgen config show` to see the effective values")
		}
		return errors.Wrap(err, "validate config")
	}

	// The template folder is <framework>-component, so the framework must be a plain name
	if strings.ContainsAny(c.Framework, `/\`) {
		return errors.Wrapf(errors.ErrInvalidConfig, "framework %q must not contain path separators", c.Framework)
	}

	return nil
}

// fieldMessage renders a validator failure using the config key rather than the Go field path
func fieldMessage(fe validator.FieldError) string {
	// Namespace is Config.Templates.Dir; the user-facing key is templates.dir
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = strcase.ToSnake(p)
	}
	key := strings.Join(parts, ".")

	switch fe.Tag() {
	case "required", "required_if":
		return key + " is required"
	case "oneof":
		return key + " must be one of: " + fe.Param()
	case "gte":
		return key + " must be >= " + fe.Param()
	case "excludesall":
		return key + " must be a file name, not a path"
	default:
		return key + " failed " + fe.Tag()
	}
}
