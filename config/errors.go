package config

import "errors"

var (
	// ErrMissingEnv indicates a $VAR or ${VAR} reference to an unset variable.
	ErrMissingEnv = errors.New("config: missing required environment variables")

	// ErrParse indicates the file is not valid YAML for Config.
	ErrParse = errors.New("config: parse failed")

	// ErrInvalid indicates the decoded configuration failed validation.
	ErrInvalid = errors.New("config: validation failed")
)
