// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

// Package validation provides struct validation using go-playground/validator v10.
// It exposes a thread-safe singleton validator with custom rules for
// Mirrarr configuration values:
//
//   - pacing: a pacing value ("0", bare seconds "5", or a duration
//     string "500ms", "5s", "1m")
//   - baseurl: an http(s) URL or bare host[:port]
//
// Example:
//
//	type InstanceConfig struct {
//	    Name string `validate:"required"`
//	    Kind string `validate:"oneof=sonarr radarr"`
//	    URL  string `validate:"required,baseurl"`
//	}
//
//	if err := validation.ValidateStruct(&cfg); err != nil { ... }
package validation

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError describes a single failed field with its validation tag.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (e FieldError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s failed %s=%s validation", e.Field, e.Tag, e.Param)
	}
	return fmt.Sprintf("%s failed %s validation", e.Field, e.Tag)
}

// StructError is the aggregate validation failure for one struct.
type StructError struct {
	Fields []FieldError
}

func (e *StructError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return strings.Join(msgs, "; ")
}

// GetValidator returns the singleton validator instance with custom rules
// registered. Thread-safe; the validator caches struct metadata internally.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// pacing validates sync delay / sync interval values. Accepted
		// forms match config.ParsePacing: "" and "0" (no pacing), bare
		// non-negative integers as seconds ("5"), and Go duration
		// strings ("500ms", "5s", "1m").
		_ = validate.RegisterValidation("pacing", func(fl validator.FieldLevel) bool {
			s := strings.TrimSpace(fl.Field().String())
			if s == "" || s == "0" {
				return true
			}
			if n, err := strconv.Atoi(s); err == nil {
				return n >= 0
			}
			d, err := time.ParseDuration(s)
			return err == nil && d >= 0
		})

		// baseurl accepts http(s) URLs and bare host[:port] values; the
		// latter get an http:// prefix at client construction time.
		_ = validate.RegisterValidation("baseurl", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			if s == "" {
				return false
			}
			return !strings.ContainsAny(s, " \t\n")
		})
	})

	return validate
}

// ValidateStruct validates a struct using the singleton validator.
// Returns nil on success, or a *StructError listing every failed field.
func ValidateStruct(s interface{}) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	se := &StructError{}
	for _, fe := range verrs {
		se.Fields = append(se.Fields, FieldError{
			Field: fe.Namespace(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return se
}
