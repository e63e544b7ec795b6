package errorx

import (
	"errors"
	"fmt"
	"maps"
	"net/http"

	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/redacok/redacok-backend/pkg/i18nx"
)

type I18nError struct {
	cause              error
	MessageKey         string
	MessageArgs        map[string]any
	MessagePluralCount any
	HTTPCode           int
	Code               Code
}

func (e *I18nError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("[%s] %s", e.Code, e.MessageKey)
	}

	return fmt.Sprintf("[%s] %s: %s", e.Code, e.MessageKey, e.cause)
}

func (e *I18nError) Unwrap() error {
	return e.cause
}

// Is makes every derived copy of a sentinel I18nError match the sentinel
// through errors.Is, regardless of cause or args attached along the way.
func (e *I18nError) Is(target error) bool {
	var other *I18nError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code && e.MessageKey == other.MessageKey
}

func (e *I18nError) Localize(localizer *i18n.Localizer) string {
	return localizer.MustLocalize(&i18n.LocalizeConfig{
		MessageID:    e.MessageKey,
		TemplateData: e.MessageArgs,
		PluralCount:  e.MessagePluralCount,
	})
}

func (e *I18nError) HTTPStatusCode() int {
	if e.HTTPCode != 0 {
		return e.HTTPCode
	}

	return HTTPStatusCode(e.Code)
}

// WithKey returns a copy with a different message key; the code and status stay.
func (e *I18nError) WithKey(key string) *I18nError {
	c := e.clone()
	c.MessageKey = key
	return c
}

func (e *I18nError) WithHTTPCode(code int) *I18nError {
	c := e.clone()
	c.HTTPCode = code
	return c
}

func (e *I18nError) WithArgs(args map[string]any) *I18nError {
	c := e.clone()
	if c.MessageArgs == nil {
		c.MessageArgs = make(map[string]any)
	}
	maps.Copy(c.MessageArgs, args)
	return c
}

func (e *I18nError) WithCause(cause error) *I18nError {
	c := e.clone()
	c.cause = cause
	return c
}

func (e *I18nError) clone() *I18nError {
	c := &I18nError{
		cause:              e.cause,
		MessageKey:         e.MessageKey,
		MessagePluralCount: e.MessagePluralCount,
		HTTPCode:           e.HTTPCode,
		Code:               e.Code,
	}
	if e.MessageArgs != nil {
		c.MessageArgs = maps.Clone(e.MessageArgs)
	}
	return c
}

func HTTPStatusCode(code Code) int {
	switch code {
	case CodeInvalid, CodeValidationFailed, CodeMalformedJSON:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeInvalidCredentials, CodeTokenExpired:
		return http.StatusUnauthorized
	case CodeForbidden, CodeAccessDenied, CodeInsufficientPermissions:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case CodeConflict, CodeDuplicateEntry, CodeAlreadyProcessed:
		return http.StatusConflict
	case CodeBusinessRuleViolation:
		return http.StatusUnprocessableEntity
	case CodeRateLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func IsCode(err error, code Code) bool {
	if err == nil {
		return false
	}

	var i18nErr *I18nError
	if errors.As(err, &i18nErr) {
		return i18nErr.Code == code
	}

	return false
}

func IsNotFound(err error) bool {
	return IsCode(err, CodeNotFound)
}

func IsConflict(err error) bool {
	return IsCode(err, CodeConflict)
}

func IsDuplicateEntry(err error) bool {
	return IsCode(err, CodeDuplicateEntry)
}

// Client Errors (4xx)
func NewInvalidRequest() *I18nError {
	return &I18nError{
		MessageKey: i18nx.KeyInvalid,
		Code:       CodeInvalid,
		HTTPCode:   http.StatusBadRequest,
	}
}

func NewValidationFailed() *I18nError {
	return &I18nError{
		MessageKey: i18nx.KeyValidationFailed,
		Code:       CodeValidationFailed,
		HTTPCode:   http.StatusBadRequest,
	}
}

func NewValidationFieldFailed(field string) *I18nError {
	return &I18nError{
		MessageKey:  i18nx.KeyValidationFailedField,
		MessageArgs: map[string]any{i18nx.ArgField: field},
		Code:        CodeValidationFailed,
		HTTPCode:    http.StatusBadRequest,
	}
}

func NewMalformedJSON() *I18nError {
	return &I18nError{
		MessageKey: i18nx.KeyMalformedJSON,
		Code:       CodeMalformedJSON,
		HTTPCode:   http.StatusBadRequest,
	}
}

func NewUnauthorized() *I18nError {
	return &I18nError{
		MessageKey: i18nx.KeyUnauthorized,
		Code:       CodeUnauthorized,
		HTTPCode:   http.StatusUnauthorized,
	}
}

func NewInvalidCredentials() *I18nError {
	return &I18nError{
		MessageKey: i18nx.KeyInvalidCredentials,
		Code:       CodeInvalidCredentials,
		HTTPCode:   http.StatusUnauthorized,
	}
}

func NewTokenExpired() *I18nError {
	return &I18nError{
		MessageKey: i18nx.KeyTokenExpired,
		Code:       CodeTokenExpired,
		HTTPCode:   http.StatusUnauthorized,
	}
}

func NewForbidden() *I18nError {
	return &I18nError{
		MessageKey: i18nx.KeyForbidden,
		Code:       CodeForbidden,
		HTTPCode:   http.StatusForbidden,
	}
}

func NewAccessDenied() *I18nError {
	return &I18nError{
		MessageKey: i18nx.KeyAccessDenied,
		Code:       CodeAccessDenied,
		HTTPCode:   http.StatusForbidden,
	}
}

func NewNotFound() *I18nError {
	return &I18nError{
		MessageKey: i18nx.KeyNotFound,
		Code:       CodeNotFound,
		HTTPCode:   http.StatusNotFound,
	}
}

func NewResourceNotFound(resourceType string) *I18nError {
	return &I18nError{
		MessageKey:  i18nx.KeyNotFoundWithType,
		MessageArgs: map[string]any{i18nx.ArgResourceType: resourceType},
		Code:        CodeNotFound,
		HTTPCode:    http.StatusNotFound,
	}
}

func NewMethodNotAllowed() *I18nError {
	return &I18nError{
		MessageKey: i18nx.KeyMethodNotAllowed,
		Code:       CodeMethodNotAllowed,
		HTTPCode:   http.StatusMethodNotAllowed,
	}
}

func NewConflict() *I18nError {
	return &I18nError{
		MessageKey: i18nx.KeyConflict,
		Code:       CodeConflict,
		HTTPCode:   http.StatusConflict,
	}
}

func NewDuplicateEntry() *I18nError {
	return &I18nError{
		MessageKey: i18nx.KeyDuplicateEntry,
		Code:       CodeDuplicateEntry,
		HTTPCode:   http.StatusConflict,
	}
}

func NewDuplicateEntryWithField(resourceType, field string) *I18nError {
	return &I18nError{
		MessageKey: i18nx.KeyDuplicateEntryWithField,
		MessageArgs: map[string]any{
			i18nx.ArgResourceType: resourceType,
			i18nx.ArgField:        field,
		},
		Code:     CodeDuplicateEntry,
		HTTPCode: http.StatusConflict,
	}
}

// Business Logic Errors
func NewAlreadyProcessed() *I18nError {
	return &I18nError{
		MessageKey: i18nx.KeyAlreadyProcessed,
		Code:       CodeAlreadyProcessed,
		HTTPCode:   http.StatusConflict,
	}
}

func NewBusinessRuleViolation() *I18nError {
	return &I18nError{
		MessageKey: i18nx.KeyBusinessRuleViolation,
		Code:       CodeBusinessRuleViolation,
		HTTPCode:   http.StatusUnprocessableEntity,
	}
}

func NewInsufficientPermissions() *I18nError {
	return &I18nError{
		MessageKey: i18nx.KeyInsufficientPermissions,
		Code:       CodeInsufficientPermissions,
		HTTPCode:   http.StatusForbidden,
	}
}

// Server Errors (5xx)
func NewInternalError() *I18nError {
	return &I18nError{
		MessageKey: i18nx.KeyInternalError,
		Code:       CodeInternal,
		HTTPCode:   http.StatusInternalServerError,
	}
}
