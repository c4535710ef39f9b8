package domain

import (
	"errors"
	"fmt"
)

// Отсутствие сущности не ретраится вызывающей стороной.
var (
	ErrScheduleNotFound    = errors.New("doctor schedule not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
)

// ValidationError - некорректные входные данные, отклоняются
// до каких-либо вычислений и записей.
type ValidationError struct {
	Field  string
	Detail string
}

func NewValidationError(field, detail string) *ValidationError {
	return &ValidationError{Field: field, Detail: detail}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Detail)
}

// PolicyViolationError - нарушение бизнес-политики (статус, lead time,
// занятый слот). Восстановимая ошибка, текст показывается пользователю.
type PolicyViolationError struct {
	Code   string
	Detail string
}

func NewPolicyViolation(code, detail string) *PolicyViolationError {
	return &PolicyViolationError{Code: code, Detail: detail}
}

func (e *PolicyViolationError) Error() string {
	return fmt.Sprintf("policy violation %s: %s", e.Code, e.Detail)
}

// CollaboratorError - сбой внешнего хранилища или брокера.
// Пробрасывается вызывающей стороне как есть, ядро не ретраит.
type CollaboratorError struct {
	Op  string
	Err error
}

func NewCollaboratorError(op string, err error) *CollaboratorError {
	return &CollaboratorError{Op: op, Err: err}
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("collaborator failure in %s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrScheduleNotFound) || errors.Is(err, ErrAppointmentNotFound)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsPolicyViolation(err error) bool {
	var pe *PolicyViolationError
	return errors.As(err, &pe)
}
