package exceptions

import (
	"fmt"
	"time"
)

type ServiceError struct {
	StatusCode int
	Cause      error
}

func (se *ServiceError) Error() string {
	return se.Cause.Error()
}

func (se *ServiceError) Unwrap() error {
	return se.Cause
}

type RequestError interface {
	ToServiceError() *ServiceError
	Error() string
}

// PayloadError replaces the default {"message": ...} response body.
type PayloadError interface {
	Payload() any
}

type ConflictError struct {
	Resource string
	Id       string
}

func (ce *ConflictError) Error() string {
	return fmt.Sprintf("Found conflicting %s with id: %s", ce.Resource, ce.Id)
}

func (ce *ConflictError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 409,
		Cause:      ce,
	}
}

func Conflict(resource string, id string) *ConflictError {
	return &ConflictError{
		Resource: resource,
		Id:       id,
	}
}

type NotFoundError struct {
	Resource string
	Id       string
}

func (nfe *NotFoundError) Error() string {
	return fmt.Sprintf("Could not find a %s with id: %s", nfe.Resource, nfe.Id)
}

func (nfe *NotFoundError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 404,
		Cause:      nfe,
	}
}

func NotFound(resource string, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Id:       id,
	}
}

type InvalidInputError struct {
	Message string
}

func (ie *InvalidInputError) Error() string {
	return ie.Message
}

func (ie *InvalidInputError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 400,
		Cause:      ie,
	}
}

func InvalidInput(message string) *InvalidInputError {
	return &InvalidInputError{
		Message: message,
	}
}

type UnauthorizedError struct{}

func (ue *UnauthorizedError) Error() string {
	return "Unauthorized"
}

func (ue *UnauthorizedError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 401,
		Cause:      ue,
	}
}

func Unauthorized() *UnauthorizedError {
	return &UnauthorizedError{}
}

// TooManyRequestsError carries the moment the caller may try again.
type TooManyRequestsError struct {
	ResetTime time.Time
}

func (te *TooManyRequestsError) Error() string {
	return fmt.Sprintf("Rate limit exceeded, retry after %s", te.ResetTime.UTC().Format(time.RFC3339))
}

func (te *TooManyRequestsError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 429,
		Cause:      te,
	}
}

func (te *TooManyRequestsError) Payload() any {
	return map[string]any{
		"isRateLimited": true,
		"resetTime":     te.ResetTime.UnixMilli(),
	}
}

func TooManyRequests(resetTime time.Time) *TooManyRequestsError {
	return &TooManyRequestsError{
		ResetTime: resetTime,
	}
}

type InternalServerError struct {
	Message string
}

func (ise *InternalServerError) Error() string {
	return ise.Message
}

func (ise *InternalServerError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 500,
		Cause:      ise,
	}
}

func InternalServer(message string) *InternalServerError {
	return &InternalServerError{
		Message: message,
	}
}
