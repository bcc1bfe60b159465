package shared

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrorCategory represents different types of errors that can occur
type ErrorCategory string

const (
	ErrorCategoryNetwork    ErrorCategory = "network"
	ErrorCategoryCache      ErrorCategory = "cache"
	ErrorCategoryTracking   ErrorCategory = "tracking"
	ErrorCategoryValidation ErrorCategory = "validation"
)

// ServiceError represents a standardized error with additional context.
// No ServiceError is fatal: network failures preserve the last rendered
// state, cache decode failures degrade to a cache miss, and tracking
// failures are logged and dropped.
type ServiceError struct {
	Category    ErrorCategory `json:"category"`
	Code        string        `json:"code"`
	Message     string        `json:"message"`
	Timestamp   time.Time     `json:"timestamp"`
	ServiceName string        `json:"service_name"`
	Operation   string        `json:"operation"`
	Cause       error         `json:"-"` // Original error, not serialized
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// NewServiceError creates a new service error
func NewServiceError(category ErrorCategory, code, message, serviceName, operation string, cause error) *ServiceError {
	return &ServiceError{
		Category:    category,
		Code:        code,
		Message:     message,
		Timestamp:   time.Now(),
		ServiceName: serviceName,
		Operation:   operation,
		Cause:       cause,
	}
}

// NewNetworkError creates a network-category error for a failed endpoint fetch
func NewNetworkError(serviceName, operation, message string, cause error) *ServiceError {
	return NewServiceError(ErrorCategoryNetwork, "FETCH_FAILED", message, serviceName, operation, cause)
}

// NewCacheError creates a cache-category error for a malformed stored payload
func NewCacheError(serviceName, operation, message string, cause error) *ServiceError {
	return NewServiceError(ErrorCategoryCache, "MALFORMED_PAYLOAD", message, serviceName, operation, cause)
}

// NewTrackingError creates a tracking-category error for a failed best-effort call
func NewTrackingError(serviceName, operation, message string, cause error) *ServiceError {
	return NewServiceError(ErrorCategoryTracking, "TRACK_FAILED", message, serviceName, operation, cause)
}

// LogError logs the error with structured fields
func (e *ServiceError) LogError() {
	logrus.WithFields(logrus.Fields{
		"error_category":   e.Category,
		"error_code":       e.Code,
		"error_message":    e.Message,
		"service_name":     e.ServiceName,
		"operation":        e.Operation,
		"underlying_error": e.Cause,
	}).Error("Service error occurred")
}
