package util

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindStructural    ErrorKind = "structural"
	KindConflict      ErrorKind = "conflict"
	KindValidation    ErrorKind = "validation"
	KindLimitExceeded ErrorKind = "limit_exceeded"
	KindDependency    ErrorKind = "dependency"
	KindState         ErrorKind = "state"
	KindNotFound      ErrorKind = "not_found"
)

// DomainError 统一领域错误，带实体和ID方便调用方定位违反的约束
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Entity  string    `json:"entity"`
	ID      uint      `json:"id,omitempty"`
	Message string    `json:"message"`
}

func (e *DomainError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s: %s %d: %s", e.Kind, e.Entity, e.ID, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Entity, e.Message)
}

func StructuralError(entity string, id uint, msg string) *DomainError {
	return &DomainError{Kind: KindStructural, Entity: entity, ID: id, Message: msg}
}

func ConflictError(entity string, id uint, msg string) *DomainError {
	return &DomainError{Kind: KindConflict, Entity: entity, ID: id, Message: msg}
}

func ValidationError(entity string, id uint, msg string) *DomainError {
	return &DomainError{Kind: KindValidation, Entity: entity, ID: id, Message: msg}
}

func LimitExceededError(entity string, id uint, msg string) *DomainError {
	return &DomainError{Kind: KindLimitExceeded, Entity: entity, ID: id, Message: msg}
}

func DependencyError(entity string, id uint, msg string) *DomainError {
	return &DomainError{Kind: KindDependency, Entity: entity, ID: id, Message: msg}
}

func StateError(entity string, id uint, msg string) *DomainError {
	return &DomainError{Kind: KindState, Entity: entity, ID: id, Message: msg}
}

func NotFoundError(entity string, id uint) *DomainError {
	return &DomainError{Kind: KindNotFound, Entity: entity, ID: id, Message: "not found"}
}

// IsKind 判断错误是否属于某一类领域错误
func IsKind(err error, kind ErrorKind) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Kind == kind
}
