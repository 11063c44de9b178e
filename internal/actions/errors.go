package actions

import (
	"errors"
	"fmt"
)

const (
	unknownActionMessageConstant          = "unknown action"
	duplicateAliasMessageConstant         = "duplicate alias"
	duplicateActionMessageConstant        = "duplicate action"
	missingParameterMessageConstant       = "missing parameter"
	invalidActionMessageConstant          = "invalid action definition"
	unknownActionErrorTemplateConstant    = "%s: %q"
	duplicateAliasErrorTemplateConstant   = "%s: %q already defined for action %q, cannot assign it to %q"
	duplicateActionErrorTemplateConstant  = "%s: %q"
	missingParameterErrorTemplateConstant = "%s: action %q requires %s"
	invalidActionErrorTemplateConstant    = "%s %q: %s"
)

// ErrUnknownAction matches UnknownActionError values.
var ErrUnknownAction = errors.New(unknownActionMessageConstant)

// ErrDuplicateAlias matches DuplicateAliasError values.
var ErrDuplicateAlias = errors.New(duplicateAliasMessageConstant)

// ErrDuplicateAction matches DuplicateActionError values.
var ErrDuplicateAction = errors.New(duplicateActionMessageConstant)

// ErrMissingParameter matches MissingParameterError values.
var ErrMissingParameter = errors.New(missingParameterMessageConstant)

// ErrInvalidAction matches InvalidActionError values.
var ErrInvalidAction = errors.New(invalidActionMessageConstant)

// UnknownActionError reports an alias or identifier that no action claims.
type UnknownActionError struct {
	Token string
}

// Error describes the unknown token.
func (unknownError *UnknownActionError) Error() string {
	return fmt.Sprintf(unknownActionErrorTemplateConstant, unknownActionMessageConstant, unknownError.Token)
}

// Is reports whether target is ErrUnknownAction.
func (unknownError *UnknownActionError) Is(target error) bool {
	return target == ErrUnknownAction
}

// DuplicateAliasError reports an alias claimed by two actions.
type DuplicateAliasError struct {
	Alias             string
	ExistingAction    ActionID
	ConflictingAction ActionID
}

// Error names the alias and both competing actions.
func (duplicateError *DuplicateAliasError) Error() string {
	return fmt.Sprintf(
		duplicateAliasErrorTemplateConstant,
		duplicateAliasMessageConstant,
		duplicateError.Alias,
		duplicateError.ExistingAction,
		duplicateError.ConflictingAction,
	)
}

// Is reports whether target is ErrDuplicateAlias.
func (duplicateError *DuplicateAliasError) Is(target error) bool {
	return target == ErrDuplicateAlias
}

// DuplicateActionError reports an action identifier registered twice.
type DuplicateActionError struct {
	Action ActionID
}

// Error names the repeated identifier.
func (duplicateError *DuplicateActionError) Error() string {
	return fmt.Sprintf(duplicateActionErrorTemplateConstant, duplicateActionMessageConstant, duplicateError.Action)
}

// Is reports whether target is ErrDuplicateAction.
func (duplicateError *DuplicateActionError) Is(target error) bool {
	return target == ErrDuplicateAction
}

// MissingParameterError reports a required parameter that was empty for the chosen action.
type MissingParameterError struct {
	Action    ActionID
	Parameter ParameterName
	Cause     error
}

// Error names the action and the missing parameter, followed by the cause when known.
func (missingError *MissingParameterError) Error() string {
	message := fmt.Sprintf(missingParameterErrorTemplateConstant, missingParameterMessageConstant, missingError.Action, missingError.Parameter)
	if missingError.Cause != nil {
		return message + ": " + missingError.Cause.Error()
	}
	return message
}

// Is reports whether target is ErrMissingParameter.
func (missingError *MissingParameterError) Is(target error) bool {
	return target == ErrMissingParameter
}

// Unwrap exposes the underlying cause.
func (missingError *MissingParameterError) Unwrap() error {
	return missingError.Cause
}

// InvalidActionError reports a catalog entry that cannot be registered.
type InvalidActionError struct {
	Action ActionID
	Reason string
}

// Error describes why the entry was rejected.
func (invalidError *InvalidActionError) Error() string {
	return fmt.Sprintf(invalidActionErrorTemplateConstant, invalidActionMessageConstant, invalidError.Action, invalidError.Reason)
}

// Is reports whether target is ErrInvalidAction.
func (invalidError *InvalidActionError) Is(target error) bool {
	return target == ErrInvalidAction
}
