package actions

import (
	"sort"
	"strings"
)

const (
	emptyActionIDReasonConstant       = "identifier must not be empty"
	missingAliasesReasonConstant      = "at least one alias is required"
	emptyAliasReasonConstant          = "aliases must not be blank"
	missingStrategyReasonConstant     = "either command templates or a step function is required"
	conflictingStrategyReasonConstant = "command templates and a step function are mutually exclusive"
)

// Registry is the validated catalog of actions and their aliases.
type Registry struct {
	actions      map[ActionID]Action
	aliasActions map[string]ActionID
}

// NewRegistry validates the provided actions and indexes them by identifier and alias.
func NewRegistry(catalog ...Action) (*Registry, error) {
	registry := &Registry{
		actions:      make(map[ActionID]Action, len(catalog)),
		aliasActions: make(map[string]ActionID),
	}

	for _, action := range catalog {
		if validationError := validateAction(action); validationError != nil {
			return nil, validationError
		}
		if _, exists := registry.actions[action.ID]; exists {
			return nil, &DuplicateActionError{Action: action.ID}
		}
		for _, alias := range action.Aliases {
			if existingAction, claimed := registry.aliasActions[alias]; claimed {
				return nil, &DuplicateAliasError{Alias: alias, ExistingAction: existingAction, ConflictingAction: action.ID}
			}
			registry.aliasActions[alias] = action.ID
		}
		registry.actions[action.ID] = action.clone()
	}

	return registry, nil
}

// NewDefaultRegistry builds a registry holding DefaultActions.
func NewDefaultRegistry() (*Registry, error) {
	return NewRegistry(DefaultActions()...)
}

func validateAction(action Action) error {
	if len(strings.TrimSpace(string(action.ID))) == 0 {
		return &InvalidActionError{Action: action.ID, Reason: emptyActionIDReasonConstant}
	}
	if len(action.Aliases) == 0 {
		return &InvalidActionError{Action: action.ID, Reason: missingAliasesReasonConstant}
	}
	for _, alias := range action.Aliases {
		if len(strings.TrimSpace(alias)) == 0 {
			return &InvalidActionError{Action: action.ID, Reason: emptyAliasReasonConstant}
		}
	}
	hasTemplates := len(action.Templates) > 0
	if !hasTemplates && !action.Dynamic() {
		return &InvalidActionError{Action: action.ID, Reason: missingStrategyReasonConstant}
	}
	if hasTemplates && action.Dynamic() {
		return &InvalidActionError{Action: action.ID, Reason: conflictingStrategyReasonConstant}
	}
	return nil
}

// ResolveAlias returns the action claiming token. Matching is exact and case-sensitive.
func (registry *Registry) ResolveAlias(token string) (ActionID, error) {
	actionID, exists := registry.aliasActions[token]
	if !exists {
		return "", &UnknownActionError{Token: token}
	}
	return actionID, nil
}

// Lookup returns the action registered under actionID.
func (registry *Registry) Lookup(actionID ActionID) (Action, error) {
	action, exists := registry.actions[actionID]
	if !exists {
		return Action{}, &UnknownActionError{Token: string(actionID)}
	}
	return action.clone(), nil
}

// Describe returns the human-readable description of actionID.
func (registry *Registry) Describe(actionID ActionID) (string, error) {
	action, lookupError := registry.Lookup(actionID)
	if lookupError != nil {
		return "", lookupError
	}
	return action.Description, nil
}

// List returns every action sorted by canonical identifier.
func (registry *Registry) List() []Action {
	listed := make([]Action, 0, len(registry.actions))
	for _, action := range registry.actions {
		listed = append(listed, action.clone())
	}
	sort.Slice(listed, func(leftIndex int, rightIndex int) bool {
		return listed[leftIndex].ID < listed[rightIndex].ID
	})
	return listed
}
