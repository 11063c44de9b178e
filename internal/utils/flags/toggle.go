package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	toggleTrueCanonicalValue               = "true"
	toggleFalseCanonicalValue              = "false"
	toggleYesLiteral                       = "yes"
	toggleNoLiteral                        = "no"
	toggleOnLiteral                        = "on"
	toggleOffLiteral                       = "off"
	toggleOneLiteral                       = "1"
	toggleZeroLiteral                      = "0"
	toggleParseErrorTemplate               = "invalid toggle value %q"
	toggleArgumentTruePlaceholderConstant  = "<YES|no>"
	toggleArgumentFalsePlaceholderConstant = "<yes|NO>"
	toggleUsageEmptyTemplate               = "`%s`"
	toggleUsageFullTemplate                = "`%s` %s"
	toggleValueTypeConstant                = "bool"
	longFlagPrefixConstant                 = "--"
	shortFlagPrefixConstant                = "-"
	flagValueSeparatorConstant             = "="
	argumentTerminatorConstant             = "--"
)

var (
	trueLiteralSet = map[string]struct{}{
		toggleTrueCanonicalValue: {},
		toggleYesLiteral:         {},
		toggleOnLiteral:          {},
		toggleOneLiteral:         {},
	}
	falseLiteralSet = map[string]struct{}{
		toggleFalseCanonicalValue: {},
		toggleNoLiteral:           {},
		toggleOffLiteral:          {},
		toggleZeroLiteral:         {},
	}
)

// AddToggleFlag registers a boolean flag that also accepts yes/no, on/off and 1/0.
func AddToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, defaultValue bool, usage string) {
	if flagSet == nil || len(name) == 0 {
		return
	}

	toggleValue := newToggleFlagValue(defaultValue, target)
	flag := flagSet.VarPF(toggleValue, name, shorthand, formatToggleUsage(usage, defaultValue))
	flag.NoOptDefVal = toggleTrueCanonicalValue
}

func formatToggleUsage(description string, defaultValue bool) string {
	placeholder := toggleArgumentFalsePlaceholderConstant
	if defaultValue {
		placeholder = toggleArgumentTruePlaceholderConstant
	}
	trimmed := strings.TrimSpace(description)
	if len(trimmed) == 0 {
		return fmt.Sprintf(toggleUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(toggleUsageFullTemplate, placeholder, trimmed)
}

// PositionalAcceptor reports whether candidate would be read as the positional argument
// following positionals.
type PositionalAcceptor func(positionals []string, candidate string) bool

// NormalizeToggleArguments rewrites "--flag value" into "--flag=value" for toggle flags of flagSet.
// The following argument is joined only when it is a toggle literal that acceptsPositional
// would not take as the next positional argument. "grb delete -v on" therefore deletes the
// branch "on"; "--flag=value" is always unambiguous. A nil acceptsPositional joins every literal.
func NormalizeToggleArguments(flagSet *pflag.FlagSet, arguments []string, acceptsPositional PositionalAcceptor) []string {
	if len(arguments) == 0 {
		return nil
	}

	normalized := make([]string, 0, len(arguments))
	positionals := make([]string, 0, len(arguments))
	index := 0
	for index < len(arguments) {
		current := arguments[index]
		if current == argumentTerminatorConstant {
			normalized = append(normalized, arguments[index:]...)
			break
		}

		if index+1 < len(arguments) && isBareToggleFlag(flagSet, current) && isToggleLiteral(arguments[index+1]) {
			if acceptsPositional == nil || !acceptsPositional(positionals, arguments[index+1]) {
				normalized = append(normalized, current+flagValueSeparatorConstant+arguments[index+1])
				index += 2
				continue
			}
		}

		normalized = append(normalized, current)
		switch {
		case !strings.HasPrefix(current, shortFlagPrefixConstant) || current == shortFlagPrefixConstant:
			positionals = append(positionals, current)
		case index+1 < len(arguments) && takesSeparateValue(flagSet, current):
			normalized = append(normalized, arguments[index+1])
			index++
		}
		index++
	}
	return normalized
}

func isBareToggleFlag(flagSet *pflag.FlagSet, argument string) bool {
	flag := lookupBareFlag(flagSet, argument)
	if flag == nil {
		return false
	}
	_, isToggle := flag.Value.(*toggleFlagValue)
	return isToggle
}

func takesSeparateValue(flagSet *pflag.FlagSet, argument string) bool {
	flag := lookupBareFlag(flagSet, argument)
	return flag != nil && len(flag.NoOptDefVal) == 0
}

func lookupBareFlag(flagSet *pflag.FlagSet, argument string) *pflag.Flag {
	if flagSet == nil || strings.Contains(argument, flagValueSeparatorConstant) {
		return nil
	}

	switch {
	case strings.HasPrefix(argument, longFlagPrefixConstant):
		return flagSet.Lookup(strings.TrimPrefix(argument, longFlagPrefixConstant))
	case strings.HasPrefix(argument, shortFlagPrefixConstant) && len(argument) == 2:
		return flagSet.ShorthandLookup(strings.TrimPrefix(argument, shortFlagPrefixConstant))
	}
	return nil
}

func isToggleLiteral(value string) bool {
	normalizedValue := strings.ToLower(strings.TrimSpace(value))
	if _, isTrue := trueLiteralSet[normalizedValue]; isTrue {
		return true
	}
	_, isFalse := falseLiteralSet[normalizedValue]
	return isFalse
}

type toggleFlagValue struct {
	currentValue bool
	target       *bool
}

func newToggleFlagValue(defaultValue bool, target *bool) *toggleFlagValue {
	if target != nil {
		*target = defaultValue
	}
	return &toggleFlagValue{currentValue: defaultValue, target: target}
}

func (value *toggleFlagValue) Set(rawValue string) error {
	parsedValue, parseError := parseToggleValue(rawValue)
	if parseError != nil {
		return parseError
	}

	value.currentValue = parsedValue
	if value.target != nil {
		*value.target = parsedValue
	}
	return nil
}

func (value *toggleFlagValue) String() string {
	if value != nil && value.currentValue {
		return toggleTrueCanonicalValue
	}
	return toggleFalseCanonicalValue
}

func (value *toggleFlagValue) Type() string {
	return toggleValueTypeConstant
}

func parseToggleValue(rawValue string) (bool, error) {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	if len(normalizedValue) == 0 {
		return true, nil
	}
	if _, isTrue := trueLiteralSet[normalizedValue]; isTrue {
		return true, nil
	}
	if _, isFalse := falseLiteralSet[normalizedValue]; isFalse {
		return false, nil
	}
	return false, fmt.Errorf(toggleParseErrorTemplate, rawValue)
}
