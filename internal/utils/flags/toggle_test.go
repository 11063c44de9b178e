package flags

import (
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestAddToggleFlagParsesValues(t *testing.T) {
	testCases := []struct {
		name              string
		arguments         []string
		expectedValue     bool
		expectedChanged   bool
		expectedPositions []string
	}{
		{name: "DefaultFalse", arguments: []string{}, expectedValue: false, expectedChanged: false},
		{name: "ImplicitTrue", arguments: []string{"--toggle"}, expectedValue: true, expectedChanged: true},
		{name: "ExplicitYes", arguments: []string{"--toggle", "yes"}, expectedValue: true, expectedChanged: true},
		{name: "ExplicitTrueUppercase", arguments: []string{"--toggle", "TRUE"}, expectedValue: true, expectedChanged: true},
		{name: "ExplicitNo", arguments: []string{"--toggle", "no"}, expectedValue: false, expectedChanged: true},
		{name: "ExplicitOff", arguments: []string{"--toggle=off"}, expectedValue: false, expectedChanged: true},
		{name: "PositionalNotSwallowed", arguments: []string{"--toggle", "create", "feature"}, expectedValue: true, expectedChanged: true, expectedPositions: []string{"create", "feature"}},
	}

	for testCaseIndex, testCase := range testCases {
		t.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(t *testing.T) {
			command := &cobra.Command{}

			var toggleValue bool
			AddToggleFlag(command.Flags(), &toggleValue, "toggle", "", false, "Toggle flag")

			normalizedArguments := NormalizeToggleArguments(command.Flags(), testCase.arguments, nil)
			require.NoError(t, command.ParseFlags(normalizedArguments))
			require.Equal(t, testCase.expectedValue, toggleValue)

			flag := command.Flags().Lookup("toggle")
			require.NotNil(t, flag)
			require.Equal(t, testCase.expectedChanged, flag.Changed)
			if testCase.expectedPositions != nil {
				require.Equal(t, testCase.expectedPositions, command.Flags().Args())
			}
		})
	}
}

func TestAddToggleFlagRejectsInvalidValues(t *testing.T) {
	command := &cobra.Command{}

	var toggleValue bool
	AddToggleFlag(command.Flags(), &toggleValue, "toggle", "", false, "Toggle flag")

	require.Error(t, command.ParseFlags([]string{"--toggle=maybe"}))
	require.False(t, toggleValue)
}

func TestNormalizeToggleArgumentsHandlesShorthand(t *testing.T) {
	command := &cobra.Command{}

	var toggleValue bool
	AddToggleFlag(command.Flags(), &toggleValue, "toggle", "t", true, "Toggle flag")
	require.True(t, toggleValue)

	normalizedArguments := NormalizeToggleArguments(command.Flags(), []string{"-t", "no"}, nil)
	require.Equal(t, []string{"-t=no"}, normalizedArguments)
	require.NoError(t, command.ParseFlags(normalizedArguments))
	require.False(t, toggleValue)
}

func TestNormalizeToggleArgumentsLeavesOtherFlagsAlone(t *testing.T) {
	command := &cobra.Command{}
	command.Flags().String("name", "", "Name")

	arguments := []string{"--name", "yes", "--", "--toggle", "yes"}
	require.Equal(t, arguments, NormalizeToggleArguments(command.Flags(), arguments, nil))
}

func TestNormalizeToggleArgumentsKeepsAcceptedPositionals(t *testing.T) {
	acceptsTwoPositionals := func(positionals []string, _ string) bool {
		return len(positionals) > 0 && len(positionals) < 2
	}

	testCases := []struct {
		name               string
		arguments          []string
		expectedArguments  []string
		expectedValue      bool
		expectedPositional []string
	}{
		{
			name:               "LiteralBeforePositionals",
			arguments:          []string{"-v", "off", "delete", "feature"},
			expectedArguments:  []string{"-v=off", "delete", "feature"},
			expectedValue:      false,
			expectedPositional: []string{"delete", "feature"},
		},
		{
			name:               "LiteralTakenAsPositional",
			arguments:          []string{"delete", "-v", "on"},
			expectedArguments:  []string{"delete", "-v", "on"},
			expectedValue:      true,
			expectedPositional: []string{"delete", "on"},
		},
		{
			name:               "LiteralAfterPositionalsConsumed",
			arguments:          []string{"delete", "feature", "-v", "off"},
			expectedArguments:  []string{"delete", "feature", "-v=off"},
			expectedValue:      false,
			expectedPositional: []string{"delete", "feature"},
		},
		{
			name:               "FlagValueIsNotPositional",
			arguments:          []string{"delete", "--name", "feature", "-v", "on"},
			expectedArguments:  []string{"delete", "--name", "feature", "-v", "on"},
			expectedValue:      true,
			expectedPositional: []string{"delete", "on"},
		},
	}

	for testCaseIndex, testCase := range testCases {
		t.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(t *testing.T) {
			command := &cobra.Command{}
			command.Flags().String("name", "", "Name")

			var toggleValue bool
			AddToggleFlag(command.Flags(), &toggleValue, "verbose", "v", false, "Toggle flag")

			normalizedArguments := NormalizeToggleArguments(command.Flags(), testCase.arguments, acceptsTwoPositionals)
			require.Equal(t, testCase.expectedArguments, normalizedArguments)
			require.NoError(t, command.ParseFlags(normalizedArguments))
			require.Equal(t, testCase.expectedValue, toggleValue)
			require.Equal(t, testCase.expectedPositional, command.Flags().Args())
		})
	}
}

func TestFormatToggleUsageShowsDefault(t *testing.T) {
	require.Equal(t, "`<yes|NO>` Print commands", formatToggleUsage("Print commands", false))
	require.Equal(t, "`<YES|no>`", formatToggleUsage(" ", true))
}
