package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ColorMode selects when console output is colored.
type ColorMode string

// Supported color modes.
const (
	ColorModeAuto   ColorMode = "auto"
	ColorModeAlways ColorMode = "always"
	ColorModeNever  ColorMode = "never"
)

const (
	commandColorConstant                 = "1"
	outputColorConstant                  = "8"
	unsupportedColorModeTemplateConstant = "unsupported color mode %q (expected one of %s)"
	colorModeListSeparatorConstant       = ", "
	noColorEnvironmentVariableConstant   = "NO_COLOR"
	lineTerminatorConstant               = "\n"
)

// ColorModes lists the accepted color modes in help order.
func ColorModes() []ColorMode {
	return []ColorMode{ColorModeAuto, ColorModeAlways, ColorModeNever}
}

// ParseColorMode accepts a color mode name case-insensitively. An empty value selects auto.
func ParseColorMode(value string) (ColorMode, error) {
	normalized := ColorMode(strings.ToLower(strings.TrimSpace(value)))
	if len(normalized) == 0 {
		return ColorModeAuto, nil
	}
	for _, supported := range ColorModes() {
		if normalized == supported {
			return supported, nil
		}
	}

	supportedNames := make([]string, 0, len(ColorModes()))
	for _, supported := range ColorModes() {
		supportedNames = append(supportedNames, string(supported))
	}
	return "", fmt.Errorf(unsupportedColorModeTemplateConstant, value, strings.Join(supportedNames, colorModeListSeparatorConstant))
}

// StepRenderer writes headings, git command lines and captured git output.
type StepRenderer struct {
	writer       io.Writer
	commandStyle lipgloss.Style
	outputStyle  lipgloss.Style
}

// NewStepRenderer constructs a renderer bound to writer. Auto mode colors only
// terminals and respects NO_COLOR.
func NewStepRenderer(writer io.Writer, mode ColorMode) *StepRenderer {
	if writer == nil {
		writer = io.Discard
	}

	detectionWriter := unwrapWriter(writer)
	renderer := lipgloss.NewRenderer(detectionWriter)
	renderer.SetColorProfile(resolveColorProfile(detectionWriter, mode, renderer.ColorProfile()))

	return &StepRenderer{
		writer:       writer,
		commandStyle: renderer.NewStyle().Foreground(lipgloss.Color(commandColorConstant)),
		outputStyle:  renderer.NewStyle().Foreground(lipgloss.Color(outputColorConstant)),
	}
}

// WriteLine writes text unstyled followed by a newline.
func (stepRenderer *StepRenderer) WriteLine(text string) error {
	_, writeError := io.WriteString(stepRenderer.writer, text+lineTerminatorConstant)
	return writeError
}

// WriteCommand writes one git command line in the command style.
func (stepRenderer *StepRenderer) WriteCommand(commandLine string) error {
	return stepRenderer.WriteLine(stepRenderer.commandStyle.Render(commandLine))
}

// WriteOutput writes captured git output without trailing blank lines. Empty output writes nothing.
func (stepRenderer *StepRenderer) WriteOutput(output string) error {
	trimmedOutput := strings.TrimRight(output, "\r\n")
	if len(strings.TrimSpace(trimmedOutput)) == 0 {
		return nil
	}
	return stepRenderer.WriteLine(stepRenderer.outputStyle.Render(trimmedOutput))
}

func resolveColorProfile(writer io.Writer, mode ColorMode, detected termenv.Profile) termenv.Profile {
	switch mode {
	case ColorModeAlways:
		if detected == termenv.Ascii {
			return termenv.ANSI
		}
		return detected
	case ColorModeNever:
		return termenv.Ascii
	default:
		if _, noColor := os.LookupEnv(noColorEnvironmentVariableConstant); noColor {
			return termenv.Ascii
		}
		if !isTerminal(writer) {
			return termenv.Ascii
		}
		return detected
	}
}

func unwrapWriter(writer io.Writer) io.Writer {
	for {
		unwrapper, wraps := writer.(interface{ Unwrap() io.Writer })
		if !wraps {
			return writer
		}
		unwrapped := unwrapper.Unwrap()
		if unwrapped == nil {
			return writer
		}
		writer = unwrapped
	}
}

func isTerminal(writer io.Writer) bool {
	file, isFile := writer.(*os.File)
	if !isFile {
		return false
	}
	descriptor := file.Fd()
	return isatty.IsTerminal(descriptor) || isatty.IsCygwinTerminal(descriptor)
}
