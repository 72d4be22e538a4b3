package color

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
)

// ANSI palette indices
const (
	Cyan      = "6"
	Gray      = "8"
	BrightRed = "9"
)

var profile = termenv.EnvColorProfile()

func init() {
	if os.Getenv("NO_COLOR") != "" {
		profile = termenv.Ascii
	}
}

// EnableColor switches styling on (ANSI) or off (plain text)
func EnableColor(enable bool) {
	if enable {
		profile = termenv.ANSI
		return
	}
	profile = termenv.Ascii
}

func IsColorEnabled() bool {
	return profile != termenv.Ascii
}

func Colorize(color, text string) string {
	return profile.String(text).Foreground(profile.Color(color)).String()
}

func BrightRedText(text string) string {
	return Colorize(BrightRed, text)
}

func CyanText(text string) string {
	return Colorize(Cyan, text)
}

func GrayText(text string) string {
	return Colorize(Gray, text)
}

func BoldText(text string) string {
	return profile.String(text).Bold().String()
}

func Error(message string) string {
	return BrightRedText("Error: ") + message
}

// ErrorAtLine formats a failure tied to a program line
func ErrorAtLine(line int, source string, message string) string {
	return fmt.Sprintf("%s at %s: %s\n    %s",
		BrightRedText(BoldText("Error")),
		CyanText(fmt.Sprintf("line %d", line)),
		message,
		GrayText(source))
}
