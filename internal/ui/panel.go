package ui

import (
	"fmt"
	"os"
	"strings"
)

// Panel prints lines inside the theme's border.
func Panel(lines []string) {
	fmt.Println(PanelString(strings.Join(lines, "\n")))
}

// PanelString frames inner with the theme's border.
func PanelString(inner string) string {
	return current.Border.Render(inner)
}

func OK(msg string) {
	fmt.Println(current.Success.Render(current.SymOK + " " + msg))
}

func Fail(msg string) {
	fmt.Fprintln(os.Stderr, current.Error.Render(current.SymFail+" "+msg))
}
