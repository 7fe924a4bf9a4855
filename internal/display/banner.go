package display

import (
	"fmt"
	"os"

	"github.com/convtools/mconv/internal/term"
)

// PrintBanner prints the ASCII art banner; styled when colors are enabled.
func PrintBanner() {
	banner := ` _ __ ___   ___ ___  _ ____   __
| '_ ` + "`" + ` _ \ / __/ _ \| '_ \ \ / /
| | | | | | (_| (_) | | | \ V /
|_| |_| |_|\___\___/|_| |_|\_/
`
	if term.Enabled() {
		term.Header.Fprint(os.Stdout, banner)
	} else {
		fmt.Fprint(os.Stdout, banner)
	}
	fmt.Fprintln(os.Stdout)
}
