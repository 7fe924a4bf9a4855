// mconv is an interactive batch media converter. It scans a directory for
// media files, walks the user through input format, output format, and file
// selection, then delegates the conversions to the external ffmpeg binary.
package main

import (
	"os"

	"github.com/convtools/mconv/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
