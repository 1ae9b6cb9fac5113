package server

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
)

const bannerRootWidth = 40

const bannerTemplate = `
+================================================================+
|                                                                |
|           %s                                  |
|                                                                |
+================================================================+
|                                                                |
|   ON THIS MACHINE:                                             |
|       %s
|                                                                |
|   FOR YOUR TEAM (local network):                               |
|       %s
|                                                                |
|   Share this URL with anyone on your network                   |
|                                                                |
+----------------------------------------------------------------+
|   Directory: %s
|   Port: %d
|   To stop: press Ctrl+C                                        |
+================================================================+
`

// Banner holds what the startup banner shows.
type Banner struct {
	LocalURL   string
	NetworkURL string
	RootDir    string
	Port       int
}

// Write renders the banner to out.
func (b Banner) Write(out io.Writer) {
	title := color.New(color.FgCyan, color.Bold).Sprint("PORTFOLIO WEB SERVER")
	url := color.New(color.FgGreen)
	fmt.Fprintf(out, bannerTemplate,
		title,
		url.Sprint(b.LocalURL),
		url.Sprint(b.NetworkURL),
		truncateForDisplay(b.RootDir, bannerRootWidth),
		b.Port,
	)
}

// truncateForDisplay keeps the first max runes of s. Display only.
func truncateForDisplay(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

var (
	okColor    = color.New(color.FgGreen, color.Bold)
	errorColor = color.New(color.FgRed, color.Bold)
	tipColor   = color.New(color.FgYellow)
	stopColor  = color.New(color.FgMagenta)
)

func statusLine(out io.Writer, c *color.Color, tag, format string, args ...interface{}) {
	fmt.Fprintf(out, "  %s %s\n", c.Sprintf("[%s]", tag), fmt.Sprintf(format, args...))
}

func writeStarted(out io.Writer, port int, networkURL string) {
	statusLine(out, okColor, "OK", "Server started on port %d", port)
	fmt.Fprintf(out, "  --> Open: %s\n\n", networkURL)
	fmt.Fprintln(out, "  Waiting for connections...")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 50))
}

// ReportError prints the diagnostic for a failed start. A port collision gets
// a specific message and a hint; anything else is printed as is.
func ReportError(out io.Writer, err error) {
	var inUse *PortInUseError
	if !errors.As(err, &inUse) {
		statusLine(out, errorColor, "ERROR", "%v", err)
		return
	}
	fmt.Fprintln(out)
	statusLine(out, errorColor, "ERROR", "Port %d is already in use.", inUse.Port)
	switch {
	case inUse.HeldByInstance && inUse.HolderPID > 0:
		statusLine(out, tipColor, "TIP", "Another portfolio server (pid %d) is serving this port; stop it first.", inUse.HolderPID)
	case inUse.HeldByInstance:
		statusLine(out, tipColor, "TIP", "Another portfolio server is serving this port; stop it first.")
	default:
		statusLine(out, tipColor, "TIP", "Try closing other programs that use it, or change the port.")
	}
}

// ReportStopped prints the clean shutdown line.
func ReportStopped(out io.Writer) {
	fmt.Fprintln(out)
	fmt.Fprintln(out)
	statusLine(out, stopColor, "STOP", "Server stopped")
}
