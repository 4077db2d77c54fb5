package diag

// Markers wrapped around culprits and messages. They are ANSI sequences by
// default and are switched off by UseColor(false), which the CLI does when
// the output is not a terminal.
var (
	culpritStart = "\033[1;4m"
	culpritEnd   = "\033[m"
	messageStart = "\033[31;1m"
	messageEnd   = "\033[m"
)

const culpritPlaceHolder = "^"

// UseColor turns ANSI styling of culprits and messages on or off.
func UseColor(on bool) {
	if on {
		culpritStart, culpritEnd = "\033[1;4m", "\033[m"
		messageStart, messageEnd = "\033[31;1m", "\033[m"
	} else {
		culpritStart, culpritEnd = "", ""
		messageStart, messageEnd = "", ""
	}
}

// Message wraps msg in the message markers.
func Message(msg string) string {
	return messageStart + msg + messageEnd
}
