package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/AndrewLester/ntpaltime/internal/ui"
)

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// Offsets the two clients disagree on by more than this are flagged.
const referenceTolerance = 50 * time.Millisecond

type styles struct {
	label func(...string) string
	time  func(...string) string
	warn  func(...string) string
}

var plainStyles = styles{
	label: func(s ...string) string { return fmt.Sprintf("%-12s", strings.Join(s, " ")) },
	time:  func(s ...string) string { return strings.Join(s, " ") },
	warn:  func(s ...string) string { return strings.Join(s, " ") },
}

var uiStyles = styles{label: ui.Label, time: ui.Time, warn: ui.Warn}

func formatResult(result *fetchResult, st styles) string {
	response := result.response

	var b strings.Builder
	fmt.Fprintln(&b, st.label("Server time"), st.time(response.Time.Format(timeLayout)))
	fmt.Fprintln(&b, st.label("Server"), response.Endpoint.String(),
		fmt.Sprintf("(stratum %d, %s)", response.Header.Stratum, response.Header.Mode))
	fmt.Fprintln(&b, st.label("Round trip"), response.RTT.Round(time.Microsecond).String())
	fmt.Fprintln(&b, st.label("Local time"), response.Received.Format(timeLayout))
	fmt.Fprintln(&b, st.label("Offset"), formatOffset(response.ClockOffset))

	if check := result.check; check != nil {
		switch {
		case check.err != nil:
			fmt.Fprintln(&b, st.label("Reference"), st.warn("failed: "+check.err.Error()))
		case check.disagreement(response) > referenceTolerance:
			fmt.Fprintln(&b, st.label("Reference"), st.warn(formatOffset(check.offset)+" (disagrees)"))
		default:
			fmt.Fprintln(&b, st.label("Reference"), formatOffset(check.offset))
		}
	}

	return b.String()
}

func formatOffset(offset time.Duration) string {
	s := offset.Round(time.Microsecond).String()
	if offset >= 0 {
		s = "+" + s
	}
	return s
}

func handlePlainCommand(query fetchQuery) {
	result, err := query.run()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(formatResult(result, plainStyles))
}
