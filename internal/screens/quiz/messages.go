package quiz

import "time"

// startedMsg is sent when Start (or Regenerate) has finished, with the
// generation error if the session could not begin.
type startedMsg struct {
	Err error
}

// verdictMsg is sent when a submission has been judged.
type verdictMsg struct {
	Err error
}

// pausedMsg is sent once Pause has taken effect. Pause waits for any
// in-flight verdict, so it runs as a command.
type pausedMsg struct {
	Err error
}

// uiTickMsg drives the once-per-second redraw of the countdown.
type uiTickMsg time.Time
