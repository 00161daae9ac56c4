package model

import "time"

// Message is one call into the logger, before any rendering.
type Message struct {
	Level     Level
	Title     string
	Body      string    // may carry inline markup
	Boxed     bool      // draw as a bordered box on the console
	Width     int       // box width; ignored for single-line messages
	Timestamp time.Time // zero means render with the current time
}
