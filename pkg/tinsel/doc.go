// Package tinsel prints decorated log messages to the terminal and mirrors
// them, stripped of escape codes, into time-bucketed log files.
//
// Quick start:
//
//	l, err := tinsel.New(tinsel.WithLogDir("logs", tinsel.ThreeHour))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer l.Close()
//
//	l.Info("Server", "Starting on port **8080**")
//	l.ErrorBox("Database", "Connection _failed_ after 3 retries")
//
// Message bodies accept inline markup: **bold**, *italic*, _underline_,
// ~strikethrough~ and @dim@. Markers that never close stay literal.
//
// Theme settings are fixed when the Logger is built. A Logger is safe for
// concurrent use.
package tinsel
