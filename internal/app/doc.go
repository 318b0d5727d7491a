// Package app is the composition root of logr.
//
// Run wires the pieces together and blocks until the pager exits:
//
//	Run()
//	  ├─> logging.NewLogger()   --log-file, or discard
//	  ├─> pattern.NewStore()    startup patterns; a bad one is fatal
//	  ├─> selectSource()        command > --file > stdin
//	  ├─> source.Start()        producer goroutine feeding a channel
//	  ├─> dialog / input        pattern dialog and key router
//	  └─> tea.Program.Run()     ui.Model, alt screen, mouse
//
// # Sources
//
// Arguments after "--" run as a command under a pty sized to the terminal.
// Otherwise --file follows a file. Otherwise lines come from stdin, which
// must not be a terminal (ErrNoInput); keys are then read from the
// controlling TTY.
//
// # Errors
//
// Setup failures and terminal errors are returned. Cancelling ctx (SIGINT,
// SIGTERM) ends the session cleanly. The end of input is not an error: the
// pager stays open and shows EOF or the source's error.
package app
