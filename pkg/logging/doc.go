// Package logging provides the process-wide structured logger.
//
// The package wraps [log/slog] and keeps a single logger that every other
// package obtains through GetLogger. Level and destination are decided once,
// at startup, by the binary:
//
//	if err := logging.Init(logging.Config{Level: logging.LevelDebug, OutputPath: "primitive-db.log"}); err != nil {
//	    return err
//	}
//	defer logging.Close()
//
// Logs go to stderr by default so they never interleave with command output
// on stdout. If GetLogger is called before Init, a default INFO logger on
// stderr is created lazily.
//
// Helpers return child loggers with common fields already attached:
//
//	log := logging.WithTable("users") // adds table field
//	log := logging.WithOp("insert")   // adds op field
package logging
