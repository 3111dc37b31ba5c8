package misc

import "github.com/BrugadaSyndrome/bslogger"

const (
	Fatal Severity = iota
	Error
	Warning
	Info
	Debug
)

type Severity int

func (s Severity) String() string {
	return []string{
		"Fatal", "Error", "Warning", "Info", "Debug",
	}[s]
}

// CheckError logs err at the given severity and reports whether there was an error at all.
// A Fatal severity exits the process.
func CheckError(err error, logger bslogger.Logger, severity Severity) bool {
	if err == nil {
		return false
	}

	switch severity {
	case Fatal:
		logger.Fatal(err.Error())
	case Error:
		logger.Error(err.Error())
	case Warning:
		logger.Warning(err.Error())
	case Info:
		logger.Info(err.Error())
	case Debug:
		logger.Debug(err.Error())
	default:
		logger.Fatal(err.Error())
	}
	return true
}

// NewLogger creates a named logger. Verbosity 0 only shows errors, 1 adds
// warnings and info, 2 and above adds debug output.
func NewLogger(name string, verbosity int) bslogger.Logger {
	switch {
	case verbosity <= 0:
		return bslogger.NewLogger(name, bslogger.Minimal, nil)
	case verbosity == 1:
		return bslogger.NewLogger(name, bslogger.Normal, nil)
	default:
		return bslogger.NewLogger(name, bslogger.All, nil)
	}
}
