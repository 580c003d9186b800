package errors

// ErrorCategory classifies an error for exit codes and presentation.
type ErrorCategory string

const (
	CategoryConfig     ErrorCategory = "config"     // invalid configuration file or flags
	CategoryValidation ErrorCategory = "validation" // a strict check failed
	CategoryNotFound   ErrorCategory = "not_found"  // missing source file or directory
	CategoryFileSystem ErrorCategory = "filesystem" // reading input or writing output
	CategoryDocs       ErrorCategory = "docs"       // unusable source document
	CategoryRuntime    ErrorCategory = "runtime"    // watcher and signal handling
	CategoryInternal   ErrorCategory = "internal"
)

// exitCodes maps categories to process exit codes. Unlisted categories and
// unclassified errors exit with 1.
var exitCodes = map[ErrorCategory]int{
	CategoryValidation: 2,
	CategoryNotFound:   3,
	CategoryDocs:       4,
	CategoryConfig:     7,
	CategoryInternal:   10,
	CategoryFileSystem: 11,
	CategoryRuntime:    12,
}

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"
	SeverityError   ErrorSeverity = "error"
	SeverityWarning ErrorSeverity = "warning"
	SeverityInfo    ErrorSeverity = "info"
)

// ErrorContext carries structured details such as the offending path.
type ErrorContext map[string]any

// Get retrieves a context value.
func (c ErrorContext) Get(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}

// GetString retrieves a string context value.
func (c ErrorContext) GetString(key string) (string, bool) {
	s, ok := c[key].(string)
	return s, ok
}
