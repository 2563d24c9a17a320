package service

// ErrorKind separates failures of the remote collaborators from failures
// of the caller's input. The HTTP layer flattens both to a 500 with a
// plain message; the kind only drives server-side logging.
type ErrorKind int

const (
	KindRemote ErrorKind = iota + 1
	KindInput
)

func (k ErrorKind) String() string {
	switch k {
	case KindRemote:
		return "remote"
	case KindInput:
		return "input"
	}
	return "unknown"
}

// Error tags an underlying failure with the stage it happened in.
type Error struct {
	Kind  ErrorKind
	Stage string
	Err   error
}

func (e *Error) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// RemoteError wraps a failed call to Drive or Sheets.
func RemoteError(stage string, err error) error {
	return &Error{Kind: KindRemote, Stage: stage, Err: err}
}

// InputError wraps a failure to read the caller's request.
func InputError(stage string, err error) error {
	return &Error{Kind: KindInput, Stage: stage, Err: err}
}
