package renthub

// Messages shown to the user. Server-provided error text takes precedence
// over MsgServerFmt when the backend includes one.
const (
	MsgNetwork    = "Unable to reach server. Please check if the backend is running."
	MsgServerFmt  = "Server error: %d"
	MsgRequestFmt = "Failed to make request: %s"
	MsgUnexpected = "An unexpected error occurred"
)

type Kind int

const (
	// KindServer: the backend answered with a non-2xx status.
	KindServer Kind = iota + 1
	// KindNetwork: the request went out but no response came back.
	KindNetwork
	// KindRequest: the request could not be built or sent.
	KindRequest
	// KindUnexpected: a 2xx reply whose body could not be read.
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindServer:
		return "server"
	case KindNetwork:
		return "network"
	case KindRequest:
		return "request"
	case KindUnexpected:
		return "unexpected"
	}
	return "unknown"
}

// Error is the single error type returned by Client. Error() is always a
// message fit for display; Kind and Status are for logs and metrics.
type Error struct {
	Kind   Kind
	Status int
	msg    string
	cause  error
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.cause }
