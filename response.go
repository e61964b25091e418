package bmac

// ResponseKind tells a content reply from a bare acknowledgement.
type ResponseKind int

const (
	// ResponseAck means the module accepted the command and sent no content frame.
	ResponseAck ResponseKind = iota
	// ResponseContent means the reply carried a checksummed content frame.
	ResponseContent
)

// Response is a successfully classified device reply.
type Response struct {
	Kind ResponseKind
	// Status is the module state byte following ACK.
	Status byte
	// Content and Length are empty for ResponseAck.
	Content string
	Length  int
}

// String renders the reply the way the shell prints it.
func (r *Response) String() string {
	if r.Kind == ResponseAck {
		return "OK"
	}
	return r.Content
}
