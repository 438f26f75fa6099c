package constant

const (
	// UserFallbackCorpus stands in for a user with no usable messages when the fallback is enabled.
	UserFallbackCorpus = "I'm working on a Python project for data analysis"

	// MinUserMessageLength drops short chatter ("ok", "lol") from the user corpus.
	MinUserMessageLength = 5

	KeywordLimit = 10

	NoGroupsMessage = "No groups found in the database"

	ErrMsgStoreUnavailable   = "Database connection unavailable"
	ErrMsgCatalogUnavailable = "Course data unavailable"
)

const (
	TopicMessageStored = "message.stored"
)

const (
	SocketEventJoin    = "join"
	SocketEventMessage = "message"
	SocketEventError   = "error"

	SocketErrInvalidMessage = "Invalid message data"
	SocketErrStoreFailed    = "Failed to store message"
	SocketErrInvalidJoin    = "Invalid join data"
	SocketErrInvalidFrame   = "Invalid frame"
	SocketErrUnknownEvent   = "Unknown event"
)
