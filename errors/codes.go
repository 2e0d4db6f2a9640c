package errors

// ErrorCode identifies an error category for clients and logs
type ErrorCode string

const (
	ErrorCode_HTTP_OK          ErrorCode = "OK"
	ErrorCode_INTERNAL         ErrorCode = "INTERNAL"
	ErrorCode_INVALID_ARGUMENT ErrorCode = "INVALID_ARGUMENT"
	ErrorCode_INVALID_PAYLOAD  ErrorCode = "INVALID_PAYLOAD"

	ErrorCode_MEETING_NOT_FOUND       ErrorCode = "MEETING_NOT_FOUND"
	ErrorCode_TASK_NOT_FOUND          ErrorCode = "TASK_NOT_FOUND"
	ErrorCode_TASK_INVALID_STATUS     ErrorCode = "TASK_INVALID_STATUS"
	ErrorCode_SUMMARIZATION_FAILED    ErrorCode = "SUMMARIZATION_FAILED"
	ErrorCode_TRANSCRIPT_FETCH_FAILED ErrorCode = "TRANSCRIPT_FETCH_FAILED"

	ErrorCode_DB_QUERY_FAILED ErrorCode = "DB_QUERY_FAILED"
)

// String returns the code as a string
func (c ErrorCode) String() string {
	return string(c)
}
