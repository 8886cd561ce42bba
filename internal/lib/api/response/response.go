package response

type Response struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

const (
	StatusOK    = "OK"
	StatusError = "Error"
)

func OK() Response {
	return Response{Status: StatusOK}
}

func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Detail: msg,
	}
}
