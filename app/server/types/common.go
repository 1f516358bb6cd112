package types

// ErrorMessage is the uniform error body: the taxonomy message plus the
// HTTP status it shipped with.
type ErrorMessage struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type Message struct {
	Message string `json:"message"`
}

type Created struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}
