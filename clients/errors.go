package clients

import "fmt"

// SS14APIError is returned when the auth service answers with an unexpected
// status or an undecodable body. The raw status and body are kept for
// operator diagnostics.
type SS14APIError struct {
	StatusCode int
	Body       string
}

func (e *SS14APIError) Error() string {
	return fmt.Sprintf("ss14 api request failed with status %d: %s", e.StatusCode, e.Body)
}
