package httperr

// Response is the envelope the error middleware renders for errors pushed
// onto the gin error stack and for recovered panics. Handlers that respond
// inline are not required to use it.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}
