package notify

// DispatchRequest is the payload sent to the external delivery gateway.
type DispatchRequest struct {
	Destination string `json:"destination"`
	Channel     string `json:"channel"`
	Message     string `json:"message"`
}

// DispatchResponse is the gateway's acknowledgement.
type DispatchResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
