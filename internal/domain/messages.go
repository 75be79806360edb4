package domain

// Client-facing messages. These strings are part of the public response contract.
const (
	MsgMissingFields      = "Missing required fields"
	MsgInvalidSubmittedAt = "Invalid submittedAt date"
	MsgInvalidPayload     = "Invalid JSON payload"
	MsgPayloadTooLarge    = "Payload too large"
	MsgRelayFailed        = "Failed to send data to HubSpot"
	MsgRelaySucceeded     = "Data sent to HubSpot"
)
