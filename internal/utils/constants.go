package utils

// Application Constants
const (
	AppName    = "GoPet"
	AppVersion = "1.0.0"

	// Response status
	StatusSuccess = "success"
	StatusError   = "error"

	// Header names
	HeaderRequestID = "X-Request-ID"

	// Gin context keys
	ContextKeyRequestID = "request_id"

	// Uploads
	UploadFormField = "file"
)

// Error codes
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeBadRequest        = "BAD_REQUEST"
	CodeInternal          = "INTERNAL_ERROR"
	CodePayloadTooLarge   = "PAYLOAD_TOO_LARGE"
	CodeUnavailable       = "SERVICE_UNAVAILABLE"
)

// Error messages
const (
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "Internal server error"
	ErrInvalidJSON      = "Invalid JSON payload"
	ErrMissingFile      = "A file must be sent in the \"file\" field"
	ErrFileTooLarge     = "Uploaded file exceeds the size limit"
	ErrFileNotFound     = "File not found"
)

// Success messages
const (
	MsgDashboardRetrieved = "Dashboard retrieved successfully"
	MsgPetsRetrieved      = "Pets retrieved successfully"
	MsgDriverCreated      = "Driver application received"
	MsgDriverRetrieved    = "Driver retrieved successfully"
	MsgDriversRetrieved   = "Drivers retrieved successfully"
	MsgDriverUpdated      = "Driver updated successfully"
	MsgRideCreated        = "Ride requested successfully"
	MsgRideRetrieved      = "Ride retrieved successfully"
	MsgRidesRetrieved     = "Rides retrieved successfully"
	MsgRideUpdated        = "Ride status updated"
	MsgSimulationStarted  = "Ride lifecycle simulation started"
	MsgMessageCreated     = "Message sent"
	MsgMessagesRetrieved  = "Messages retrieved successfully"
	MsgIncidentCreated    = "Incident reported"
	MsgIncidentsRetrieved = "Incidents retrieved successfully"
	MsgIncidentUpdated    = "Incident updated"
	MsgTicketsRetrieved   = "Tickets retrieved successfully"
	MsgTicketUpdated      = "Ticket updated"
	MsgFileUploaded       = "File uploaded successfully"
	MsgFileDeleted        = "File deleted"
	MsgHealthy            = "Service is healthy"
)
