package core

// Error codes
const (
	ErrGameNotFound      = "GAME_NOT_FOUND"
	ErrOutOfBounds       = "OUT_OF_BOUNDS"
	ErrGameAlreadyWon    = "GAME_ALREADY_WON"
	ErrCellOccupied      = "CELL_OCCUPIED"
	ErrRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrInvalidContent    = "INVALID_CONTENT_TYPE"
	ErrInvalidRequest    = "INVALID_REQUEST"
	ErrInternalError     = "INTERNAL_ERROR"
	ErrResourceLimit     = "RESOURCE_LIMIT"
)
