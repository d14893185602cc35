package usecase

import "taskpro-backend/internal/apperror"

var (
	ErrBoardNotFound        = apperror.NotFound("Board not found")
	ErrColumnNotFound       = apperror.NotFound("Column not found")
	ErrCardNotFound         = apperror.NotFound("Card not found")
	ErrTargetColumnNotFound = apperror.NotFound("Target column not found")
	ErrBoardMissing         = apperror.BadRequest("Board associated with this column not found")
	ErrColumnMissing        = apperror.BadRequest("Column associated with this card not found")
	ErrForbidden            = apperror.Forbidden("You are not authorized to perform this action")

	ErrBoardFieldsRequired = apperror.BadRequest("Title, icon and background are required")
	ErrBoardFieldEmpty     = apperror.BadRequest("Title, icon and background cannot be empty")
	ErrBackgroundRequired  = apperror.BadRequest("Image file is required")
	ErrUnsupportedImage    = apperror.BadRequest("Only jpg, jpeg, png and webp images are allowed")
	ErrBackgroundUpload    = apperror.Internal("Failed to upload background")

	ErrColumnTitleRequired = apperror.BadRequest("Column title is required")

	ErrCardTitleRequired       = apperror.BadRequest("Card title is required")
	ErrCardDescriptionRequired = apperror.BadRequest("Card description is required")
	ErrCardTitleEmpty          = apperror.BadRequest("Card title cannot be empty")
	ErrCardDescriptionEmpty    = apperror.BadRequest("Card description cannot be empty")
	ErrInvalidPriority         = apperror.BadRequest("Priority must be one of Low, Medium, High, Without")
	ErrInvalidDeadline         = apperror.BadRequest("Deadline must be a date (YYYY-MM-DD or RFC 3339)")
	ErrPastDeadline            = apperror.BadRequest("Cannot select a past date")
	ErrTargetColumnRequired    = apperror.BadRequest("Target column is required")
)
