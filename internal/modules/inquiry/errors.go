package inquiry

import "errors"

var (
	ErrInvalidTimeRange        = errors.New("end time must be after start time")
	ErrInquiryNotFound         = errors.New("inquiry not found")
	ErrStudioNotFound          = errors.New("studio not found")
	ErrForbidden               = errors.New("only the studio owner can update this inquiry")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrSlotTaken               = errors.New("the requested time slot is already taken")
)
