package interview

import (
	"time"

	"github.com/talentgate/portal/pkg/kernel"
)

// RescheduleInterviewRequest - DTO for moving an interview
type RescheduleInterviewRequest struct {
	ScheduleDatetime time.Time          `json:"schedule_datetime" validate:"required"`
	Description      string             `json:"description,omitempty"`
	LocationID       *kernel.LocationID `json:"location_id,omitempty"`
}

// RespondRequest - DTO for the candidate's response to the invitation
type RespondRequest struct {
	ResponseText kernel.ResponseText `json:"response_text" validate:"required"`
}

// CompleteInterviewRequest - DTO for recording the interview outcome
type CompleteInterviewRequest struct {
	Outcome InterviewStatus `json:"outcome" validate:"required"`
}

// Response type alias for paginated interviews
type PaginatedInterviewsResponse = kernel.Paginated[Interview]
