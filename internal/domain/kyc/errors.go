package kyc

import "errors"

var (
	ErrInvalidDocumentType = errors.New("invalid document type")
	ErrMissingApplicant    = errors.New("applicant user id is required")
	ErrMissingReviewer     = errors.New("reviewer user id is required")
	ErrAlreadyReviewed     = errors.New("request already reviewed")
)
