package extractions

import "errors"

var (
	// ErrNotFound means the extraction does not exist for this user.
	ErrNotFound = errors.New("extraction not found")
	// ErrEmptyText means the input text is too short to be a resume.
	ErrEmptyText = errors.New("resume text is empty or too short")
	// ErrDecodeFailure means the AI output was not decodable JSON.
	ErrDecodeFailure = errors.New("AI output is not valid JSON")
	// ErrSchemaFailure means the reconciled record failed validation.
	ErrSchemaFailure = errors.New("reconciled record failed validation")
)
