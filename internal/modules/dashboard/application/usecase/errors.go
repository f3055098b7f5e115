package usecase

import "errors"

var (
	ErrViewNotMounted  = errors.New("view is not mounted")
	ErrRecordNotFound  = errors.New("record not found")
	ErrNothingSelected = errors.New("no records selected")
	ErrNoPendingDelete = errors.New("no delete awaiting confirmation")
	ErrMissingSession  = errors.New("missing session")
)
