package domain

import "errors"

var (
	// ErrInsufficientLabelData is returned when the extracted record is too
	// sparse to be meaningfully compared against the declared record
	ErrInsufficientLabelData = errors.New("insufficient label data extracted from image")

	// ErrExtractionFailed is returned when the vision provider call itself fails
	ErrExtractionFailed = errors.New("label extraction failed")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUnknownCategory is returned when a declared category is not a recognized TTB class
	ErrUnknownCategory = errors.New("unknown product category")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
