package apperror

import "errors"

var (
	ErrGameFinished = errors.New("game is already finished")
	ErrColumnFull   = errors.New("column is already full")

	ErrNoMilk             = errors.New("no milk available")
	ErrInvalidMeasurement = errors.New("invalid measurement")

	ErrNotFound     = errors.New("not found")
	ErrInvalidToken = errors.New("invalid pagination token")

	ErrGiftMalformed = errors.New("gift token is malformed")
	ErrGiftTampered  = errors.New("gift signature is invalid")

	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrInvalidManifest  = errors.New("invalid manifest")
	ErrNoMagicKeyword   = errors.New("magic keyword not provided")
	ErrNoOrders         = errors.New("no valid orders")

	ErrInvalidLockfile = errors.New("invalid lockfile")
	ErrBadChecksum     = errors.New("unusable package checksum")
)
