package fee

import "errors"

var ErrInvertedBounds = errors.New("max amount must not be below min amount")
