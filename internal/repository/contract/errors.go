package contract

import "errors"

var ErrDuplicateRedemption = errors.New("order already redeemed")
