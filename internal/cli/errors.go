package cli

import "errors"

var errMissingName = errors.New("first name and last name are required")
