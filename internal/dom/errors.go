package dom

import "errors"

// ErrSelectorSyntax is wrapped by trees when a selector cannot be parsed.
var ErrSelectorSyntax = errors.New("invalid selector syntax")
