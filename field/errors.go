package field

import "errors"

// ErrParse indicates a failed string-to-field-element conversion.
var ErrParse = errors.New("field: parse error")

// ErrPrecondition indicates a precondition violation: division or
// remainder by zero, or inversion of zero.
var ErrPrecondition = errors.New("field: precondition violated")

// ErrSqrtUnsupported indicates that Sqrt was called on a field whose
// prime does not satisfy p ≡ 3 (mod 4), for which no cheap square root
// algorithm is assumed.
var ErrSqrtUnsupported = errors.New("field: square root unsupported for this modulus")
