// Package acl is the anti-corruption layer between the remote quote source
// and the domain. Remote DTOs stay unexported here; callers only ever see
// domain.Quote values and domain errors.
//
// Status mapping:
//
//	404            domain.ErrNotFound
//	409            domain.ErrConflict
//	400, 422, 4xx  domain.ErrValidation
//	401, 403       domain.ErrForbidden
//	429, 5xx       domain.ErrUnavailable
//
// Client-level failures (open circuit, exhausted retries, transport errors)
// become domain.ErrUnavailable as well.
package acl
