// Package errors defines the dispatcher's error domain.
//
// Every failure produced by the dispatcher itself (as opposed to the
// network layer) is an *AppError carrying the shared Domain, the negative
// DomainCode, a Kind and a MessageKey. Transport failures are never wrapped
// in an AppError; they reach callers exactly as net/http returned them and
// are classified only through the outcome's kind.
package errors
