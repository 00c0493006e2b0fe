package shared

// Codes shared by every context. Contexts add their own, such as
// INVALID_PRICE_RANGE, and the HTTP layer maps the rest by suffix.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeInvalidState  = "INVALID_STATE"
	CodeInUse         = "IN_USE"
)

// DomainError is a rule violation with a stable code and a message fit for
// the dashboard
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string { return e.Message }

// Is matches any DomainError with the same code, so callers can compare
// against the sentinels below even when the message differs
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && e.Code == t.Code
}

// NewDomainError creates a DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

var (
	ErrNotFound      = NewDomainError(CodeNotFound, "Data tidak ditemukan")
	ErrAlreadyExists = NewDomainError(CodeAlreadyExists, "Data sudah ada")
	ErrInvalidInput  = NewDomainError(CodeInvalidInput, "Input tidak valid")
	ErrUnauthorized  = NewDomainError(CodeUnauthorized, "Silakan login terlebih dahulu")
	ErrForbidden     = NewDomainError(CodeForbidden, "Anda tidak memiliki akses ke sumber daya ini")
	ErrInvalidState  = NewDomainError(CodeInvalidState, "Operasi tidak diizinkan pada status saat ini")
	ErrInUse         = NewDomainError(CodeInUse, "Data masih digunakan oleh data lain")
)
