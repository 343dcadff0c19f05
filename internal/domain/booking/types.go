package booking

type Status string

const (
	StatusPending       Status = "pending"
	StatusAdminApproved Status = "admin_approved"
	StatusOwnerApproved Status = "owner_approved"
	StatusRejected      Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAdminApproved, StatusOwnerApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// BlocksAvailability reports whether a booking in this status still holds its dates.
func (s Status) BlocksAvailability() bool {
	return s.IsValid() && s != StatusRejected
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// ActiveStatuses is the non-terminal set used by availability queries.
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusAdminApproved, StatusOwnerApproved}
}

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusFailed  InvoiceStatus = "failed"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusFailed:
		return true
	default:
		return false
	}
}

func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	status := InvoiceStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidInvoiceStatus
	}
	return status, nil
}

// Subscription states that need someone to chase the tenant.
var delinquentSubscriptionStatuses = map[string]struct{}{
	"past_due": {},
	"unpaid":   {},
	"canceled": {},
}

func IsDelinquentSubscriptionStatus(raw string) bool {
	_, ok := delinquentSubscriptionStatuses[raw]
	return ok
}
