package model

import "time"

// Merchant statuses.  Only an APPROVED merchant may accept new
// bookings; PENDING and SUSPENDED merchants keep their inventory
// but reservation attempts against them are rejected.
const (
    MerchantStatusPending   = "PENDING"
    MerchantStatusApproved  = "APPROVED"
    MerchantStatusSuspended = "SUSPENDED"
)

// Merchant represents a venue that publishes tables and weekly
// availability windows.  Each merchant is owned by a single user
// with the MERCHANT role; staff operations are scoped through
// that ownership.
//
// Fields:
//  ID        – primary key identifier.
//  OwnerID   – user who owns and manages this merchant.
//  Name      – human readable venue name.
//  Status    – operability state (PENDING, APPROVED, SUSPENDED).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Merchant struct {
    ID        uint64    // merchants.id
    OwnerID   uint64    // merchants.owner_id
    Name      string    // merchants.name
    Status    string    // merchants.status
    CreatedAt time.Time // merchants.created_at
    UpdatedAt time.Time // merchants.updated_at
}

// Operable reports whether the merchant may accept new bookings.
func (m *Merchant) Operable() bool {
    return m.Status == MerchantStatusApproved
}
