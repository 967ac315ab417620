package model

import (
    "strings"
    "time"
)

// Table operational statuses.  An UNAVAILABLE table is kept in the
// registry but never offered by the availability engine.
const (
    TableStatusAvailable   = "AVAILABLE"
    TableStatusUnavailable = "UNAVAILABLE"
)

// MaxTableCapacity is the upper bound on seats a single table may
// declare.  Larger parties are out of scope for a single-table
// reservation.
const MaxTableCapacity = 20

// Table describes a physical seating resource owned by a merchant.
// Tables are matched to a party by capacity; feature tags carry
// descriptive attributes such as "window", "patio" or "booth".
//
// Fields:
//  ID         – primary key identifier.
//  MerchantID – merchant that owns the table.
//  Name       – display name shown to staff and customers.
//  Capacity   – number of seats (1..MaxTableCapacity).
//  Features   – comma separated feature tags as stored in the DB.
//  Status     – operational state (AVAILABLE, UNAVAILABLE).
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Table struct {
    ID         uint64    // venue_tables.id
    MerchantID uint64    // venue_tables.merchant_id
    Name       string    // venue_tables.name
    Capacity   int       // venue_tables.capacity
    Features   string    // venue_tables.features (CSV)
    Status     string    // venue_tables.status
    CreatedAt  time.Time // venue_tables.created_at
    UpdatedAt  time.Time // venue_tables.updated_at
}

// FeatureList splits the stored CSV feature column into a slice of
// trimmed tags.  An empty column yields an empty slice, never nil,
// so JSON responses render [] instead of null.
func (t *Table) FeatureList() []string {
    out := []string{}
    for _, f := range strings.Split(t.Features, ",") {
        if f = strings.TrimSpace(f); f != "" {
            out = append(out, f)
        }
    }
    return out
}

// JoinFeatures normalizes a tag slice back into the CSV form used
// by the venue_tables.features column.
func JoinFeatures(tags []string) string {
    clean := make([]string, 0, len(tags))
    for _, f := range tags {
        if f = strings.TrimSpace(f); f != "" {
            clean = append(clean, f)
        }
    }
    return strings.Join(clean, ",")
}
