package sdk

// Float64Ptr is a convenience helper for optional float64 fields.
func Float64Ptr(v float64) *float64 { return &v }

// BoolPtr is a convenience helper for optional boolean fields.
func BoolPtr(b bool) *bool { return &b }

// Int64Ptr is a convenience helper for optional int64 fields.
func Int64Ptr(v int64) *int64 { return &v }
