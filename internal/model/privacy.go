package model

import "time"

// PrivacySettings holds a user's six privacy toggles. Exactly one row exists
// per user; the row is created lazily on first read (see PrivacyService).
//
// The struct zero value has every toggle false. The service applies its own
// defaults when auto-creating a row — those take precedence over the zero
// values, so don't rely on this struct for the creation-time defaults.
type PrivacySettings struct {
	UserID                 string    `json:"user_id"                 db:"user_id"`
	RealTimeMonitoring     bool      `json:"real_time_monitoring"    db:"real_time_monitoring"`
	DataRetention          bool      `json:"data_retention"          db:"data_retention"`
	DetailedReporting      bool      `json:"detailed_reporting"      db:"detailed_reporting"`
	InternalCommunications bool      `json:"internal_communications" db:"internal_communications"`
	Notifications          bool      `json:"notifications"           db:"notifications"`
	RealTimeAlerts         bool      `json:"real_time_alerts"        db:"real_time_alerts"`
	CreatedAt              time.Time `json:"created_at"              db:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"              db:"updated_at"`
}

// PrivacyToggles is a partial update: only the toggles present in the request
// are changed. A nil field means "leave as is".
type PrivacyToggles struct {
	RealTimeMonitoring     *bool `json:"real_time_monitoring"`
	DataRetention          *bool `json:"data_retention"`
	DetailedReporting      *bool `json:"detailed_reporting"`
	InternalCommunications *bool `json:"internal_communications"`
	Notifications          *bool `json:"notifications"`
	RealTimeAlerts         *bool `json:"real_time_alerts"`
}

// Apply copies the set toggles onto s.
func (t PrivacyToggles) Apply(s *PrivacySettings) {
	if t.RealTimeMonitoring != nil {
		s.RealTimeMonitoring = *t.RealTimeMonitoring
	}
	if t.DataRetention != nil {
		s.DataRetention = *t.DataRetention
	}
	if t.DetailedReporting != nil {
		s.DetailedReporting = *t.DetailedReporting
	}
	if t.InternalCommunications != nil {
		s.InternalCommunications = *t.InternalCommunications
	}
	if t.Notifications != nil {
		s.Notifications = *t.Notifications
	}
	if t.RealTimeAlerts != nil {
		s.RealTimeAlerts = *t.RealTimeAlerts
	}
}
