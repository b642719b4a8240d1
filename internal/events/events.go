// Package events defines the alarm event envelope carried by the Kafka topic.
package events

// AlarmType identifies the kind of alarm. The type is stored, not the
// rendered text, so the template can change without rewriting history.
type AlarmType string

const (
	// AlarmTypeNewComment is raised when someone comments on a user's post.
	AlarmTypeNewComment AlarmType = "NEW_COMMENT_ON_POST"
	// AlarmTypeNewLike is raised when someone likes a user's post.
	AlarmTypeNewLike AlarmType = "NEW_LIKE_ON_POST"
)

// Text returns the human-readable template for the alarm type.
func (t AlarmType) Text() string {
	switch t {
	case AlarmTypeNewComment:
		return "new comment!"
	case AlarmTypeNewLike:
		return "new like!"
	default:
		return ""
	}
}

// Valid reports whether t is a known alarm type.
func (t AlarmType) Valid() bool {
	switch t {
	case AlarmTypeNewComment, AlarmTypeNewLike:
		return true
	}
	return false
}

// AlarmArgs carries the structured arguments of an alarm: who caused it and
// which object it refers to. Stored as JSONB so fields can be added per alarm
// type without schema churn.
type AlarmArgs struct {
	FromUserID int64 `json:"from_user_id"`
	TargetID   int64 `json:"target_id"`
}

// AlarmEvent is the envelope published to the alarm topic. The Kafka message
// is keyed by ReceiverUserID so that alarms for the same recipient stay
// ordered within one partition.
type AlarmEvent struct {
	ReceiverUserID int64     `json:"receiver_user_id"`
	Type           AlarmType `json:"alarm_type"`
	Args           AlarmArgs `json:"args"`
	SchemaVersion  int       `json:"schema_version"`
}

// SchemaVersion is the current envelope schema version.
const SchemaVersion = 1
