package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/junthetechguy/sns-demo/internal/events"
)

// Alarm represents an alarm record in the database. Args is the structured
// payload describing who triggered the alarm and on which object.
type Alarm struct {
	ID           int64            `json:"id"`
	UserID       int64            `json:"user_id"`
	Type         events.AlarmType `json:"alarm_type"`
	Text         string           `json:"text"`
	Args         events.AlarmArgs `json:"args"`
	RegisteredAt time.Time        `json:"registered_at"`
	UpdatedAt    *time.Time       `json:"updated_at,omitempty"`
}

// AlarmListResult holds a page of alarms plus the total count.
type AlarmListResult struct {
	Alarms []*Alarm `json:"alarms"`
	Total  int      `json:"total"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}

// CreateAlarm inserts a new alarm record for userID. Called by the event
// processor; a redelivered envelope inserts a second row, which is accepted.
func (db *DB) CreateAlarm(ctx context.Context, userID int64, alarmType events.AlarmType, args events.AlarmArgs) (*Alarm, error) {
	argsJSON, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal alarm args: %w", err)
	}

	query := `
		INSERT INTO alarms (user_id, alarm_type, args)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, alarm_type, args, registered_at, updated_at
	`
	row := db.conn.QueryRowContext(ctx, query, userID, string(alarmType), argsJSON)
	alarm, err := scanAlarm(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create alarm: %w", err)
	}
	return alarm, nil
}

// ListAlarmsByUser retrieves a page of active alarms for a user, newest first.
func (db *DB) ListAlarmsByUser(ctx context.Context, userID int64, limit, offset int) (*AlarmListResult, error) {
	query := `
		SELECT id, user_id, alarm_type, args, registered_at, updated_at
		FROM alarms
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY registered_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := db.conn.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list alarms: %w", err)
	}
	defer rows.Close()

	alarms := make([]*Alarm, 0)
	for rows.Next() {
		alarm, err := scanAlarmRows(rows)
		if err != nil {
			return nil, err
		}
		alarms = append(alarms, alarm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alarms: %w", err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM alarms WHERE user_id = $1 AND deleted_at IS NULL`
	if err := db.conn.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count alarms: %w", err)
	}

	return &AlarmListResult{Alarms: alarms, Total: total, Limit: limit, Offset: offset}, nil
}

func scanAlarm(row *sql.Row) (*Alarm, error) {
	var alarm Alarm
	var typ string
	var argsJSON []byte
	var updatedAt sql.NullTime
	err := row.Scan(&alarm.ID, &alarm.UserID, &typ, &argsJSON, &alarm.RegisteredAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	fillAlarm(&alarm, typ, argsJSON, updatedAt)
	return &alarm, nil
}

func scanAlarmRows(rows *sql.Rows) (*Alarm, error) {
	var alarm Alarm
	var typ string
	var argsJSON []byte
	var updatedAt sql.NullTime
	if err := rows.Scan(&alarm.ID, &alarm.UserID, &typ, &argsJSON, &alarm.RegisteredAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan alarm: %w", err)
	}
	fillAlarm(&alarm, typ, argsJSON, updatedAt)
	return &alarm, nil
}

func fillAlarm(alarm *Alarm, typ string, argsJSON []byte, updatedAt sql.NullTime) {
	alarm.Type = events.AlarmType(typ)
	alarm.Text = alarm.Type.Text()
	if len(argsJSON) > 0 {
		if err := json.Unmarshal(argsJSON, &alarm.Args); err != nil {
			slog.Warn("Failed to unmarshal alarm args", "alarm_id", alarm.ID, "error", err)
		}
	}
	if updatedAt.Valid {
		alarm.UpdatedAt = &updatedAt.Time
	}
}
