package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"hvac_monitor/internal/models"
)

// DefaultReadingLimit caps List when the caller passes limit <= 0.
const DefaultReadingLimit = 3600

const (
	readingColumns = `taken_at, voltage, cond_fan_current, evap_fan_current, compressor_current,
		total_current, pressure_200, pressure_300, temp1, temp2, temp3, labjack_temp, air_temp, pressure_switch`

	insertReadingSQL = `INSERT INTO readings (` + readingColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
)

// ReadingSQLite stores one row per sampling tick. taken_at is Unix milliseconds.
type ReadingSQLite struct {
	db *sql.DB
}

func NewReadingSQLite(db *sql.DB) *ReadingSQLite { return &ReadingSQLite{db: db} }

func (r *ReadingSQLite) Save(ctx context.Context, rd models.Reading) error {
	takenAt := rd.TakenAt
	if takenAt.IsZero() {
		takenAt = time.Now()
	}
	s := rd.Snapshot
	_, err := r.db.ExecContext(ctx, insertReadingSQL,
		takenAt.UnixMilli(),
		s.Voltage,
		s.CondFanCurrent,
		s.EvapFanCurrent,
		s.CompressorCurrent,
		s.TotalCurrent,
		s.Pressure200,
		s.Pressure300,
		s.Temp1,
		s.Temp2,
		s.Temp3,
		s.DeviceTemp,
		s.AirTemp,
		string(s.PressureSwitch),
	)
	if err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}
	return nil
}

// List returns readings in [from, to] (zero bounds are open), oldest first,
// keeping at most the newest limit rows.
func (r *ReadingSQLite) List(ctx context.Context, from, to time.Time, limit int) ([]models.Reading, error) {
	if limit <= 0 {
		limit = DefaultReadingLimit
	}
	var (
		conds []string
		args  []any
	)
	if !from.IsZero() {
		conds = append(conds, "taken_at >= ?")
		args = append(args, from.UnixMilli())
	}
	if !to.IsZero() {
		conds = append(conds, "taken_at <= ?")
		args = append(args, to.UnixMilli())
	}

	q := `SELECT ` + readingColumns + ` FROM readings`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY taken_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Reading, 0, 64)
	for rows.Next() {
		var (
			ms  int64
			sw  string
			rd  models.Reading
			snp = &rd.Snapshot
		)
		if err := rows.Scan(&ms,
			&snp.Voltage,
			&snp.CondFanCurrent,
			&snp.EvapFanCurrent,
			&snp.CompressorCurrent,
			&snp.TotalCurrent,
			&snp.Pressure200,
			&snp.Pressure300,
			&snp.Temp1,
			&snp.Temp2,
			&snp.Temp3,
			&snp.DeviceTemp,
			&snp.AirTemp,
			&sw,
		); err != nil {
			return nil, err
		}
		rd.TakenAt = time.UnixMilli(ms)
		snp.PressureSwitch = models.SwitchState(sw)
		out = append(out, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// rows came newest first so LIMIT keeps the latest ones
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
