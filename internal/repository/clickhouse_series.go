package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"DormBack/internal/domain/models"
	"DormBack/internal/domain/repository"
)

// SchemaStatements are the idempotent DDL statements for fixture storage.
var SchemaStatements = []string{
	`CREATE DATABASE IF NOT EXISTS dormback`,
	`CREATE TABLE IF NOT EXISTS dormback.fixture_points (
		run_id      String,
		d           Date,
		price       Float64,
		volume      Float64,
		volatility  Float64,
		inserted_at DateTime DEFAULT now()
	) ENGINE = MergeTree()
	ORDER BY (run_id, d)`,
}

// ClickHouseSeriesStore implements Storage for ClickHouse.
type ClickHouseSeriesStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseSeriesStore creates ClickHouse-backed fixture storage.
func NewClickHouseSeriesStore(db *sql.DB, table string) repository.Storage {
	if table == "" {
		table = "dormback.fixture_points"
	}
	return &ClickHouseSeriesStore{db: db, table: table}
}

func (s *ClickHouseSeriesStore) Init(ctx context.Context) error {
	for _, stmt := range SchemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func (s *ClickHouseSeriesStore) Store(ctx context.Context, runID string, p *models.MarketPoint) error {
	q := fmt.Sprintf("INSERT INTO %s (run_id, d, price, volume, volatility) VALUES (?, ?, ?, ?, ?)", s.table)
	_, err := s.db.ExecContext(ctx, q, runID, p.Date, p.Price, p.Volume, p.Volatility)
	return err
}

func (s *ClickHouseSeriesStore) StoreBatch(ctx context.Context, runID string, points []models.MarketPoint) error {
	if len(points) == 0 {
		return nil
	}
	// Multi-row VALUES insert keeps round-trips down; a year-long series
	// fits in a single chunk.
	const chunkSize = 2000
	for start := 0; start < len(points); start += chunkSize {
		end := start + chunkSize
		if end > len(points) {
			end = len(points)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*5)
		for _, p := range points[start:end] {
			values = append(values, "(?, ?, ?, ?, ?)")
			args = append(args, runID, p.Date, p.Price, p.Volume, p.Volatility)
		}
		q := fmt.Sprintf("INSERT INTO %s (run_id, d, price, volume, volatility) VALUES %s", s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

func (s *ClickHouseSeriesStore) Query(ctx context.Context, runID string, from, to time.Time, limit int) ([]models.MarketPoint, error) {
	q := fmt.Sprintf("SELECT d, price, volume, volatility FROM %s WHERE run_id = ? AND d >= ? AND d <= ? ORDER BY d LIMIT ?", s.table)
	rows, err := s.db.QueryContext(ctx, q, runID, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []models.MarketPoint
	for rows.Next() {
		var p models.MarketPoint
		if err := rows.Scan(&p.Date, &p.Price, &p.Volume, &p.Volatility); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (s *ClickHouseSeriesStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseSeriesStore) Close() error {
	return nil // connection owned by pkg client
}
