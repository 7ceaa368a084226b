package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sentratech/roi-engine/internal/report"
	"github.com/sentratech/roi-engine/internal/roi"
)

var errReportNotFound = errors.New("report not found")

type reportListItem struct {
	ID             string  `json:"id"`
	CreatedAt      string  `json:"created_at"`
	Title          string  `json:"title"`
	Company        string  `json:"company"`
	Country        string  `json:"country"`
	Mode           string  `json:"mode"`
	MonthlySavings float64 `json:"monthly_savings"`
	ROIPercent     float64 `json:"roi_percent"`
}

// reportDetail is a saved snapshot; it is served as stored, never recalculated.
type reportDetail struct {
	ID        string      `json:"id"`
	CreatedAt string      `json:"created_at"`
	Title     string      `json:"title"`
	Company   string      `json:"company"`
	Email     string      `json:"email"`
	Input     roi.Request `json:"input"`
	Result    roi.Result  `json:"result"`
}

func (d reportDetail) meta() report.Meta {
	return report.Meta{Title: d.Title, Company: d.Company}
}

func (s *server) insertReport(ctx context.Context, req saveRequest, result roi.Result) (string, error) {
	inputJSON, err := json.Marshal(req.Input)
	if err != nil {
		return "", fmt.Errorf("encode report input: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("encode report result: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO roi_reports (
			id, title, company, email, country, mode, monthly_savings, roi_percent, input_json, result_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, req.Title, req.Company, req.Email, result.Country, string(result.Mode),
		result.MonthlySavings, result.ROIPercent, string(inputJSON), string(resultJSON))
	if err != nil {
		return "", fmt.Errorf("insert roi report: %w", err)
	}

	return id, nil
}

func (s *server) getReport(ctx context.Context, id string) (reportDetail, error) {
	var (
		detail     reportDetail
		inputJSON  string
		resultJSON string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, COALESCE(title, ''), COALESCE(company, ''), COALESCE(email, ''), input_json, result_json
		FROM roi_reports
		WHERE id = ?
	`, id).Scan(&detail.ID, &detail.CreatedAt, &detail.Title, &detail.Company, &detail.Email, &inputJSON, &resultJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return reportDetail{}, errReportNotFound
	}
	if err != nil {
		return reportDetail{}, fmt.Errorf("query roi report: %w", err)
	}

	if err := json.Unmarshal([]byte(inputJSON), &detail.Input); err != nil {
		return reportDetail{}, fmt.Errorf("decode report input: %w", err)
	}
	if err := json.Unmarshal([]byte(resultJSON), &detail.Result); err != nil {
		return reportDetail{}, fmt.Errorf("decode report result: %w", err)
	}

	return detail, nil
}

func (s *server) listReports(ctx context.Context, query string) ([]reportListItem, error) {
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, COALESCE(title, ''), COALESCE(company, ''), country, mode, monthly_savings, roi_percent
		FROM roi_reports
		WHERE (? = '' OR COALESCE(title, '') LIKE ? OR COALESCE(company, '') LIKE ?)
		ORDER BY datetime(created_at) DESC, rowid DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query roi reports: %w", err)
	}
	defer rows.Close()

	reports := make([]reportListItem, 0)
	for rows.Next() {
		var item reportListItem
		if err := rows.Scan(&item.ID, &item.CreatedAt, &item.Title, &item.Company, &item.Country, &item.Mode, &item.MonthlySavings, &item.ROIPercent); err != nil {
			return nil, fmt.Errorf("scan roi report: %w", err)
		}
		reports = append(reports, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roi reports: %w", err)
	}

	return reports, nil
}
