package history

import (
	"database/sql"
	"encoding/json"
	"time"
)

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		id            string
		kind          string
		manifestPath  string
		projectID     sql.NullString
		cutName       sql.NullString
		lang          sql.NullString
		format        sql.NullString
		audioID       sql.NullString
		audioSelector sql.NullString
		segmentCount  sql.NullInt64
		outputsJSON   sql.NullString
		status        string
		errorMessage  sql.NullString
		createdRaw    string
	)
	if err := scanner.Scan(
		&id,
		&kind,
		&manifestPath,
		&projectID,
		&cutName,
		&lang,
		&format,
		&audioID,
		&audioSelector,
		&segmentCount,
		&outputsJSON,
		&status,
		&errorMessage,
		&createdRaw,
	); err != nil {
		return nil, err
	}

	run := &Run{
		ID:            id,
		Kind:          Kind(kind),
		ManifestPath:  manifestPath,
		ProjectID:     projectID.String,
		CutName:       cutName.String,
		Lang:          lang.String,
		Format:        format.String,
		AudioID:       audioID.String,
		AudioSelector: audioSelector.String,
		SegmentCount:  int(segmentCount.Int64),
		Status:        Status(status),
		ErrorMessage:  errorMessage.String,
	}
	if outputsJSON.Valid && outputsJSON.String != "" {
		_ = json.Unmarshal([]byte(outputsJSON.String), &run.Outputs)
	}
	if ts, err := time.Parse(timestampLayout, createdRaw); err == nil {
		run.CreatedAt = ts
	}
	return run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
