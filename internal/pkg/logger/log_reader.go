package logger

import (
	"bufio"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
)

type LogEntry struct {
	Id        string                 `json:"id"`
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Module    string                 `json:"module,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

type LogQuery struct {
	Level  string
	Module string
	Limit  int
	Offset int
}

// GetLogs scans the active log file and returns matching entries newest first.
// Rotated (gzipped) backups are not read.
func (l *ZapLogger) GetLogs(query LogQuery) ([]LogEntry, error) {
	if l.filePath == "" {
		return []LogEntry{}, nil
	}

	file, err := os.Open(l.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []LogEntry{}, nil
		}
		return nil, err
	}
	defer file.Close()

	var entries []LogEntry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		var entry LogEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		if query.Level != "" && entry.Level != query.Level {
			continue
		}
		if query.Module != "" && entry.Module != query.Module {
			continue
		}
		if entry.Id == "" {
			entry.Id = fmt.Sprintf("%x", md5.Sum(line))
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 50
	}
	if query.Offset >= len(entries) {
		return []LogEntry{}, nil
	}
	end := query.Offset + limit
	if end > len(entries) {
		end = len(entries)
	}
	return entries[query.Offset:end], nil
}
