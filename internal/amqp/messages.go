package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// RunRequestMessage asks a worker to execute one analysis pipeline.
type RunRequestMessage struct {
	Pipeline  string    `json:"pipeline"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRunRequestMessage(pipeline string) *RunRequestMessage {
	return &RunRequestMessage{
		Pipeline:  pipeline,
		Timestamp: time.Now(),
	}
}

func (m *RunRequestMessage) Validate() error {
	switch m.Pipeline {
	case "budget", "election":
		return nil
	}
	return fmt.Errorf("unknown pipeline %q", m.Pipeline)
}

func (m *RunRequestMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RunRequestMessageFromJSON(data []byte) (*RunRequestMessage, error) {
	var msg RunRequestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// RunCompletedMessage announces a finished run, so downstream consumers
// can pick up the written report.
type RunCompletedMessage struct {
	Pipeline   string    `json:"pipeline"`
	OutputPath string    `json:"output_path"`
	RowCount   int       `json:"row_count"`
	RunID      int64     `json:"run_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewRunCompletedMessage(pipeline, outputPath string, rowCount int, runID int64) *RunCompletedMessage {
	return &RunCompletedMessage{
		Pipeline:   pipeline,
		OutputPath: outputPath,
		RowCount:   rowCount,
		RunID:      runID,
		Timestamp:  time.Now(),
	}
}

func (m *RunCompletedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RunCompletedMessageFromJSON(data []byte) (*RunCompletedMessage, error) {
	var msg RunCompletedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
