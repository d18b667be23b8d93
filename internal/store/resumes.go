package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-review/internal/types"
)

// Key prefixes for the persisted record families.
const (
	resumeKeyPrefix = "resume:"
	modelKeyPrefix  = "resume_model:"
)

// ResumeKey returns the KV key for a resume record.
func ResumeKey(id string) string { return resumeKeyPrefix + id }

// ModelKey returns the KV key for a resume model.
func ModelKey(id string) string { return modelKeyPrefix + id }

// Resumes is the typed record layer over the KV store. Records are always
// written as whole JSON blobs; there are no partial updates.
type Resumes struct {
	kv KV
}

// NewResumes creates the resume record layer on top of a KV store.
func NewResumes(kv KV) *Resumes {
	return &Resumes{kv: kv}
}

// SaveRecord persists a resume record under resume:{id}.
func (r *Resumes) SaveRecord(ctx context.Context, record *types.ResumeRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal resume %s: %w", record.ID, err)
	}
	return r.kv.Set(ctx, ResumeKey(record.ID), string(data))
}

// LoadRecord reads the resume record for id, or ErrNotFound.
func (r *Resumes) LoadRecord(ctx context.Context, id string) (*types.ResumeRecord, error) {
	value, ok, err := r.kv.Get(ctx, ResumeKey(id))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("resume %s: %w", id, ErrNotFound)
	}

	var record types.ResumeRecord
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		return nil, fmt.Errorf("failed to decode resume %s: %w", id, err)
	}
	return &record, nil
}

// ListRecords returns every stored resume record, ordered by id.
func (r *Resumes) ListRecords(ctx context.Context) ([]types.ResumeRecord, error) {
	entries, err := r.kv.List(ctx, resumeKeyPrefix, true)
	if err != nil {
		return nil, err
	}

	records := make([]types.ResumeRecord, 0, len(entries))
	for _, entry := range entries {
		var record types.ResumeRecord
		if err := json.Unmarshal([]byte(entry.Value), &record); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", entry.Key, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// SaveModel persists a resume model under resume_model:{id}. The model is
// keyed by the original resume id so the record and model stay paired.
func (r *Resumes) SaveModel(ctx context.Context, resumeID string, model *types.ResumeModel) error {
	data, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("failed to marshal resume model %s: %w", resumeID, err)
	}
	return r.kv.Set(ctx, ModelKey(resumeID), string(data))
}

// LoadModel reads the resume model paired with resume id, or ErrNotFound.
func (r *Resumes) LoadModel(ctx context.Context, resumeID string) (*types.ResumeModel, error) {
	value, ok, err := r.kv.Get(ctx, ModelKey(resumeID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("resume model %s: %w", resumeID, ErrNotFound)
	}

	var model types.ResumeModel
	if err := json.Unmarshal([]byte(value), &model); err != nil {
		return nil, fmt.Errorf("failed to decode resume model %s: %w", resumeID, err)
	}
	return &model, nil
}

// ResumeIDFromKey extracts the resume id from a resume:{id} key.
func ResumeIDFromKey(key string) string {
	return strings.TrimPrefix(key, resumeKeyPrefix)
}
