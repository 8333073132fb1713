// Package scorectx hands off score provenance from a listing to the detail
// view it links to, across independent command invocations. Entries live in a
// single JSON file and expire lazily after a fixed time-to-live.
package scorectx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/smarthire/smarthire-cli/internal/match"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// DefaultTTL is the validity window of a stored provenance entry.
const DefaultTTL = 10 * time.Minute

const (
	contextFile = "context.json"
	// flagsFile holds the loose flat flags an older client generation wrote
	// alongside the structured entries. It is read as a weaker fallback only.
	flagsFile = "flags.yaml"

	flagHasProfile = "has-profile"
	flagProfileID  = "profile-id"
	flagSearchType = "search-type"
)

// ErrNotFound reports that no provenance could be recovered through any
// fallback step. It is a cache miss, not a failure.
var ErrNotFound = errors.New("scoring context not found")

// ProfileChecker is the authoritative "do I have a resume on file" re-check,
// the last step of the read fallback chain.
type ProfileChecker interface {
	MyProfile(ctx context.Context) (exists bool, profileID string, err error)
}

type Store struct {
	dir      string
	ttl      time.Duration
	now      func() time.Time
	profiles ProfileChecker
	logger   *zap.Logger
}

func New(dir string, profiles ProfileChecker, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating context dir: %w", err)
	}

	return &Store{
		dir:      dir,
		ttl:      DefaultTTL,
		now:      time.Now,
		profiles: profiles,
		logger:   logger,
	}, nil
}

const jobKeyPrefix = "job/"

// JobKey is the navigation target for a job detail view.
func JobKey(jobID string) string {
	return jobKeyPrefix + jobID
}

// CandidateKey is the navigation target for a candidate detail view.
func CandidateKey(resumeID string) string {
	return "candidate/" + resumeID
}

// Write stores the provenance under the navigation target, stamped with the
// current time. An existing entry for the same key is overwritten.
func (s *Store) Write(key string, p match.Provenance) error {
	entries, err := s.load()
	if err != nil {
		return err
	}

	p.CreatedAt = s.now()
	entries[key] = p

	return s.save(entries)
}

// Read returns the provenance for the navigation target. A stale structured
// entry is deleted on sight. When the structured entry is absent the store
// tries strictly weaker evidence in order: the legacy flat flags, then the
// authoritative profile re-check. A successful re-check re-populates the
// structured entry for subsequent reads.
func (s *Store) Read(ctx context.Context, key string) (*match.Provenance, error) {
	entries, err := s.load()
	if err != nil {
		return nil, err
	}

	if p, ok := entries[key]; ok {
		if s.now().Sub(p.CreatedAt) < s.ttl {
			return &p, nil
		}

		s.logger.Debug("discarding expired scoring context", zap.String("key", key))
		delete(entries, key)
		if err := s.save(entries); err != nil {
			return nil, err
		}
	}

	if p := s.readFlags(); p != nil {
		return p, nil
	}

	return s.recheck(ctx, key)
}

// Clear removes the entry for the navigation target, e.g. when the user
// deletes the resume the score was computed against.
func (s *Store) Clear(key string) error {
	entries, err := s.load()
	if err != nil {
		return err
	}

	if _, ok := entries[key]; !ok {
		return nil
	}

	delete(entries, key)
	return s.save(entries)
}

// RecordProfileFlags keeps the legacy flat flags in step with the resolved
// profile so that older readers of the flags file stay consistent.
func (s *Store) RecordProfileFlags(profileID string, searchType match.SearchType) error {
	v := viper.New()
	v.Set(flagHasProfile, profileID != "")
	v.Set(flagProfileID, profileID)
	v.Set(flagSearchType, string(searchType))

	return v.WriteConfigAs(filepath.Join(s.dir, flagsFile))
}

// readFlags recovers a looser provenance from the flat flags file. The flags
// carry no score and no job half, only the fact a profile exists.
func (s *Store) readFlags() *match.Provenance {
	v := viper.New()
	v.SetConfigFile(filepath.Join(s.dir, flagsFile))
	if err := v.ReadInConfig(); err != nil {
		return nil
	}

	if !v.GetBool(flagHasProfile) {
		return nil
	}

	searchType := match.SearchType(v.GetString(flagSearchType))
	if searchType == "" {
		searchType = match.SearchTypeCVBased
	}

	return &match.Provenance{
		SearchType: searchType,
		ResumeID:   v.GetString(flagProfileID),
		CreatedAt:  s.now(),
	}
}

func (s *Store) recheck(ctx context.Context, key string) (*match.Provenance, error) {
	// "Do I have a resume on file" is only the missing subject half on job
	// pages; for candidate keys the missing half is a job, which no re-check
	// can supply.
	if s.profiles == nil || !strings.HasPrefix(key, jobKeyPrefix) {
		return nil, ErrNotFound
	}

	exists, profileID, err := s.profiles.MyProfile(ctx)
	if err != nil || !exists {
		if err != nil {
			s.logger.Debug("authoritative profile re-check failed", zap.Error(err))
		}
		return nil, ErrNotFound
	}

	p := match.Provenance{
		SearchType: match.SearchTypeCVBased,
		ResumeID:   profileID,
	}
	if err := s.Write(key, p); err != nil {
		return nil, err
	}

	p.CreatedAt = s.now()
	return &p, nil
}

func (s *Store) load() (map[string]match.Provenance, error) {
	path := filepath.Join(s.dir, contextFile)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]match.Provenance{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading scoring context: %w", err)
	}

	entries := map[string]match.Provenance{}
	if len(data) == 0 {
		return entries, nil
	}

	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing scoring context: %w", err)
	}
	return entries, nil
}

func (s *Store) save(entries map[string]match.Provenance) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(s.dir, contextFile), data, 0o644)
}
