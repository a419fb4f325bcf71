package repository

import (
	"fmt"
	"time"

	"talent-track/core/models"
)

// CandidateRepository handles persistence for pipeline candidates
type CandidateRepository struct {
	store *Store
}

// NewCandidateRepository creates a new candidate repository
func NewCandidateRepository(store *Store) *CandidateRepository {
	return &CandidateRepository{store: store}
}

// List returns every candidate
func (r *CandidateRepository) List() ([]models.Candidate, error) {
	var candidates []models.Candidate
	if err := r.store.Read(CandidatesFile, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

// Save rewrites the whole candidate collection
func (r *CandidateRepository) Save(candidates []models.Candidate) error {
	return r.store.Write(CandidatesFile, candidates)
}

// Get retrieves a candidate by id
func (r *CandidateRepository) Get(id int) (*models.Candidate, error) {
	candidates, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		if candidates[i].ID == id {
			return &candidates[i], nil
		}
	}
	return nil, fmt.Errorf("candidate %d not found", id)
}

// NextID returns the next monotonic candidate id for the given collection
func NextID(candidates []models.Candidate) int {
	max := 0
	for _, c := range candidates {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}

// Create assigns the next id, stamps the applied date and persists
func (r *CandidateRepository) Create(candidate *models.Candidate) error {
	unlock := r.store.Lock(CandidatesFile)
	defer unlock()

	candidates, err := r.List()
	if err != nil {
		return err
	}

	candidate.ID = NextID(candidates)
	if candidate.Status == "" {
		candidate.Status = models.CandidateStatusNew
	}
	if candidate.AppliedDate == "" {
		candidate.AppliedDate = time.Now().Format(models.DateLayout)
	}

	candidates = append(candidates, *candidate)
	return r.Save(candidates)
}

// Update replaces the stored candidate with the same id and persists the
// collection. Missing id resolves to an error, never an insert.
func (r *CandidateRepository) Update(candidate models.Candidate) error {
	unlock := r.store.Lock(CandidatesFile)
	defer unlock()

	candidates, err := r.List()
	if err != nil {
		return err
	}
	for i := range candidates {
		if candidates[i].ID == candidate.ID {
			candidates[i] = candidate
			return r.Save(candidates)
		}
	}
	return fmt.Errorf("candidate %d not found", candidate.ID)
}
