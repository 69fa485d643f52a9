package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/Crimsonfv/ChatIA-Frond/internal/model"
)

// LoadExcludedTerms refreshes the user's exclusion list from the backend.
// The controller keeps the list so Send can mask without a network round
// trip.
func (c *Controller) LoadExcludedTerms(ctx context.Context) error {
	terms, err := c.gw.ListExcludedTerms(ctx)
	if err != nil {
		c.logger.Error("failed to load excluded terms", zap.Error(err))
		return err
	}

	c.mu.Lock()
	c.terms = terms
	c.mu.Unlock()
	c.notify()
	return nil
}

// ExcludedTerms returns a copy of the cached exclusion list.
func (c *Controller) ExcludedTerms() []model.ExcludedTerm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.ExcludedTerm(nil), c.terms...)
}

// AddExcludedTerm validates and normalizes a candidate term, rejects
// duplicates in any casing (active or not), then creates it through the
// gateway.
func (c *Controller) AddExcludedTerm(ctx context.Context, candidate string) (*model.ExcludedTerm, error) {
	if issues := c.filter.Validate(candidate); len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	c.mu.Lock()
	exists := c.filter.AlreadyExists(candidate, c.terms)
	c.mu.Unlock()
	if exists {
		return nil, ErrTermExists
	}

	created, err := c.gw.CreateExcludedTerm(ctx, c.filter.Normalize(candidate))
	if err != nil {
		c.logger.Error("failed to create excluded term", zap.Error(err))
		return nil, err
	}

	c.mu.Lock()
	c.terms = append(c.terms, *created)
	c.mu.Unlock()

	c.logger.Info("excluded term added", zap.Int64("term_id", created.ID))
	c.notify()
	return created, nil
}

// RemoveExcludedTerm deletes a term from the exclusion list.
func (c *Controller) RemoveExcludedTerm(ctx context.Context, id int64) error {
	if err := c.gw.DeleteExcludedTerm(ctx, id); err != nil {
		c.logger.Error("failed to delete excluded term",
			zap.Int64("term_id", id),
			zap.Error(err),
		)
		return err
	}

	c.mu.Lock()
	kept := c.terms[:0]
	for _, t := range c.terms {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	c.terms = kept
	c.mu.Unlock()

	c.notify()
	return nil
}
