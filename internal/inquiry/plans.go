package inquiry

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/evcraddock/wander/internal/wizard"
)

// PlanRepository records confirmed itineraries.
type PlanRepository struct {
	db *sqlx.DB
}

// NewPlanRepository creates a plan repository.
func NewPlanRepository(db *sqlx.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// Record stores a confirmed itinerary for a session.
func (r *PlanRepository) Record(ctx context.Context, sessionID string, it wizard.Itinerary) (*Plan, error) {
	if it.Destination == "" || it.DurationLabel == "" || it.TravellerType == "" {
		return nil, fmt.Errorf("itinerary is incomplete")
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO plans (session_id, destination, duration_label, traveller_type, adults, children, rooms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sessionID, it.Destination, it.DurationLabel, string(it.TravellerType),
		it.RoomConfig.Adults, it.RoomConfig.Children, it.RoomConfig.Rooms,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting plan: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	var p Plan
	if err := r.db.GetContext(ctx, &p, "SELECT * FROM plans WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("reading back plan: %w", err)
	}
	return &p, nil
}

// List returns plans newest first. limit <= 0 returns all.
func (r *PlanRepository) List(ctx context.Context, limit int) ([]*Plan, error) {
	query := "SELECT * FROM plans ORDER BY id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var plans []*Plan
	if err := r.db.SelectContext(ctx, &plans, query, args...); err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	return plans, nil
}

// ListBySession returns the plans a session confirmed, oldest first.
func (r *PlanRepository) ListBySession(ctx context.Context, sessionID string) ([]*Plan, error) {
	var plans []*Plan
	if err := r.db.SelectContext(ctx, &plans,
		"SELECT * FROM plans WHERE session_id = ? ORDER BY id", sessionID); err != nil {
		return nil, fmt.Errorf("listing plans for session: %w", err)
	}
	return plans, nil
}

// Itinerary converts a stored plan back to the wizard's record.
func (p *Plan) Itinerary() wizard.Itinerary {
	return wizard.Itinerary{
		Destination:   p.Destination,
		DurationLabel: p.DurationLabel,
		TravellerType: wizard.TravellerType(p.TravellerType),
		RoomConfig: wizard.RoomConfig{
			Adults:   p.Adults,
			Children: p.Children,
			Rooms:    p.Rooms,
		},
	}
}
