package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/evcraddock/wander/internal/itinerary"
	"github.com/evcraddock/wander/internal/tracing"
	"github.com/evcraddock/wander/internal/wizard"
)

// SessionCookieName holds the wizard session ID.
const SessionCookieName = "wander_wizard"

type customizeData struct {
	State          wizard.State
	Step           int
	StepName       string
	Progress       int
	Results        []wizard.Destination
	Durations      []wizard.DurationOption
	Travellers     []wizard.TravellerOption
	Draft          wizard.RoomConfig
	CanDecAdults   bool
	CanDecChildren bool
	CanDecRooms    bool
	Summary        *wizard.Summary
	Error          string
}

func newCustomizeData(c *wizard.Controller) customizeData {
	draft := c.Draft()
	d := customizeData{
		State:          c.State(),
		Step:           int(c.Step()),
		StepName:       c.Step().String(),
		Results:        c.Results(),
		Durations:      wizard.Durations(),
		Travellers:     wizard.TravellerOptions(),
		Draft:          draft,
		CanDecAdults:   draft.CanDecrement(wizard.CounterAdults),
		CanDecChildren: draft.CanDecrement(wizard.CounterChildren),
		CanDecRooms:    draft.CanDecrement(wizard.CounterRooms),
	}
	if c.Step() < wizard.StepConfirmation {
		d.Progress = int(c.Step()) * 25
	}
	if sum, err := c.Summary(); err == nil {
		d.Summary = &sum
	}
	return d
}

// loadSession returns the session named by the request cookie, or a new
// one when there is no cookie or the stored session is gone or unreadable.
func (s *Server) loadSession(ctx context.Context, r *http.Request) (*wizard.Session, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return wizard.NewSession(), nil
	}

	sess, err := s.sessions.Load(ctx, cookie.Value)
	switch {
	case err == nil:
		return sess, nil
	case errors.Is(err, wizard.ErrSessionNotFound):
		return wizard.NewSession(), nil
	case errors.Is(err, wizard.ErrCorruptState):
		slog.WarnContext(ctx, "discarding corrupt wizard session", "session", cookie.Value, "error", err)
		return wizard.NewSession(), nil
	default:
		return nil, fmt.Errorf("loading wizard session: %w", err)
	}
}

// saveSession stores sess and refreshes the session cookie.
func (s *Server) saveSession(ctx context.Context, w http.ResponseWriter, sess *wizard.Session) error {
	sess.UpdatedAt = time.Now().UTC()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("saving wizard session: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(s.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// handleCustomize renders the current wizard step. On step 1, ?q= updates
// the destination search text.
func (s *Server) handleCustomize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, err := s.loadSession(ctx, r)
	if err != nil {
		slog.ErrorContext(ctx, "wizard", "error", err)
		http.Error(w, "Error loading your trip", http.StatusInternalServerError)
		return
	}

	changed := false
	if r.URL.Query().Has("q") && sess.Wizard.Step() == wizard.StepDestination {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		changed = q != sess.Wizard.Search()
		sess.Wizard.SetSearch(q)
	}

	// A first visit without a cookie or a search is not persisted.
	if _, err := r.Cookie(SessionCookieName); err == nil || changed {
		if err := s.saveSession(ctx, w, sess); err != nil {
			slog.ErrorContext(ctx, "wizard", "error", err)
			http.Error(w, "Error saving your trip", http.StatusInternalServerError)
			return
		}
	}

	s.render(w, http.StatusOK, "customize.html", newCustomizeData(sess.Wizard))
}

func (s *Server) handleSelectDestination(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, "select_destination", func(c *wizard.Controller) error {
		return c.SelectDestination(r.PostFormValue("destination"))
	})
}

func (s *Server) handleSelectDuration(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, "select_duration", func(c *wizard.Controller) error {
		return c.SelectDuration(r.PostFormValue("duration"))
	})
}

func (s *Server) handleSelectTraveller(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, "select_traveller", func(c *wizard.Controller) error {
		t, err := wizard.ParseTravellerType(r.PostFormValue("traveller"))
		if err != nil {
			return err
		}
		return c.SelectTravellerType(t)
	})
}

// handleRooms adjusts the draft counters (action=inc|dec with counter=...)
// or confirms them (action=confirm).
func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	action := r.PostFormValue("action")
	switch action {
	case "inc", "dec":
		s.transition(w, r, "rooms_"+action, func(c *wizard.Controller) error {
			counter, err := wizard.ParseCounter(r.PostFormValue("counter"))
			if err != nil {
				return err
			}
			if action == "inc" {
				return c.IncrementRoom(counter)
			}
			return c.DecrementRoom(counter)
		})
	case "confirm":
		s.transition(w, r, "confirm_rooms", func(c *wizard.Controller) error {
			return c.ConfirmDraft()
		})
	default:
		http.Error(w, fmt.Sprintf("Unknown rooms action %q", action), http.StatusBadRequest)
	}
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, "back", func(c *wizard.Controller) error {
		return c.Back()
	})
}

func (s *Server) handleContinue(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, "continue", func(c *wizard.Controller) error {
		return c.Continue()
	})
}

func (s *Server) handleClose(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, "close", func(c *wizard.Controller) error {
		c.Close()
		return nil
	})
}

// transition applies one wizard operation to the session and redirects
// back to /customize. A rejected operation leaves the stored session
// untouched and re-renders the current step with an error.
func (s *Server) transition(w http.ResponseWriter, r *http.Request, op string, apply func(*wizard.Controller) error) {
	ctx, span := tracing.Tracer().Start(r.Context(), "wizard."+op)
	defer span.End()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	sess, err := s.loadSession(ctx, r)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.ErrorContext(ctx, "wizard", "op", op, "error", err)
		http.Error(w, "Error loading your trip", http.StatusInternalServerError)
		return
	}
	span.SetAttributes(attribute.String("wizard.session", sess.ID))

	before := sess.Wizard.Step()
	err = apply(sess.Wizard)
	s.metrics.Transition(op, err)
	if err != nil {
		span.RecordError(err)
		slog.InfoContext(ctx, "wizard operation rejected", "op", op, "step", before.String(), "error", err)

		// Show the stored state, not whatever apply left behind.
		restored, loadErr := s.loadSession(ctx, r)
		if loadErr != nil {
			restored = sess
		}
		data := newCustomizeData(restored.Wizard)
		data.Error = errorMessage(err)
		s.render(w, errorStatus(err), "customize.html", data)
		return
	}

	after := sess.Wizard.Step()
	span.SetAttributes(
		attribute.String("wizard.from", before.String()),
		attribute.String("wizard.to", after.String()),
	)

	if err := s.saveSession(ctx, w, sess); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.ErrorContext(ctx, "wizard", "op", op, "error", err)
		http.Error(w, "Error saving your trip", http.StatusInternalServerError)
		return
	}

	if before != wizard.StepConfirmation && after == wizard.StepConfirmation {
		s.planConfirmed(ctx, sess)
	}

	http.Redirect(w, r, "/customize", http.StatusSeeOther)
}

// planConfirmed records a finished itinerary and notifies the agency.
// Failures are logged; the visitor still sees their summary.
func (s *Server) planConfirmed(ctx context.Context, sess *wizard.Session) {
	it := sess.Wizard.Itinerary()
	s.metrics.PlansConfirmed.Inc()

	if _, err := s.plans.Record(ctx, sess.ID, it); err != nil {
		slog.ErrorContext(ctx, "recording plan", "session", sess.ID, "error", err)
	}
	if err := s.notifier.Plan(ctx, sess.ID, it); err != nil {
		slog.ErrorContext(ctx, "sending plan notification", "session", sess.ID, "error", err)
	}
	slog.InfoContext(ctx, "trip planned", "session", sess.ID, "destination", it.Destination, "duration", it.DurationLabel)
}

// handleItineraryPDF downloads the confirmed itinerary.
func (s *Server) handleItineraryPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, err := s.loadSession(ctx, r)
	if err != nil {
		slog.ErrorContext(ctx, "wizard", "error", err)
		http.Error(w, "Error loading your trip", http.StatusInternalServerError)
		return
	}

	sum, err := sess.Wizard.Summary()
	if err != nil {
		http.Error(w, "Your trip has not been confirmed yet", http.StatusConflict)
		return
	}

	var buf bytes.Buffer
	if err := itinerary.Render(&buf, sum, time.Now()); err != nil {
		slog.ErrorContext(ctx, "rendering itinerary", "session", sess.ID, "error", err)
		http.Error(w, "Error rendering itinerary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, itinerary.Filename(sum)))
	_, _ = w.Write(buf.Bytes())
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, wizard.ErrWrongStep),
		errors.Is(err, wizard.ErrCannotContinue),
		errors.Is(err, wizard.ErrNotConfirmed):
		return http.StatusConflict
	case errors.Is(err, wizard.ErrUnknownDestination),
		errors.Is(err, wizard.ErrUnknownDuration),
		errors.Is(err, wizard.ErrUnknownTravellerType),
		errors.Is(err, wizard.ErrUnknownCounter),
		errors.Is(err, wizard.ErrInvalidRoomConfig):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, wizard.ErrWrongStep):
		return "That choice isn't available at this step."
	case errors.Is(err, wizard.ErrCannotContinue):
		return "Make a selection to continue."
	case errors.Is(err, wizard.ErrUnknownDestination):
		return "Please pick a destination from the list."
	case errors.Is(err, wizard.ErrUnknownDuration):
		return "Please pick one of the durations."
	case errors.Is(err, wizard.ErrUnknownTravellerType):
		return "Please choose who is travelling with you."
	case errors.Is(err, wizard.ErrUnknownCounter), errors.Is(err, wizard.ErrInvalidRoomConfig):
		return "That room configuration isn't valid."
	}
	return "Something went wrong. Please try again."
}
